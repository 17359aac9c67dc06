// SPDX-License-Identifier: MPL-2.0

package metadata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDescriptor = `
name = "fake"
version = "1.0"
url = "https://example.com/fake"
packages = ["somecode"]
scripts = ["scripts/script.go"]

[author]
name = "Jane Doe"
email = "jane@example.com"

[package_data]
"" = ["*.cfg", "*.dat"]
somecode = ["*.txt"]

[[data_files]]
dest = "data"
files = ["data/data.dt", "inroot.txt"]
`

func TestParse(t *testing.T) {
	meta, err := Parse([]byte(sampleDescriptor))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if meta.Name != "fake" || meta.Version != "1.0" {
		t.Errorf("name/version = %q/%q, want fake/1.0", meta.Name, meta.Version)
	}
	if len(meta.Packages) != 1 || meta.Packages[0] != "somecode" {
		t.Errorf("Packages = %v", meta.Packages)
	}
	if got := meta.PackageData["somecode"]; len(got) != 1 || got[0] != "*.txt" {
		t.Errorf("PackageData[somecode] = %v", got)
	}
	if len(meta.DataFiles) != 1 || meta.DataFiles[0].Dest != "data" {
		t.Errorf("DataFiles = %v", meta.DataFiles)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("name = [unterminated")); err == nil {
		t.Fatal("Parse() should fail on invalid TOML")
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), DescriptorName))
	if err == nil {
		t.Fatal("Load() should fail when the descriptor does not exist")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DescriptorName)
	if err := os.WriteFile(path, []byte(sampleDescriptor), 0644); err != nil {
		t.Fatal(err)
	}

	meta, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if meta.FullName() != "fake-1.0" {
		t.Errorf("FullName() = %q, want fake-1.0", meta.FullName())
	}
}

func TestFullName(t *testing.T) {
	tests := []struct {
		name     string
		meta     Metadata
		expected string
	}{
		{"complete", Metadata{Name: "fake", Version: "1.0"}, "fake-1.0"},
		{"no version", Metadata{Name: "fake"}, "fake-UNKNOWN"},
		{"empty", Metadata{}, "UNKNOWN-UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.meta.FullName(); got != tt.expected {
				t.Errorf("FullName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSourceGlobs(t *testing.T) {
	m := Metadata{}
	if got := m.SourceGlobs(); len(got) != 1 || got[0] != "*.go" {
		t.Errorf("SourceGlobs() default = %v", got)
	}

	m.PackageSources = []string{"*.py", "*.pyi"}
	if got := m.SourceGlobs(); len(got) != 2 || got[0] != "*.py" {
		t.Errorf("SourceGlobs() = %v", got)
	}
}

func TestPkgInfo(t *testing.T) {
	m := Metadata{Name: "fake", Version: "1.0", URL: "xxx"}
	info := m.PkgInfo()

	for _, want := range []string{
		"Metadata-Version: 1.0\n",
		"Name: fake\n",
		"Version: 1.0\n",
		"Home-page: xxx\n",
		"Author: UNKNOWN\n",
		"License: UNKNOWN\n",
	} {
		if !strings.Contains(info, want) {
			t.Errorf("PkgInfo() missing %q:\n%s", want, info)
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name         string
		meta         Metadata
		wantWarnings int
	}{
		{
			name:         "empty metadata",
			meta:         Metadata{},
			wantWarnings: 2,
		},
		{
			name: "complete metadata",
			meta: Metadata{
				Name:    "fake",
				Version: "1.0",
				URL:     "https://example.com",
				Author:  Person{Name: "x", Email: "x@example.com"},
			},
			wantWarnings: 0,
		},
		{
			name: "author without email",
			meta: Metadata{
				Name:    "fake",
				Version: "1.0",
				URL:     "https://example.com",
				Author:  Person{Name: "x"},
			},
			wantWarnings: 1,
		},
		{
			name: "maintainer instead of author",
			meta: Metadata{
				Name:       "fake",
				Version:    "1.0",
				URL:        "https://example.com",
				Maintainer: Person{Name: "x", Email: "x@example.com"},
			},
			wantWarnings: 0,
		},
		{
			name: "missing url only",
			meta: Metadata{
				Name:    "fake",
				Version: "1.0",
				Author:  Person{Name: "x", Email: "x@example.com"},
			},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.meta.Check()
			if len(got) != tt.wantWarnings {
				t.Errorf("Check() = %v, want %d warnings", got, tt.wantWarnings)
			}
		})
	}
}
