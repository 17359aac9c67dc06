// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"srcpack/internal/config"
	"srcpack/internal/issue"
	"srcpack/pkg/filelist"
	"srcpack/pkg/sdist"
)

// resetBuildFlags restores the package-level flag variables after a test
// mutates them. Flag state is global, so these tests cannot run in parallel.
func resetBuildFlags(t *testing.T) {
	t.Helper()
	origCfg := cfg
	t.Cleanup(func() {
		cfg = origCfg
		buildFormats = nil
		buildDistDir = ""
		buildManifest = ""
		buildTemplate = ""
		buildOwner = ""
		buildGroup = ""
		buildNoDefault = false
		buildNoPrune = false
		buildSkipCheck = false
		buildKeepTemp = false
	})
}

func TestBuildOptionsDefaults(t *testing.T) {
	resetBuildFlags(t)
	cfg = config.DefaultConfig()

	opts := buildOptions()
	want := sdist.DefaultOptions()

	if len(opts.Formats) != 1 || opts.Formats[0] != want.Formats[0] {
		t.Errorf("formats: got %v, want %v", opts.Formats, want.Formats)
	}
	if opts.DistDir != want.DistDir {
		t.Errorf("dist dir: got %q, want %q", opts.DistDir, want.DistDir)
	}
	if !opts.UseDefaults || !opts.Prune || !opts.MetadataCheck {
		t.Errorf("expected defaults/prune/check enabled, got %+v", opts)
	}
	if opts.KeepTemp || opts.ManifestOnly {
		t.Errorf("expected keep-temp and manifest-only off, got %+v", opts)
	}
}

func TestBuildOptionsConfigDefaults(t *testing.T) {
	resetBuildFlags(t)
	cfg = &config.Config{
		DistDir: "release",
		Formats: []string{"zip", "tar"},
		Owner:   "root",
		Group:   "wheel",
	}

	opts := buildOptions()
	if opts.DistDir != "release" {
		t.Errorf("dist dir: got %q, want %q", opts.DistDir, "release")
	}
	if len(opts.Formats) != 2 || opts.Formats[0] != "zip" || opts.Formats[1] != "tar" {
		t.Errorf("formats: got %v", opts.Formats)
	}
	if opts.Owner != "root" || opts.Group != "wheel" {
		t.Errorf("ownership: got %q/%q", opts.Owner, opts.Group)
	}
}

func TestBuildOptionsFlagsOverrideConfig(t *testing.T) {
	resetBuildFlags(t)
	cfg = &config.Config{
		DistDir: "release",
		Formats: []string{"zip"},
		Owner:   "root",
	}
	buildFormats = []string{"zsttar"}
	buildDistDir = "out"
	buildManifest = "FILES"
	buildTemplate = "FILES.in"
	buildOwner = "nobody"
	buildGroup = "nogroup"
	buildNoDefault = true
	buildNoPrune = true
	buildSkipCheck = true
	buildKeepTemp = true

	opts := buildOptions()
	if len(opts.Formats) != 1 || opts.Formats[0] != "zsttar" {
		t.Errorf("formats: got %v", opts.Formats)
	}
	if opts.DistDir != "out" || opts.Manifest != "FILES" || opts.Template != "FILES.in" {
		t.Errorf("paths: got %q/%q/%q", opts.DistDir, opts.Manifest, opts.Template)
	}
	if opts.Owner != "nobody" || opts.Group != "nogroup" {
		t.Errorf("ownership: got %q/%q", opts.Owner, opts.Group)
	}
	if opts.UseDefaults || opts.Prune || opts.MetadataCheck || !opts.KeepTemp {
		t.Errorf("toggles: got %+v", opts)
	}
}

func TestIssueIDFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{
			name: "nil catalog entry for plain error",
			err:  errors.New("boom"),
			want: 0,
		},
		{
			name: "option error",
			err:  &sdist.OptionError{Option: "formats", Message: "unknown archive format 'supazipa'"},
			want: issue.UnknownFormatId,
		},
		{
			name: "wrapped option error",
			err:  fmt.Errorf("build: %w", &sdist.OptionError{Option: "formats", Message: "empty"}),
			want: issue.UnknownFormatId,
		},
		{
			name: "template error",
			err:  &filelist.TemplateError{Line: 3, Text: "includ x", Message: "unknown command 'includ'"},
			want: issue.TemplateSyntaxErrorId,
		},
		{
			name: "descriptor not found",
			err:  issue.WrapWithContext(errors.New("no such file"), "load package descriptor", "srcpack.toml"),
			want: issue.DescriptorNotFoundId,
		},
		{
			name: "descriptor parse error",
			err:  issue.WrapWithOperation(errors.New("bad toml"), "parse package descriptor"),
			want: issue.DescriptorParseErrorId,
		},
		{
			name: "empty file list",
			err:  issue.WrapWithOperation(errors.New("no files to distribute"), "build source distribution"),
			want: issue.EmptyFileListId,
		},
		{
			name: "owner lookup",
			err:  issue.WrapWithContext(errors.New("unknown user"), "resolve archive owner", "nosuchuser"),
			want: issue.OwnerLookupFailedId,
		},
		{
			name: "config load",
			err:  issue.WrapWithOperation(errors.New("yaml: bad"), "parse configuration"),
			want: issue.ConfigLoadFailedId,
		},
		{
			name: "archive write",
			err:  issue.WrapWithContext(errors.New("disk full"), "write archive", "dist/x.tar.gz"),
			want: issue.ArchiveWriteFailedId,
		},
		{
			name: "unmapped operation",
			err:  issue.WrapWithOperation(errors.New("odd"), "frobnicate"),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := issueIDFor(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
