// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DistDir != "dist" {
		t.Errorf("DistDir = %q, want dist", cfg.DistDir)
	}
	if len(cfg.Formats) != 1 || cfg.Formats[0] != "gztar" {
		t.Errorf("Formats = %v, want [gztar]", cfg.Formats)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "valid",
			cfg:  Config{DistDir: "dist", Formats: []string{"zip", "gztar"}},
		},
		{
			name:    "empty dist dir",
			cfg:     Config{Formats: []string{"zip"}},
			wantErr: ErrInvalidDistDir,
		},
		{
			name:    "unknown format",
			cfg:     Config{DistDir: "dist", Formats: []string{"supazipa"}},
			wantErr: ErrInvalidFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Cleanup(Reset)
	SetConfigDirOverride(t.TempDir()) // no config file present

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DistDir != "dist" {
		t.Errorf("DistDir = %q, want dist", cfg.DistDir)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	content := "dist_dir: out\nformats:\n  - zip\n  - tar\nowner: root\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	SetConfigDirOverride(dir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DistDir != "out" {
		t.Errorf("DistDir = %q, want out", cfg.DistDir)
	}
	if len(cfg.Formats) != 2 || cfg.Formats[0] != "zip" {
		t.Errorf("Formats = %v, want [zip tar]", cfg.Formats)
	}
	if cfg.Owner != "root" {
		t.Errorf("Owner = %q, want root", cfg.Owner)
	}
}

func TestLoad_InvalidFormatRejected(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte("formats: [supazipa]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	SetConfigDirOverride(dir)

	if _, err := Load(); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("Load() = %v, want ErrInvalidFormat", err)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(Reset)
	SetConfigDirOverride(t.TempDir())
	t.Setenv(EnvPrefix+"_DIST_DIR", "release")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DistDir != "release" {
		t.Errorf("DistDir = %q, want release", cfg.DistDir)
	}
}

func TestLoad_ExplicitFileOverride(t *testing.T) {
	t.Cleanup(Reset)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("dist_dir: custom\n"), 0644); err != nil {
		t.Fatal(err)
	}
	SetConfigFilePathOverride(path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.DistDir != "custom" {
		t.Errorf("DistDir = %q, want custom", cfg.DistDir)
	}
}
