// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"srcpack/pkg/metadata"

	"github.com/spf13/cobra"
)

// chdirTemp switches to a fresh temp directory for the duration of a test.
func chdirTemp(t *testing.T) string {
	t.Helper()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(originalWd) })
	return tmpDir
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	return cmd, &out
}

func TestGenerateDescriptorParses(t *testing.T) {
	t.Parallel()

	meta, err := metadata.Parse([]byte(generateDescriptor("widgets")))
	if err != nil {
		t.Fatalf("generated descriptor does not parse: %v", err)
	}
	if meta.Name != "widgets" {
		t.Errorf("name: got %q, want %q", meta.Name, "widgets")
	}
	if meta.Version != "0.1.0" {
		t.Errorf("version: got %q, want %q", meta.Version, "0.1.0")
	}
	if meta.Author.Email == "" {
		t.Error("expected author email placeholder")
	}
}

func TestRunInit(t *testing.T) {
	tmpDir := chdirTemp(t)
	initForce = false
	t.Cleanup(func() { initForce = false })

	cmd, out := newTestCommand()
	if err := runInit(cmd, []string{"widgets"}); err != nil {
		t.Fatalf("runInit: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, metadata.DescriptorName))
	if err != nil {
		t.Fatalf("descriptor not written: %v", err)
	}
	if !strings.Contains(string(data), `name = "widgets"`) {
		t.Errorf("descriptor missing project name:\n%s", data)
	}
	if !strings.Contains(out.String(), "Next steps:") {
		t.Errorf("expected next steps in output, got %q", out.String())
	}
}

func TestRunInitRefusesOverwrite(t *testing.T) {
	chdirTemp(t)
	initForce = false
	t.Cleanup(func() { initForce = false })

	if err := os.WriteFile(metadata.DescriptorName, []byte("name = \"old\"\n"), 0o644); err != nil {
		t.Fatalf("seed descriptor: %v", err)
	}

	cmd, _ := newTestCommand()
	err := runInit(cmd, nil)
	if err == nil {
		t.Fatal("expected error for existing descriptor")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}

	// --force replaces the file.
	initForce = true
	if err := runInit(cmd, []string{"widgets"}); err != nil {
		t.Fatalf("runInit --force: %v", err)
	}
	data, err := os.ReadFile(metadata.DescriptorName)
	if err != nil {
		t.Fatalf("read descriptor: %v", err)
	}
	if !strings.Contains(string(data), `name = "widgets"`) {
		t.Errorf("descriptor not overwritten:\n%s", data)
	}
}
