// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"srcpack/pkg/metadata"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a starter package descriptor.
	initCmd = &cobra.Command{
		Use:   "init [project-name]",
		Short: "Create a starter " + metadata.DescriptorName + " in the current directory",
		Long: `Create a starter ` + metadata.DescriptorName + ` in the current directory.

The generated descriptor carries the fields 'srcpack build' and
'srcpack check' look at, pre-filled with placeholder values.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing "+metadata.DescriptorName)
}

func runInit(cmd *cobra.Command, args []string) error {
	name := "myproject"
	if len(args) > 0 {
		name = args[0]
	}

	// Check if file exists
	if _, err := os.Stat(metadata.DescriptorName); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", metadata.DescriptorName)
	}

	content := generateDescriptor(name)

	if err := os.WriteFile(metadata.DescriptorName, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(metadata.DescriptorName)
	stdout := cmd.OutOrStdout()
	fmt.Fprintf(stdout, "%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(stdout, "  1. Fill in name, version and author details")
	fmt.Fprintln(stdout, "  2. List your packages and any scripts or data files")
	fmt.Fprintln(stdout, "  3. Run 'srcpack build' to produce archives in dist/")

	return nil
}

func generateDescriptor(name string) string {
	return fmt.Sprintf(`# Package descriptor for srcpack.

name = "%s"
version = "0.1.0"
description = "TODO: one-line summary"
url = "https://example.com/%s"
license = "TODO"

# Directories whose source files belong in the distribution.
packages = []

# Glob patterns matched inside each package directory.
# package_sources = ["*.go"]

[author]
name = "TODO"
email = "todo@example.com"
`, name, name)
}
