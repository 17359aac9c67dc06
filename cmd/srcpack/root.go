// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for srcpack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"srcpack/internal/config"
	"srcpack/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg holds the loaded configuration, refreshed by initRootConfig.
	cfg = config.DefaultConfig()

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "srcpack",
		Short: "Build source distributions for your project",
		Long: TitleStyle.Render("srcpack") + SubtitleStyle.Render(" - Build source distributions for your project") + `

srcpack collects the files that belong in a source release, records
them in a MANIFEST, and packs them into one or more archives (zip,
tar, gztar, zsttar).

Projects describe themselves in a 'srcpack.toml' descriptor. An
optional MANIFEST.in template refines the file list with
include/exclude rules.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'srcpack init' to create a starter srcpack.toml
  2. Adjust name, version and packages in the descriptor
  3. Build archives with: srcpack build

` + SubtitleStyle.Render("Examples:") + `
  srcpack build                      Build a gzip'ed tarball into dist/
  srcpack build --formats=zip,tar    Build several formats at once
  srcpack manifest                   Regenerate the MANIFEST and stop
  srcpack check                      Verify descriptor completeness
  srcpack formats                    List available archive formats`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/srcpack/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(manCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Set custom config file path if provided via --config flag
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Config problems never abort a build, but the user should know.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}
	if loaded != nil {
		cfg = loaded
	}

	// Apply verbose from config if not set via flag
	if !verbose {
		verbose = cfg.Verbose
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
