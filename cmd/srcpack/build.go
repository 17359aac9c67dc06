// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"srcpack/pkg/metadata"
	"srcpack/pkg/sdist"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	buildFormats   []string
	buildDistDir   string
	buildManifest  string
	buildTemplate  string
	buildOwner     string
	buildGroup     string
	buildNoDefault bool
	buildNoPrune   bool
	buildSkipCheck bool
	buildKeepTemp  bool

	// buildCmd creates source distribution archives.
	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Create source distribution archives",
		Long: `Create source distribution archives for the current project.

The file list is assembled from the package descriptor, refined by an
optional MANIFEST.in template, written to MANIFEST, staged into a
release tree and packed into the requested archive formats.`,
		RunE: runBuild,
	}
)

func init() {
	buildCmd.Flags().StringSliceVarP(&buildFormats, "formats", "f", nil, "archive formats to produce (see 'srcpack formats')")
	buildCmd.Flags().StringVarP(&buildDistDir, "dist-dir", "d", "", "directory to put the archives in")
	buildCmd.Flags().StringVar(&buildManifest, "manifest", "", "manifest file name")
	buildCmd.Flags().StringVar(&buildTemplate, "template", "", "manifest template file name")
	buildCmd.Flags().StringVar(&buildOwner, "owner", "", "owner name or uid for tar members")
	buildCmd.Flags().StringVar(&buildGroup, "group", "", "group name or gid for tar members")
	buildCmd.Flags().BoolVar(&buildNoDefault, "no-defaults", false, "do not add the standard file set")
	buildCmd.Flags().BoolVar(&buildNoPrune, "no-prune", false, "do not prune VCS directories and build output")
	buildCmd.Flags().BoolVar(&buildSkipCheck, "skip-check", false, "skip the descriptor completeness check")
	buildCmd.Flags().BoolVar(&buildKeepTemp, "keep-temp", false, "keep the staged release tree after archiving")
}

// buildOptions merges configuration defaults with build command flags.
func buildOptions() sdist.Options {
	opts := sdist.DefaultOptions()

	if len(cfg.Formats) > 0 {
		opts.Formats = cfg.Formats
	}
	if cfg.DistDir != "" {
		opts.DistDir = cfg.DistDir
	}
	opts.Owner = cfg.Owner
	opts.Group = cfg.Group

	if len(buildFormats) > 0 {
		opts.Formats = buildFormats
	}
	if buildDistDir != "" {
		opts.DistDir = buildDistDir
	}
	if buildManifest != "" {
		opts.Manifest = buildManifest
	}
	if buildTemplate != "" {
		opts.Template = buildTemplate
	}
	if buildOwner != "" {
		opts.Owner = buildOwner
	}
	if buildGroup != "" {
		opts.Group = buildGroup
	}
	opts.UseDefaults = !buildNoDefault
	opts.Prune = !buildNoPrune
	opts.MetadataCheck = !buildSkipCheck
	opts.KeepTemp = buildKeepTemp

	return opts
}

// newBuilder loads the descriptor in the current directory and
// constructs a Builder for it.
func newBuilder(opts sdist.Options) (*sdist.Builder, error) {
	root, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	meta, err := metadata.Load(metadata.DescriptorName)
	if err != nil {
		return nil, err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "srcpack",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	return sdist.New(meta, root, opts, logger), nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	builder, err := newBuilder(buildOptions())
	if err != nil {
		return renderBuildError(cmd, err)
	}

	archives, err := builder.Run(cmd.Context())
	if err != nil {
		return renderBuildError(cmd, err)
	}

	for _, archive := range archives {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(archive))
	}
	return nil
}

// renderBuildError prints a styled error plus any issue catalog help, then
// converts the error into an ExitError so Execute exits non-zero without
// cobra re-printing it.
func renderBuildError(cmd *cobra.Command, err error) error {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	renderIssueHelp(stderr, issueIDFor(err))

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: 1, Err: err}
}
