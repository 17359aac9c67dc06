// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// manifestCmd regenerates the manifest without building archives.
var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Regenerate the MANIFEST without building archives",
	Long: `Regenerate the MANIFEST without building archives.

The file list is recomputed from the package descriptor and the
optional MANIFEST.in template, exactly as 'srcpack build' would, and
written to the manifest file. No release tree is staged and no
archives are produced.`,
	RunE: runManifest,
}

func runManifest(cmd *cobra.Command, args []string) error {
	opts := buildOptions()
	opts.ManifestOnly = true
	// Archive formats are irrelevant here; avoid rejecting a manifest
	// run over a stale formats value in the config file.
	opts.Formats = []string{"gztar"}

	builder, err := newBuilder(opts)
	if err != nil {
		return renderBuildError(cmd, err)
	}

	if _, err := builder.Run(cmd.Context()); err != nil {
		return renderBuildError(cmd, err)
	}

	fl := builder.FileList()
	fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s (%d files)\n",
		SuccessStyle.Render("✓"), CmdStyle.Render(builder.Options().Manifest), fl.Len())
	return nil
}
