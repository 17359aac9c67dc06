// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"srcpack/pkg/archive"

	"github.com/spf13/cobra"
)

// formatsCmd lists the archive formats the build command understands.
var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List available archive formats",
	Long: `List available archive formats.

Each line names a value accepted by 'srcpack build --formats'.`,
	RunE: runFormats,
}

func runFormats(cmd *cobra.Command, args []string) error {
	stdout := cmd.OutOrStdout()
	fmt.Fprintln(stdout, TitleStyle.Render("Available archive formats"))
	for _, f := range archive.Formats() {
		fmt.Fprintf(stdout, "  %s  %s\n",
			CmdStyle.Render(fmt.Sprintf("--formats=%-7s", f.Name)),
			SubtitleStyle.Render(f.Description))
	}
	return nil
}
