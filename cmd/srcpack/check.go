// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"srcpack/pkg/metadata"

	"github.com/spf13/cobra"
)

var (
	checkStrict bool

	// checkCmd verifies the package descriptor.
	checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Verify the package descriptor is complete",
		Long: `Verify the package descriptor is complete.

Reports missing required fields (name, version, url) and missing
contact information (author or maintainer with an email address).
With --strict, any warning makes the command exit non-zero.`,
		RunE: runCheck,
	}
)

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "treat warnings as errors")
}

func runCheck(cmd *cobra.Command, args []string) error {
	meta, err := metadata.Load(metadata.DescriptorName)
	if err != nil {
		return renderBuildError(cmd, err)
	}

	warnings := meta.Check()
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+w)
	}

	if len(warnings) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s looks complete\n",
			SuccessStyle.Render("✓"), CmdStyle.Render(metadata.DescriptorName))
		return nil
	}

	if checkStrict {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: 1, Err: fmt.Errorf("descriptor check reported %d warning(s)", len(warnings))}
	}
	return nil
}
