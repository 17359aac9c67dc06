// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	mcobra "github.com/muesli/mango-cobra"
	"github.com/muesli/roff"
	"github.com/spf13/cobra"
)

// manCmd generates a man page for srcpack on stdout.
var manCmd = &cobra.Command{
	Use:                   "man",
	Short:                 "Generate a man page",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Hidden:                true,
	Args:                  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		manPage, err := mcobra.NewManPage(1, cmd.Root())
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), manPage.Build(roff.NewDocument()))
		return nil
	},
}
