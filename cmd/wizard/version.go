package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/wizard"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), wizard.VersionTag())
	},
}
