// Version command for the analyze CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the release version of the analyze binary.
const version = "0.1.0"

const modulePath = "github.com/Suzuka-Y/B4-2-analysis"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the analyze version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "analyze v%s\nmodule: %s\n", version, modulePath)
	},
}
