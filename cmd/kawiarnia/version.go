package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/kawiarnia"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of kawiarnia",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "kawiarnia version %s\n", strings.TrimSpace(kawiarnia.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
