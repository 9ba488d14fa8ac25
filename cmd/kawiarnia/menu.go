package main

import (
	"fmt"

	"github.com/aretw0/kawiarnia/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Print the menu with prices",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		text := app.Assistant.Menu()
		if raw, _ := cmd.Flags().GetBool("raw"); !raw {
			if rendered, err := tui.NewRenderer()(text); err == nil {
				text = rendered
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
