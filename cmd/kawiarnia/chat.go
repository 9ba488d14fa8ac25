package main

import (
	"github.com/aretw0/kawiarnia/internal/cli"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the assistant in the terminal",
	Long: `Starts a conversation on Stdin/Stdout. In a terminal replies are rendered as
markdown; piped input runs headless. --json switches to NDJSON events.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		sessionID, _ := cmd.Flags().GetString("session")
		jsonMode, _ := cmd.Flags().GetBool("json")
		headless, _ := cmd.Flags().GetBool("headless")
		fresh, _ := cmd.Flags().GetBool("fresh")

		return cli.Chat(cmd.Context(), app, cli.ChatOptions{
			SessionID: sessionID,
			JSON:      jsonMode,
			Headless:  headless,
			Fresh:     fresh,
			In:        cmd.InOrStdin(),
			Out:       cmd.OutOrStdout(),
		})
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("session", "s", "", "Session ID to resume (generated when empty)")
	chatCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	chatCmd.Flags().Bool("headless", false, "No greeting or confirmation prompts")
	chatCmd.Flags().Bool("fresh", false, "Drop the session before starting")

	// chat is the default command.
	rootCmd.RunE = chatCmd.RunE
	rootCmd.Flags().AddFlagSet(chatCmd.Flags())
}
