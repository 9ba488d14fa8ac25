package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/kawiarnia/internal/cli"
	"github.com/aretw0/kawiarnia/internal/config"
	"github.com/aretw0/kawiarnia/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kawiarnia",
	Short: "Kawiarnia is a conversational order-taking assistant for a café",
	Long: `Kawiarnia takes drink orders over chat: it collects drink, size and extras
across turns, prices them into a cart and closes the order at checkout.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().Bool("debug", false, "Log at debug level to Stderr")
}

// loadConfig reads --config and applies --debug.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")

	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	if debug {
		cfg.Log.Level = "debug"
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logging.New(level), nil
}

// buildApp loads the configuration and assembles the assistant.
func buildApp(cmd *cobra.Command) (*cli.App, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return cli.Build(cmd.Context(), cfg, logger, nil)
}
