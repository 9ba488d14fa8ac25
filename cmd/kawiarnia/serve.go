package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/kawiarnia/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Serves the session API over HTTP with an SSE event stream, plus the
Prometheus metrics endpoint on its own address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := buildApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		addr, _ := cmd.Flags().GetString("addr")
		metricsAddr, _ := cmd.Flags().GetString("metrics-addr")
		if !cmd.Flags().Changed("metrics-addr") {
			metricsAddr = app.Config.HTTP.MetricsAddr
		}
		cors, _ := cmd.Flags().GetBool("cors")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return cli.Serve(ctx, app, cli.ServeOptions{Addr: addr, MetricsAddr: metricsAddr, CORS: cors})
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "API listen address (default from config)")
	serveCmd.Flags().String("metrics-addr", "", "Metrics listen address; empty mounts /metrics on the API")
	serveCmd.Flags().Bool("cors", false, "Allow cross-origin requests")
}
