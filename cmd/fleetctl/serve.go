package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"fleet-backend/internal/bootstrap"
	"fleet-backend/internal/shared/config"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		cfg := config.Load()
		if servePort != "" {
			cfg.Port = servePort
		}
		app, err := bootstrap.Build(ctx, cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		return bootstrap.Serve(ctx, app)
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Listen port (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}
