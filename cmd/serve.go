package cmd

import (
	"meditation-backend/logger"
	"meditation-backend/server"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("Starting meditation server...")
	return server.Start(cmd.Context(), cfg)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
