package cmd

import (
	"context"
	"fmt"
	"os"

	"meditation-backend/config"
	"meditation-backend/logger"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "meditation",
	Short: "Meditation app API server.",
	Long:  `Serves the meditation catalog, accounts and listening statistics over HTTP.`,
	// Running without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
	SilenceUsage: true,
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and initialises the process logger.
func setup() (*config.Config, error) {
	cfg := config.Load()
	if err := logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialise logger: %w", err)
	}
	return cfg, nil
}
