package cmd

import (
	"meditation-backend/db"
	"meditation-backend/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and seed data, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		gdb, err := db.Connect(cfg)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.AutoMigrate(gdb); err != nil {
			return err
		}
		if err := db.Seed(cmd.Context(), gdb, cfg); err != nil {
			return err
		}
		logger.Info("Migration finished")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
