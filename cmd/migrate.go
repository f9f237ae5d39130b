package cmd

import (
	"context"
	"fmt"

	"heartmatch-backend/internal/config"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Storage.Driver != config.DriverPostgres {
			return fmt.Errorf("migrate needs storage driver %q, got %q", config.DriverPostgres, cfg.Storage.Driver)
		}
		return runMigrations(context.Background(), cfg)
	},
}
