package main

import (
	"errors"

	"github.com/spf13/cobra"

	"sourcing-trainer/store"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			if cfg.UseMemoryStore {
				return errors.New("nothing to migrate with USE_MEMORY_STORE set")
			}
			db, err := store.OpenPostgres(cfg.DatabaseURL, logger)
			if err != nil {
				return err
			}
			if err := store.AutoMigrate(db); err != nil {
				return err
			}
			logger.Info("Database migrated")
			return nil
		},
	}
}
