package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmehra2102/prod-golang-projects/medtimeline/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/database"
	"github.com/dmehra2102/prod-golang-projects/medtimeline/pkg/logger"
)

func migrateCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}

			log, err := logger.New(cfg.Log, cfg.App)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.Connect(cfg.Database)
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				return fmt.Errorf("getting underlying sql.DB: %w", err)
			}
			defer sqlDB.Close()

			return database.Migrate(db, log)
		},
	}
}
