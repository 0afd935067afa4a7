package main

import (
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/workshop-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/workshop-scheduler/internal/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the postgres schema, including the active-slot unique index",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := mustDriver(cfg, config.DriverPostgres); err != nil {
				return err
			}

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := dbpkg.Migrate(db, cfg.DefaultOffsetMinutes); err != nil {
				return err
			}

			cmd.Println("migrations applied")
			return nil
		},
	}
}
