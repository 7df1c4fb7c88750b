package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"disputedesk/internal/bootstrap"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MySQL schema and load the reference cases and transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, telemetry, err := bootstrap.Init(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = telemetry.Shutdown(context.Background()) }()

			db, err := bootstrap.OpenDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			slog.InfoContext(ctx, "migration complete", "db", cfg.MySQL.DB)
			return nil
		},
	}
}
