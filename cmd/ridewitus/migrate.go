package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/xy-planning-network/ridewitus/postgres"
	"github.com/xy-planning-network/ridewitus/ranger"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.environment()
			if err != nil {
				return err
			}

			db, err := ranger.Connect(env, slog.Default())
			if err != nil {
				return fmt.Errorf("failed migrating: %w", err)
			}

			if sqlDB, err := db.DB().DB(); err == nil {
				defer sqlDB.Close()
			}

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✔ %d migrations applied\n", len(postgres.Migrations))
			return nil
		},
	}
}
