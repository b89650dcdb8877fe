package main

import (
	"github.com/spf13/cobra"

	"github.com/KJohnson82/MMPD/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			return database.RunMigrations(a.sqlDB, a.logger)
		},
	}
}
