package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-InterviewScheduler/internal/infra/storage/migrations"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply embedded database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.close()

			applied, err := migrations.Up(cmd.Context(), a.db, a.log)
			if err != nil {
				a.log.Error("Migrations failed: %v", err)
				return err
			}

			a.log.Info("Migrations done: %d applied", applied)
			return nil
		},
	}
}
