package main

import (
	"github.com/spf13/cobra"

	"github.com/orgmaturity/assessment-api/internal/core/service"
	"github.com/orgmaturity/assessment-api/internal/infrastructure/db/sqldb"
	"github.com/orgmaturity/assessment-api/pkg/logger"
)

func newMigrateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the schema and seed the default domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			db, err := openSQL(ctx, a.cfg)
			if err != nil {
				return err
			}
			defer sqldb.Close(db)

			system := service.NewSystemService(
				sqldb.NewMigrator(db),
				sqldb.NewTaxonomyRepository(db),
				logger.Component("system"),
			)
			res, err := system.Initialize(ctx)
			if err != nil {
				return err
			}
			a.log.Info().
				Bool("migrated", res.Migrated).
				Int("seeded_domains", res.SeededDomains).
				Msg("database initialized")
			return nil
		},
	}
}
