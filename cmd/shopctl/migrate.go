package main

import (
	"fmt"

	"optic-storefront/internal/migrate"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		pool, logger, err := connect(ctx, "migrate")
		if err != nil {
			return err
		}
		defer pool.Close()

		if err := migrate.Apply(ctx, pool); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		version, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		logger.WithField("version", version).WithField("dirty", dirty).Info("migrations applied")
		return nil
	},
}
