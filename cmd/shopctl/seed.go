package main

import (
	"fmt"

	"optic-storefront/internal/catalog"
	categoryrepo "optic-storefront/internal/repository/category"
	productrepo "optic-storefront/internal/repository/product"
	"optic-storefront/internal/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Copy the embedded catalog into Postgres",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		pool, logger, err := connect(ctx, "seed")
		if err != nil {
			return err
		}
		defer pool.Close()

		data, err := catalog.Load()
		if err != nil {
			return err
		}
		res, err := seed.Apply(ctx, data, categoryrepo.NewPostgres(pool), productrepo.NewPostgres(pool, logger), logger)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d categories and %d products\n", res.Categories, res.Products)
		return nil
	},
}
