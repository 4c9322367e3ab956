package main

import (
	"fmt"
	"os"
	"time"

	"optic-storefront/internal/importer"
	categoryrepo "optic-storefront/internal/repository/category"
	productrepo "optic-storefront/internal/repository/product"

	"github.com/spf13/cobra"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a product or category CSV export",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		kind, err := detect(importFile)
		if err != nil {
			return err
		}

		f, err := os.Open(importFile)
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()

		pool, logger, err := connect(ctx, "importer")
		if err != nil {
			return err
		}
		defer pool.Close()

		imp := importer.NewCSVImporter(f, productrepo.NewPostgres(pool, logger), categoryrepo.NewPostgres(pool), logger)

		start := time.Now()
		count, err := imp.Run(ctx)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s in %s\n", count, kind, time.Since(start).Truncate(time.Millisecond))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "path to the CSV export")
	_ = importCmd.MarkFlagRequired("file")
}

func detect(path string) (importer.Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return importer.DetectKind(f)
}
