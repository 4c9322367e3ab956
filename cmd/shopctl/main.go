// Command shopctl runs database chores for the storefront: migrations, catalog
// seeding and CSV imports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"optic-storefront/internal/config"
	"optic-storefront/internal/db"
	"optic-storefront/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "shopctl",
	Short:         "Storefront database tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file to load before reading the environment")
	rootCmd.AddCommand(migrateCmd, seedCmd, importCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "shopctl:", err)
		os.Exit(1)
	}
}

// connect loads configuration and opens the database every subcommand needs.
func connect(ctx context.Context, component string) (*pgxpool.Pool, *log.Entry, error) {
	cfg, _ := config.Load(envFile)
	logger := log.NewEntry(logging.New(cfg.LogLevel, cfg.LogFormat)).WithField("component", component)

	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	return pool, logger, nil
}
