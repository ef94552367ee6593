package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"letly-be-svc/internal/config"
	"letly-be-svc/internal/database"
	"letly-be-svc/pkg/logger"
)

var version = "1.0.0"

// app holds what every command needs once configuration is loaded
type app struct {
	cfg    *config.Config
	db     *database.Database
	logger *logger.Logger
}

func bootstrap(migrate bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if migrate {
		if err := db.AutoMigrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
	}
	return &app{cfg: cfg, db: db, logger: appLogger}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Failed to close database connection")
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:     "letlyctl",
		Short:   "Letly operator CLI",
		Long:    `Operator commands for the Letly backend: schema migration, demo data, bill generation and the overdue sweep.`,
		Version: version,
	}

	rootCmd.AddCommand(
		MigrateCmd(),
		SeedDemoCmd(),
		GenerateBillsCmd(),
		SweepOverdueCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
