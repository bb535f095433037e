package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the default configuration to the --config path.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	if err := shared.CreateConfigFile(r.configPath); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", r.configPath)
	r.writePlain("✓ Configuration written to %s\n", r.configPath)
	r.writePlain("Set storage.backend = \"sql\" and DATABASE_URL to use a relational store.\n")
	return nil
}

// SetupDatabase creates the books table in the configured database. Running it again is harmless.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	url := cmd.String("url")
	if url == "" {
		url = r.config.Database.URL
	}
	if url == "" {
		return fmt.Errorf("%w: set DATABASE_URL, database.url or --url", shared.ErrMissingConfig)
	}

	dialect, _, err := shared.ResolveDriver(url)
	if err != nil {
		return err
	}

	r.logger.Info("initializing database", "dialect", dialect)

	db, err := shared.NewDatabase(url)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.EnsureSchema(db, dialect); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	r.logger.Infof("setup complete for %v database", dialect)
	return r.writePlain("✓ Database ready\n")
}
