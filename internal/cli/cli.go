// Package cli implements savoryctl, the administration tool of the API.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/config"
	"github.com/gabbyferm/savory/backend/internal/database"
	"github.com/gabbyferm/savory/backend/internal/logging"
)

const name = "savoryctl"

// overridden during build with ldflags
var version = "dev"

var (
	configFlag = &cli.StringFlag{
		Name:    "config",
		Usage:   "YAML configuration file",
		Sources: cli.EnvVars("CONFIG_FILE"),
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "log level (debug, info, warn, error)",
		Value: "info",
	}
)

// NewApp returns the root command
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Manage the Savory recipe API database",
		Version: version,
		Flags:   []cli.Flag{configFlag, logLevelFlag},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.Init(cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			migrateCmd(),
			seedCmd(),
			demoUsersCmd(),
		},
	}
}

// Execute runs savoryctl with the process arguments
func Execute(ctx context.Context) {
	if err := NewApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig applies --config before reading the configuration
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		if err := os.Setenv("CONFIG_FILE", path); err != nil {
			return nil, err
		}
	}
	return config.LoadConfig()
}

// withDB opens and migrates the configured database for the duration of fn
func withDB(ctx context.Context, cmd *cli.Command, fn func(*config.Config, *gorm.DB) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(ctx, db); err != nil {
		return err
	}
	return fn(cfg, db)
}

func migrateCmd() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Create or update the database schema",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withDB(ctx, cmd, func(*config.Config, *gorm.DB) error {
				slog.Info("database schema is up to date")
				return nil
			})
		},
	}
}

func seedCmd() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Insert the default categories and ingredients",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withDB(ctx, cmd, func(_ *config.Config, db *gorm.DB) error {
				res, err := database.SeedReferenceData(ctx, db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.Root().Writer, "added %d categories and %d ingredients\n", res.Categories, res.Ingredients)
				return nil
			})
		},
	}
}
