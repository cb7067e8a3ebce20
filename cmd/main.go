package main

import (
	"context"
	"errors"
	"os"

	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			logger.Warn("failed to load .env file", "error", err)
		}
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}
	config.ApplyEnv()

	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: logger,
	})

	app := &cli.Command{
		Name:    "fonoteca",
		Usage:   "Manage a music catalog stored in Cassandra",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		switch {
		case errors.Is(err, shared.ErrConnection):
			logger.Fatalf("database unreachable: %v", err)
		case errors.Is(err, shared.ErrQuery):
			logger.Fatalf("query rejected: %v", err)
		default:
			logger.Fatalf("application error: %v", err)
		}
	}
}
