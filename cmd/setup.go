package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/urfave/cli/v3"
)

// ConfigInit writes a starter configuration file.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%w: %s already exists", shared.ErrInvalidArgument, configPath)
	}

	if err := shared.CreateConfigFile(configPath); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	r.logger.Info("config file created", "path", configPath)
	r.writePlain("✓ Configuration written to %s\n", configPath)
	r.writePlain("Edit the [cassandra] section to point at your cluster\n")
	return nil
}

// SchemaInit creates the keyspace and tables.
func (r *Runner) SchemaInit(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)
	if n := int(cmd.Int("replicas")); n > 0 {
		config.Cassandra.Replicas = n
	}

	r.logger.Info("initializing schema", "keyspace", config.Cassandra.Keyspace)

	if err := r.initSchema(ctx, config.Cassandra, r.logger); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	r.writePlain("✓ Keyspace %q ready\n", config.Cassandra.Keyspace)
	return nil
}

// Ping verifies the cluster answers queries.
//
// The session opens without a keyspace so the check also works before
// schema init has run.
func (r *Runner) Ping(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	bare := config.Cassandra
	bare.Keyspace = ""

	conn, err := r.open(ctx, bare, r.logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	now, err := conn.Ping(ctx)
	if err != nil {
		return err
	}

	r.writePlain("✓ Cluster reachable, server time %s\n", now.UTC().Format(time.RFC3339))
	return nil
}
