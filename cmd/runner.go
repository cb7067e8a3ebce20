package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/avillegas/fonoteca/internal/repositories"
	"github.com/avillegas/fonoteca/internal/services"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/avillegas/fonoteca/internal/store"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	logger     *log.Logger
	output     io.Writer
	open       func(ctx context.Context, cfg shared.CassandraConfig, logger *log.Logger) (store.Conn, error)
	initSchema func(ctx context.Context, cfg shared.CassandraConfig, logger *log.Logger) error
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Logger     *log.Logger
	Output     io.Writer
	Open       func(ctx context.Context, cfg shared.CassandraConfig, logger *log.Logger) (store.Conn, error)
	InitSchema func(ctx context.Context, cfg shared.CassandraConfig, logger *log.Logger) error
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Open == nil {
		opts.Open = func(ctx context.Context, cfg shared.CassandraConfig, logger *log.Logger) (store.Conn, error) {
			return store.Open(ctx, cfg, logger)
		}
	}
	if opts.InitSchema == nil {
		opts.InitSchema = store.InitSchema
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		open:       opts.Open,
		initSchema: opts.InitSchema,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		configCommand, schemaCommand, pingCommand, artistCommand, songCommand, recordingCommand, exportCommand, menuCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger swaps the runner's logger and returns the previous one.
func (r *Runner) SetLogger(logger *log.Logger) *log.Logger {
	prev := r.logger
	r.logger = logger
	return prev
}

// loadConfig resolves the effective configuration for a command invocation.
// File values load first, then environment variables overlay them.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if path == "" {
		path = r.configPath
	}
	if path == "" {
		path = "config.toml"
	}

	config := r.config
	if _, err := os.Stat(path); err == nil {
		if loaded, err := shared.LoadConfig(path); err == nil {
			config = loaded
			r.configPath = path
		} else {
			r.logger.Warn("failed to load config, using defaults", "error", err)
		}
	}
	config.ApplyEnv()

	if lvl, err := log.ParseLevel(config.Log.Level); err == nil {
		shared.SetLogLevel(r.logger, lvl)
	}

	r.config = config
	return config
}

// withCatalog opens a session, wires the repositories, and hands the catalog
// to fn. The session closes when fn returns, on every path.
func (r *Runner) withCatalog(ctx context.Context, cmd *cli.Command, fn func(*services.Catalog) error) error {
	config := r.loadConfig(cmd)

	conn, err := r.open(ctx, config.Cassandra, r.logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	catalog := services.NewCatalog(services.CatalogOpts{
		Artists:    repositories.NewArtistRepository(conn),
		Songs:      repositories.NewSongRepository(conn),
		Recordings: repositories.NewRecordingRepository(conn),
		Logger:     r.logger,
	})
	return fn(catalog)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
