package main

import (
	"context"
	"fmt"

	"github.com/avillegas/fonoteca/internal/repositories"
	"github.com/avillegas/fonoteca/internal/services"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/avillegas/fonoteca/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"
)

// Menu launches the interactive catalog menu.
func (r *Runner) Menu(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	// Redirect logs to a file to avoid interfering with TUI rendering
	logPath := config.Log.File
	if logPath == "" {
		logPath = "./tmp/fonoteca-menu.log"
	}
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	prev := r.SetLogger(fileLogger)
	defer r.SetLogger(prev)

	conn, err := r.open(ctx, config.Cassandra, fileLogger)
	if err != nil {
		return err
	}
	defer conn.Close()

	catalog := services.NewCatalog(services.CatalogOpts{
		Artists:    repositories.NewArtistRepository(conn),
		Songs:      repositories.NewSongRepository(conn),
		Recordings: repositories.NewRecordingRepository(conn),
		Logger:     shared.WithLogger(fileLogger, "component", "catalog"),
	})

	model := ui.NewModel(ctx, catalog)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running menu: %w", err)
	}

	return nil
}
