package main

import (
	"context"
	"fmt"

	"github.com/avillegas/fonoteca/internal/formatter"
	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/services"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/urfave/cli/v3"
)

// SongAdd creates a song for an existing artist.
func (r *Runner) SongAdd(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		song := &models.Song{
			Title:           cmd.String("title"),
			ArtistID:        cmd.String("artist"),
			Genre:           cmd.String("genre"),
			Year:            int(cmd.Int("year")),
			DurationSeconds: int(cmd.Int("duration")),
		}
		if err := catalog.AddSong(ctx, song); err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(song, cmd.Bool("pretty"))
		}
		return r.writePlain("✓ Added %s\n", formatter.SongLine(song))
	})
}

// SongGet prints one song.
func (r *Runner) SongGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		song, err := catalog.GetSong(ctx, id)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(song, cmd.Bool("pretty"))
		}
		return r.writePlain("%s\n", formatter.SongLine(song))
	})
}

// SongRemove deletes a song.
func (r *Runner) SongRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: song id", shared.ErrMissingArgument)
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		if err := catalog.RemoveSong(ctx, id); err != nil {
			return err
		}
		return r.writePlain("✓ Deleted song %s\n", id)
	})
}

// SongList prints songs, optionally filtered by artist or genre.
func (r *Runner) SongList(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		var songs []*models.Song
		var err error

		switch {
		case cmd.String("artist") != "":
			songs, err = catalog.SongsByArtist(ctx, cmd.String("artist"))
		case cmd.String("genre") != "":
			songs, err = catalog.SongsByGenre(ctx, cmd.String("genre"))
		default:
			songs, err = catalog.ListSongs(ctx)
		}
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(songs, cmd.Bool("pretty"))
		}
		r.writePlainHeader(fmt.Sprintf("Songs (%d)", len(songs)))
		for _, song := range songs {
			r.writePlain("%s\n", formatter.SongLine(song))
		}
		return nil
	})
}
