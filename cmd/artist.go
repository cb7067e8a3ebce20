package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/avillegas/fonoteca/internal/formatter"
	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/services"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/urfave/cli/v3"
)

// ArtistAdd creates an artist.
func (r *Runner) ArtistAdd(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		artist := &models.Artist{
			Name:    cmd.String("name"),
			Country: cmd.String("country"),
			Awards:  cmd.StringSlice("award"),
		}
		if err := catalog.AddArtist(ctx, artist); err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(artist, cmd.Bool("pretty"))
		}
		return r.writePlain("✓ Added %s\n", formatter.ArtistLine(artist))
	})
}

// ArtistGet prints one artist.
func (r *Runner) ArtistGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: artist id", shared.ErrMissingArgument)
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		artist, err := catalog.GetArtist(ctx, id)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(artist, cmd.Bool("pretty"))
		}
		return r.writePlain("%s\n", formatter.ArtistLine(artist))
	})
}

// ArtistRename changes an artist's name.
func (r *Runner) ArtistRename(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: artist id", shared.ErrMissingArgument)
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		artist, err := catalog.RenameArtist(ctx, id, cmd.String("name"))
		if err != nil {
			return err
		}
		return r.writePlain("✓ Renamed %s\n", formatter.ArtistLine(artist))
	})
}

// ArtistAward grants awards, skipping ones the artist already holds.
func (r *Runner) ArtistAward(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: artist id", shared.ErrMissingArgument)
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		added, err := catalog.AddAwards(ctx, id, cmd.StringSlice("award"))
		if err != nil {
			return err
		}
		if len(added) == 0 {
			return r.writePlain("No new awards for artist %s\n", id)
		}
		return r.writePlain("✓ Added %d award(s): %s\n", len(added), strings.Join(added, ", "))
	})
}

// ArtistRemove deletes an artist.
func (r *Runner) ArtistRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: artist id", shared.ErrMissingArgument)
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		if err := catalog.RemoveArtist(ctx, id); err != nil {
			return err
		}
		return r.writePlain("✓ Deleted artist %s\n", id)
	})
}

// ArtistList prints every artist.
func (r *Runner) ArtistList(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		artists, err := catalog.ListArtists(ctx)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(artists, cmd.Bool("pretty"))
		}
		r.writePlainHeader(fmt.Sprintf("Artists (%d)", len(artists)))
		for _, artist := range artists {
			r.writePlain("%s\n", formatter.ArtistLine(artist))
		}
		return nil
	})
}

// ArtistCount prints how many artists come from a country.
func (r *Runner) ArtistCount(ctx context.Context, cmd *cli.Command) error {
	country := cmd.String("country")
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		total, err := catalog.ArtistsInCountry(ctx, country)
		if err != nil {
			return err
		}
		return r.writePlain("%d artist(s) from %s\n", total, country)
	})
}
