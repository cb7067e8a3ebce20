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

// RecordingAdd registers a recording of an existing song.
func (r *Runner) RecordingAdd(ctx context.Context, cmd *cli.Command) error {
	day, err := shared.ParseDate(cmd.String("on"))
	if err != nil {
		return err
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		rec := &models.Recording{
			SongID:          cmd.String("song"),
			ArtistID:        cmd.String("artist"),
			DurationSeconds: int(cmd.Int("duration")),
			RecordedOn:      day,
		}
		if err := catalog.RegisterRecording(ctx, rec); err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(rec, cmd.Bool("pretty"))
		}
		return r.writePlain("✓ Registered %s\n", formatter.RecordingLine(rec))
	})
}

// RecordingGet prints one recording.
func (r *Runner) RecordingGet(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: recording id", shared.ErrMissingArgument)
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		rec, err := catalog.GetRecording(ctx, id)
		if err != nil {
			return err
		}
		if cmd.Bool("json") {
			return r.writeJSON(rec, cmd.Bool("pretty"))
		}
		return r.writePlain("%s\n", formatter.RecordingLine(rec))
	})
}

// RecordingRemove deletes a recording.
func (r *Runner) RecordingRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: recording id", shared.ErrMissingArgument)
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		if err := catalog.RemoveRecording(ctx, id); err != nil {
			return err
		}
		return r.writePlain("✓ Deleted recording %s\n", id)
	})
}

// RecordingList prints recordings, optionally only those made on one day.
func (r *Runner) RecordingList(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		var recs []*models.Recording
		var err error

		if on := cmd.String("on"); on != "" {
			day, derr := shared.ParseDate(on)
			if derr != nil {
				return derr
			}
			recs, err = catalog.RecordingsOn(ctx, day)
		} else {
			recs, err = catalog.ListRecordings(ctx)
		}
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(recs, cmd.Bool("pretty"))
		}
		r.writePlainHeader(fmt.Sprintf("Recordings (%d)", len(recs)))
		for _, rec := range recs {
			r.writePlain("%s\n", formatter.RecordingLine(rec))
		}
		return nil
	})
}

// RecordingPurge deletes every recording made on a day.
func (r *Runner) RecordingPurge(ctx context.Context, cmd *cli.Command) error {
	day, err := shared.ParseDate(cmd.String("on"))
	if err != nil {
		return err
	}
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		n, err := catalog.PurgeRecordingsOn(ctx, day)
		if err != nil {
			return err
		}
		return r.writePlain("✓ Deleted %d recording(s) from %s\n", n, shared.FormatDate(day))
	})
}
