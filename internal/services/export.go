package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avillegas/fonoteca/internal/formatter"
	"github.com/avillegas/fonoteca/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for a catalog export.
type ExportOpts struct {
	Format    string  // Export format: json, csv
	OutputDir string  // Base output directory (default: fonoteca_export_{epoch})
	RateLimit float64 // Rows encoded per second (default: 200)
}

// ExportResult summarizes a finished export.
type ExportResult struct {
	OutputDirectory string   `json:"output_directory"`
	Format          string   `json:"format"`
	Artists         int      `json:"artists"`
	Songs           int      `json:"songs"`
	Recordings      int      `json:"recordings"`
	Files           []string `json:"files"`
	ManifestPath    string   `json:"manifest_path"`
	ExportedAt      string   `json:"exported_at"`
}

// Export dumps the whole catalog to one file per entity plus a manifest.
//
// Rows stream through a rate limiter so a dump of a large catalog trickles
// instead of saturating the session; the walk is sequential, matching the
// single-threaded design of the rest of the application.
func (c *Catalog) Export(ctx context.Context, opts ExportOpts) (*ExportResult, error) {
	switch opts.Format {
	case "":
		opts.Format = "json"
	case "json", "csv":
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", shared.ErrInvalidArgument, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("fonoteca_export_%d", time.Now().Unix())
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 200
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	artists, err := c.artists.List(ctx)
	if err != nil {
		return nil, err
	}
	songs, err := c.songs.List(ctx)
	if err != nil {
		return nil, err
	}
	recordings, err := c.recordings.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		OutputDirectory: opts.OutputDir,
		Format:          opts.Format,
		Artists:         len(artists),
		Songs:           len(songs),
		Recordings:      len(recordings),
		ExportedAt:      time.Now().UTC().Format(time.RFC3339),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	// One token per row, so a dump paces out instead of landing in a burst.
	throttle := func(rows int) error {
		for i := 0; i < rows; i++ {
			if err := limiter.Wait(ctx); err != nil {
				return fmt.Errorf("export interrupted: %w", err)
			}
		}
		return nil
	}

	write := func(name string, encode func() ([]byte, error), rows int) error {
		if err := throttle(rows); err != nil {
			return err
		}
		data, err := encode()
		if err != nil {
			return err
		}
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.%s", name, opts.Format))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
		c.logger.Debug("export file written", "path", path, "rows", rows)
		return nil
	}

	if opts.Format == "csv" {
		err = write("artists", func() ([]byte, error) { return formatter.ArtistsToCSV(artists) }, len(artists))
		if err == nil {
			err = write("songs", func() ([]byte, error) { return formatter.SongsToCSV(songs) }, len(songs))
		}
		if err == nil {
			err = write("recordings", func() ([]byte, error) { return formatter.RecordingsToCSV(recordings) }, len(recordings))
		}
	} else {
		err = write("artists", func() ([]byte, error) { return shared.MarshalJSON(artists, true) }, len(artists))
		if err == nil {
			err = write("songs", func() ([]byte, error) { return shared.MarshalJSON(songs, true) }, len(songs))
		}
		if err == nil {
			err = write("recordings", func() ([]byte, error) { return shared.MarshalJSON(recordings, true) }, len(recordings))
		}
	}
	if err != nil {
		return nil, err
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	data, err := shared.MarshalJSON(result, true)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return nil, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	c.logger.Info("catalog exported",
		"dir", opts.OutputDir, "format", opts.Format,
		"artists", len(artists), "songs", len(songs), "recordings", len(recordings))
	return result, nil
}
