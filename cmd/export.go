package main

import (
	"context"

	"github.com/avillegas/fonoteca/internal/services"
	"github.com/urfave/cli/v3"
)

// Export dumps the whole catalog to one file per entity plus a manifest.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	return r.withCatalog(ctx, cmd, func(catalog *services.Catalog) error {
		result, err := catalog.Export(ctx, services.ExportOpts{
			Format:    cmd.String("format"),
			OutputDir: cmd.String("out"),
			RateLimit: float64(cmd.Int("rps")),
		})
		if err != nil {
			return err
		}

		r.writePlainHeader("Export Complete")
		r.writePlain("Directory: %s\n", result.OutputDirectory)
		r.writePlain("Format: %s\n", result.Format)
		r.writePlain("Artists: %d\n", result.Artists)
		r.writePlain("Songs: %d\n", result.Songs)
		r.writePlain("Recordings: %d\n", result.Recordings)
		r.writePlainln("Files:")
		for _, f := range result.Files {
			r.writePlain("  - %s\n", f)
		}
		r.writePlain("  - %s\n", result.ManifestPath)
		return nil
	})
}
