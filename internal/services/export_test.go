package services

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/shared"
	tu "github.com/avillegas/fonoteca/internal/testing"
)

func seedExportCatalog(t *testing.T) catalogFixture {
	t.Helper()

	f := newTestCatalog(t)
	f.artists.Seed(
		&models.Artist{ID: "a1", Name: "Mercedes Sosa", Country: "Argentina", Awards: []string{"Gardel"}},
		&models.Artist{ID: "a2", Name: "Violeta Parra", Country: "Chile"},
	)
	f.songs.Seed(
		&models.Song{ID: "s1", Title: "Gracias a la Vida", ArtistID: "a1", Genre: "Folk", Year: 1971, DurationSeconds: 245},
	)
	f.recordings.Seed(
		&models.Recording{ID: "r1", SongID: "s1", ArtistID: "a1", DurationSeconds: 250, RecordedOn: tu.Day(2024, time.June, 1)},
	)
	return f
}

func TestExport(t *testing.T) {
	ctx := context.Background()

	t.Run("writes json files and a manifest", func(t *testing.T) {
		f := seedExportCatalog(t)
		dir := filepath.Join(t.TempDir(), "dump")

		result, err := f.catalog.Export(ctx, ExportOpts{OutputDir: dir, RateLimit: 100000})
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}

		if result.Format != "json" {
			t.Errorf("format = %q, want the json default", result.Format)
		}
		if result.Artists != 2 || result.Songs != 1 || result.Recordings != 1 {
			t.Errorf("unexpected counts %+v", result)
		}
		if len(result.Files) != 3 {
			t.Fatalf("expected 3 files, got %v", result.Files)
		}
		for _, name := range []string{"artists.json", "songs.json", "recordings.json", "export_manifest.json"} {
			tu.AssertFileExists(t, filepath.Join(dir, name))
		}

		var manifest ExportResult
		if err := json.Unmarshal([]byte(tu.MustReadFile(t, result.ManifestPath)), &manifest); err != nil {
			t.Fatalf("manifest should be valid JSON: %v", err)
		}
		if manifest.Artists != 2 {
			t.Errorf("manifest artists = %d, want 2", manifest.Artists)
		}

		data := tu.MustReadFile(t, filepath.Join(dir, "artists.json"))
		if !strings.Contains(data, "Mercedes Sosa") {
			t.Errorf("expected artist rows in the dump, got %s", data)
		}
	})

	t.Run("writes csv files", func(t *testing.T) {
		f := seedExportCatalog(t)
		dir := filepath.Join(t.TempDir(), "dump")

		result, err := f.catalog.Export(ctx, ExportOpts{Format: "csv", OutputDir: dir, RateLimit: 100000})
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if result.Format != "csv" {
			t.Errorf("format = %q, want csv", result.Format)
		}

		data := tu.MustReadFile(t, filepath.Join(dir, "artists.csv"))
		if !strings.HasPrefix(data, "ID,Name,Country,Awards") {
			t.Errorf("expected a CSV header, got %s", data)
		}
		if !strings.Contains(data, "Mercedes Sosa") {
			t.Errorf("expected artist rows, got %s", data)
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		f := seedExportCatalog(t)

		_, err := f.catalog.Export(ctx, ExportOpts{Format: "xml", OutputDir: t.TempDir()})
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("Export() error = %v, want ErrInvalidArgument", err)
		}
	})

	t.Run("stops when a repository fails", func(t *testing.T) {
		f := seedExportCatalog(t)
		f.artists.Err = shared.ErrConnection

		_, err := f.catalog.Export(ctx, ExportOpts{OutputDir: t.TempDir(), RateLimit: 100000})
		if !errors.Is(err, shared.ErrConnection) {
			t.Errorf("Export() error = %v, want ErrConnection", err)
		}
	})

	t.Run("aborts when interrupted", func(t *testing.T) {
		f := seedExportCatalog(t)

		canceled, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.catalog.Export(canceled, ExportOpts{OutputDir: t.TempDir(), RateLimit: 1})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Export() error = %v, want context.Canceled", err)
		}
	})

	t.Run("exports an empty catalog", func(t *testing.T) {
		f := newTestCatalog(t)
		dir := filepath.Join(t.TempDir(), "dump")

		result, err := f.catalog.Export(ctx, ExportOpts{OutputDir: dir, RateLimit: 100000})
		if err != nil {
			t.Fatalf("Export() error = %v", err)
		}
		if result.Artists != 0 || result.Songs != 0 || result.Recordings != 0 {
			t.Errorf("unexpected counts %+v", result)
		}
		if len(result.Files) != 3 {
			t.Errorf("expected the three entity files even when empty, got %v", result.Files)
		}
	})
}
