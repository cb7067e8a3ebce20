package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/shared"
	tu "github.com/avillegas/fonoteca/internal/testing"
)

func TestArtistRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)
		artist := &models.Artist{Name: "Mercedes Sosa", Country: "Argentina"}

		if err := repo.Create(ctx, artist); err != nil {
			t.Fatalf("failed to create artist: %v", err)
		}

		if artist.ID == "" {
			t.Error("artist ID should be set after creation")
		}
		if calls := db.CallsMatching("INSERT INTO artists"); len(calls) != 1 {
			t.Fatalf("expected 1 insert, got %d", len(calls))
		}
		tally := db.CallsMatching("artist_count_by_country")
		if len(tally) != 1 {
			t.Fatalf("expected the country tally bumped, got %d calls", len(tally))
		}
		if tally[0].Args[0] != 1 || tally[0].Args[1] != "Argentina" {
			t.Errorf("unexpected tally args %v", tally[0].Args)
		}
	})

	t.Run("Create without country skips the tally", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)

		if err := repo.Create(ctx, &models.Artist{Name: "Unknown"}); err != nil {
			t.Fatalf("failed to create artist: %v", err)
		}
		if calls := db.CallsMatching("artist_count_by_country"); len(calls) != 0 {
			t.Errorf("expected no tally call, got %d", len(calls))
		}
	})

	t.Run("Create normalizes awards", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)
		artist := &models.Artist{Name: "Mercedes Sosa", Awards: []string{"Gardel", "gardel", " Grammy "}}

		if err := repo.Create(ctx, artist); err != nil {
			t.Fatalf("failed to create artist: %v", err)
		}
		if len(artist.Awards) != 2 || artist.Awards[0] != "Gardel" || artist.Awards[1] != "Grammy" {
			t.Errorf("awards = %v", artist.Awards)
		}
	})

	t.Run("Create rejects invalid input", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)

		err := repo.Create(ctx, &models.Artist{Name: "   "})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if len(db.Calls) != 0 {
			t.Errorf("expected no statements for invalid input, got %d", len(db.Calls))
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["FROM artists WHERE id"] = [][]any{
			{"a1", "Mercedes Sosa", "Argentina", []string{"Gardel"}},
		}
		repo := NewArtistRepository(db)

		artist, err := repo.Get(ctx, "a1")
		if err != nil {
			t.Fatalf("failed to get artist: %v", err)
		}
		if artist.Name != "Mercedes Sosa" || artist.Country != "Argentina" {
			t.Errorf("unexpected artist %+v", artist)
		}
		if len(artist.Awards) != 1 || artist.Awards[0] != "Gardel" {
			t.Errorf("awards = %v", artist.Awards)
		}
	})

	t.Run("Get missing artist", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)

		_, err := repo.Get(ctx, "ghost")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)
		artist := &models.Artist{ID: "a1", Name: "Renamed"}

		if err := repo.Update(ctx, artist); err != nil {
			t.Fatalf("failed to update artist: %v", err)
		}
		calls := db.CallsMatching("UPDATE artists SET name")
		if len(calls) != 1 {
			t.Fatalf("expected 1 update, got %d", len(calls))
		}
		if calls[0].Args[0] != "Renamed" || calls[0].Args[2] != "a1" {
			t.Errorf("unexpected update args %v", calls[0].Args)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["FROM artists WHERE id"] = [][]any{
			{"a1", "Mercedes Sosa", "Argentina", []string{}},
		}
		repo := NewArtistRepository(db)

		if err := repo.Delete(ctx, "a1"); err != nil {
			t.Fatalf("failed to delete artist: %v", err)
		}
		if calls := db.CallsMatching("DELETE FROM artists"); len(calls) != 1 {
			t.Fatalf("expected 1 delete, got %d", len(calls))
		}
		tally := db.CallsMatching("artist_count_by_country")
		if len(tally) != 1 || tally[0].Args[0] != -1 {
			t.Errorf("expected the tally decremented, got %v", tally)
		}
	})

	t.Run("Delete missing artist", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)

		if err := repo.Delete(ctx, "ghost"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		if calls := db.CallsMatching("DELETE"); len(calls) != 0 {
			t.Errorf("expected no delete for a missing artist, got %d", len(calls))
		}
	})

	t.Run("List", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["FROM artists"] = [][]any{
			{"a1", "Mercedes Sosa", "Argentina", []string{"Gardel"}},
			{"a2", "Violeta Parra", "Chile", []string{}},
		}
		repo := NewArtistRepository(db)

		artists, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list artists: %v", err)
		}
		if len(artists) != 2 {
			t.Fatalf("expected 2 artists, got %d", len(artists))
		}
		if artists[1].Name != "Violeta Parra" {
			t.Errorf("unexpected order: %+v", artists[1])
		}
	})

	t.Run("AddAwards", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)

		if err := repo.AddAwards(ctx, "a1", []string{"Grammy"}); err != nil {
			t.Fatalf("failed to add awards: %v", err)
		}
		calls := db.CallsMatching("SET awards = awards + ?")
		if len(calls) != 1 {
			t.Fatalf("expected 1 union update, got %d", len(calls))
		}
		if calls[0].Args[1] != "a1" {
			t.Errorf("unexpected args %v", calls[0].Args)
		}
	})

	t.Run("AddAwards skips empty lists", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)

		if err := repo.AddAwards(ctx, "a1", nil); err != nil {
			t.Fatalf("expected a no-op, got %v", err)
		}
		if len(db.Calls) != 0 {
			t.Errorf("expected no statements, got %d", len(db.Calls))
		}
	})

	t.Run("CountByCountry", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["artist_count_by_country"] = [][]any{{int64(7)}}
		repo := NewArtistRepository(db)

		total, err := repo.CountByCountry(ctx, "Argentina")
		if err != nil {
			t.Fatalf("failed to count artists: %v", err)
		}
		if total != 7 {
			t.Errorf("expected 7, got %d", total)
		}
	})

	t.Run("CountByCountry defaults to zero", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewArtistRepository(db)

		total, err := repo.CountByCountry(ctx, "Atlantis")
		if err != nil {
			t.Fatalf("expected a zero count, got %v", err)
		}
		if total != 0 {
			t.Errorf("expected 0, got %d", total)
		}
	})

	t.Run("CountByCountry surfaces query failures", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Errs["artist_count_by_country"] = shared.ErrQuery
		repo := NewArtistRepository(db)

		if _, err := repo.CountByCountry(ctx, "Argentina"); !errors.Is(err, shared.ErrQuery) {
			t.Errorf("expected ErrQuery, got %v", err)
		}
	})
}

func TestSongRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewSongRepository(db)
		song := &models.Song{Title: "Gracias a la Vida", ArtistID: "a1", DurationSeconds: 245}

		if err := repo.Create(ctx, song); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}
		if song.ID == "" {
			t.Error("song ID should be set after creation")
		}
		if calls := db.CallsMatching("INSERT INTO songs"); len(calls) != 1 {
			t.Errorf("expected 1 insert, got %d", len(calls))
		}
	})

	t.Run("Create keeps a caller supplied id", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewSongRepository(db)
		song := &models.Song{ID: "USUM71703861", Title: "Track", ArtistID: "a1", DurationSeconds: 180}

		if err := repo.Create(ctx, song); err != nil {
			t.Fatalf("failed to create song: %v", err)
		}
		if song.ID != "USUM71703861" {
			t.Errorf("expected the supplied id kept, got %q", song.ID)
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["FROM songs WHERE id"] = [][]any{
			{"s1", "Gracias a la Vida", "a1", "Folk", 1971, 245},
		}
		repo := NewSongRepository(db)

		song, err := repo.Get(ctx, "s1")
		if err != nil {
			t.Fatalf("failed to get song: %v", err)
		}
		if song.Title != "Gracias a la Vida" || song.Year != 1971 {
			t.Errorf("unexpected song %+v", song)
		}
	})

	t.Run("Get missing song", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewSongRepository(db)

		if _, err := repo.Get(ctx, "ghost"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewSongRepository(db)

		if err := repo.Delete(ctx, "s1"); err != nil {
			t.Fatalf("failed to delete song: %v", err)
		}
		calls := db.CallsMatching("DELETE FROM songs")
		if len(calls) != 1 || calls[0].Args[0] != "s1" {
			t.Errorf("unexpected delete calls %v", calls)
		}
	})

	t.Run("ListByArtist", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["WHERE artist_id"] = [][]any{
			{"s1", "Gracias a la Vida", "a1", "Folk", 1971, 245},
			{"s2", "Volver a los 17", "a1", "Folk", 1966, 262},
		}
		repo := NewSongRepository(db)

		songs, err := repo.ListByArtist(ctx, "a1")
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
		calls := db.CallsMatching("WHERE artist_id")
		if len(calls) != 1 || calls[0].Args[0] != "a1" {
			t.Errorf("unexpected query calls %v", calls)
		}
	})

	t.Run("ListByGenre", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["WHERE genre"] = [][]any{
			{"s1", "Gracias a la Vida", "a1", "Folk", 1971, 245},
		}
		repo := NewSongRepository(db)

		songs, err := repo.ListByGenre(ctx, "Folk")
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 1 || songs[0].Genre != "Folk" {
			t.Errorf("unexpected songs %+v", songs)
		}
	})

	t.Run("List empty catalog", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewSongRepository(db)

		songs, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("failed to list songs: %v", err)
		}
		if len(songs) != 0 {
			t.Errorf("expected no songs, got %d", len(songs))
		}
	})
}

func TestRecordingRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create dual writes", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewRecordingRepository(db)
		rec := &models.Recording{
			SongID:          "s1",
			ArtistID:        "a1",
			DurationSeconds: 250,
			RecordedOn:      time.Date(2024, time.June, 1, 15, 30, 0, 0, time.UTC),
		}

		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("failed to create recording: %v", err)
		}
		if rec.ID == "" {
			t.Error("recording ID should be set after creation")
		}
		if calls := db.CallsMatching("INSERT INTO recordings "); len(calls) != 1 {
			t.Errorf("expected 1 primary insert, got %d", len(calls))
		}
		if calls := db.CallsMatching("INSERT INTO recordings_by_date"); len(calls) != 1 {
			t.Errorf("expected 1 by-date insert, got %d", len(calls))
		}
	})

	t.Run("Create keeps only the civil date", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewRecordingRepository(db)
		rec := &models.Recording{
			SongID:          "s1",
			ArtistID:        "a1",
			DurationSeconds: 250,
			RecordedOn:      time.Date(2024, time.June, 1, 23, 59, 59, 0, time.UTC),
		}

		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("failed to create recording: %v", err)
		}
		want := tu.Day(2024, time.June, 1)
		if !rec.RecordedOn.Equal(want) {
			t.Errorf("recorded_on = %v, want %v", rec.RecordedOn, want)
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["FROM recordings WHERE id"] = [][]any{
			{"r1", "s1", "a1", 250, tu.Day(2024, time.June, 1)},
		}
		repo := NewRecordingRepository(db)

		rec, err := repo.Get(ctx, "r1")
		if err != nil {
			t.Fatalf("failed to get recording: %v", err)
		}
		if rec.SongID != "s1" || rec.DurationSeconds != 250 {
			t.Errorf("unexpected recording %+v", rec)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["FROM recordings WHERE id"] = [][]any{
			{"r1", "s1", "a1", 250, tu.Day(2024, time.June, 1)},
		}
		repo := NewRecordingRepository(db)

		if err := repo.Delete(ctx, "r1"); err != nil {
			t.Fatalf("failed to delete recording: %v", err)
		}
		if calls := db.CallsMatching("DELETE FROM recordings WHERE id"); len(calls) != 1 {
			t.Errorf("expected 1 primary delete, got %d", len(calls))
		}
		byDate := db.CallsMatching("DELETE FROM recordings_by_date")
		if len(byDate) != 1 {
			t.Fatalf("expected 1 by-date delete, got %d", len(byDate))
		}
		if on, ok := byDate[0].Args[0].(time.Time); !ok || !on.Equal(tu.Day(2024, time.June, 1)) {
			t.Errorf("unexpected by-date args %v", byDate[0].Args)
		}
	})

	t.Run("ListByDate", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["FROM recordings_by_date"] = [][]any{
			{"r1", "s1", "a1", 250, tu.Day(2024, time.June, 1)},
			{"r2", "s2", "a1", 190, tu.Day(2024, time.June, 1)},
		}
		repo := NewRecordingRepository(db)

		recs, err := repo.ListByDate(ctx, time.Date(2024, time.June, 1, 18, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatalf("failed to list recordings: %v", err)
		}
		if len(recs) != 2 {
			t.Fatalf("expected 2 recordings, got %d", len(recs))
		}
		calls := db.CallsMatching("FROM recordings_by_date")
		if on, ok := calls[0].Args[0].(time.Time); !ok || !on.Equal(tu.Day(2024, time.June, 1)) {
			t.Errorf("expected the query keyed by the civil date, got %v", calls[0].Args)
		}
	})

	t.Run("DeleteByDate", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		db.Rows["FROM recordings_by_date"] = [][]any{
			{"r1", "s1", "a1", 250, tu.Day(2024, time.June, 1)},
			{"r2", "s2", "a1", 190, tu.Day(2024, time.June, 1)},
		}
		repo := NewRecordingRepository(db)

		n, err := repo.DeleteByDate(ctx, tu.Day(2024, time.June, 1))
		if err != nil {
			t.Fatalf("failed to purge recordings: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 deletions, got %d", n)
		}
		if calls := db.CallsMatching("DELETE FROM recordings WHERE id"); len(calls) != 2 {
			t.Errorf("expected 2 primary deletes, got %d", len(calls))
		}
		if calls := db.CallsMatching("DELETE FROM recordings_by_date WHERE recorded_on = ?"); len(calls) != 1 {
			t.Errorf("expected the partition dropped once, got %d", len(calls))
		}
	})

	t.Run("DeleteByDate with nothing recorded", func(t *testing.T) {
		db := tu.NewFakeQuerier()
		repo := NewRecordingRepository(db)

		n, err := repo.DeleteByDate(ctx, tu.Day(2024, time.June, 2))
		if err != nil {
			t.Fatalf("expected a clean zero, got %v", err)
		}
		if n != 0 {
			t.Errorf("expected 0 deletions, got %d", n)
		}
		if calls := db.CallsMatching("DELETE"); len(calls) != 0 {
			t.Errorf("expected no deletes, got %d", len(calls))
		}
	})
}
