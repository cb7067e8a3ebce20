package repositories

import (
	"context"
	"fmt"

	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/avillegas/fonoteca/internal/store"
)

// SongRepository implements [models.SongRepository] for song persistence.
type SongRepository struct {
	db store.Querier
}

var _ models.SongRepository = (*SongRepository)(nil)

// NewSongRepository creates a new [SongRepository] with the given session
func NewSongRepository(db store.Querier) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song, generating an ID when none is set. Callers may
// also supply their own identifier, an ISRC for instance.
func (r *SongRepository) Create(ctx context.Context, song *models.Song) error {
	if song.ID == "" {
		song.ID = shared.GenerateID()
	}

	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `INSERT INTO songs (id, title, artist_id, genre, year, duration_seconds) VALUES (?, ?, ?, ?, ?, ?)`

	err := r.db.Exec(ctx, query, song.ID, song.Title, song.ArtistID, song.Genre, song.Year, song.DurationSeconds)
	if err != nil {
		return fmt.Errorf("failed to insert song %s: %w", song.ID, err)
	}
	return nil
}

// Get retrieves a song by ID.
func (r *SongRepository) Get(ctx context.Context, id string) (*models.Song, error) {
	query := `SELECT id, title, artist_id, genre, year, duration_seconds FROM songs WHERE id = ?`

	var song models.Song
	dest := []any{&song.ID, &song.Title, &song.ArtistID, &song.Genre, &song.Year, &song.DurationSeconds}
	if err := r.db.Scan(ctx, query, dest, id); err != nil {
		return nil, fmt.Errorf("song %s: %w", id, err)
	}
	return &song, nil
}

// Update rewrites a song's mutable columns. The artist reference is fixed at
// create time.
func (r *SongRepository) Update(ctx context.Context, song *models.Song) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `UPDATE songs SET title = ?, genre = ?, year = ?, duration_seconds = ? WHERE id = ?`

	err := r.db.Exec(ctx, query, song.Title, song.Genre, song.Year, song.DurationSeconds, song.ID)
	if err != nil {
		return fmt.Errorf("failed to update song %s: %w", song.ID, err)
	}
	return nil
}

// Delete removes a song by ID.
func (r *SongRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM songs WHERE id = ?`

	if err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete song %s: %w", id, err)
	}
	return nil
}

// List retrieves all songs.
func (r *SongRepository) List(ctx context.Context) ([]*models.Song, error) {
	query := `SELECT id, title, artist_id, genre, year, duration_seconds FROM songs`

	songs, err := store.Rows(ctx, r.db, query, scanSong)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	return songs, nil
}

// ListByArtist retrieves all songs referencing an artist, via the artist_id
// secondary index.
func (r *SongRepository) ListByArtist(ctx context.Context, artistID string) ([]*models.Song, error) {
	query := `SELECT id, title, artist_id, genre, year, duration_seconds FROM songs WHERE artist_id = ?`

	songs, err := store.Rows(ctx, r.db, query, scanSong, artistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs by artist %s: %w", artistID, err)
	}
	return songs, nil
}

// ListByGenre retrieves all songs in a genre, via the genre secondary index.
func (r *SongRepository) ListByGenre(ctx context.Context, genre string) ([]*models.Song, error) {
	query := `SELECT id, title, artist_id, genre, year, duration_seconds FROM songs WHERE genre = ?`

	songs, err := store.Rows(ctx, r.db, query, scanSong, genre)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs in genre %s: %w", genre, err)
	}
	return songs, nil
}

func scanSong(scan store.ScanFunc) (*models.Song, error) {
	var s models.Song
	if err := scan(&s.ID, &s.Title, &s.ArtistID, &s.Genre, &s.Year, &s.DurationSeconds); err != nil {
		return nil, err
	}
	return &s, nil
}
