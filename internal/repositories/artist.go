package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/avillegas/fonoteca/internal/store"
)

// ArtistRepository implements [models.ArtistRepository] for artist
// persistence, keeping the per-country tally in step with writes.
type ArtistRepository struct {
	db store.Querier
}

var _ models.ArtistRepository = (*ArtistRepository)(nil)

// NewArtistRepository creates a new [ArtistRepository] with the given session
func NewArtistRepository(db store.Querier) *ArtistRepository {
	return &ArtistRepository{db: db}
}

// Create inserts a new artist, generating an ID when none is set, and bumps
// the country tally.
func (r *ArtistRepository) Create(ctx context.Context, artist *models.Artist) error {
	if artist.ID == "" {
		artist.ID = shared.GenerateID()
	}
	artist.Awards = models.NormalizeAwards(artist.Awards)

	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `INSERT INTO artists (id, name, country, awards) VALUES (?, ?, ?, ?)`

	if err := r.db.Exec(ctx, query, artist.ID, artist.Name, artist.Country, artist.Awards); err != nil {
		return fmt.Errorf("failed to insert artist %s: %w", artist.ID, err)
	}

	if artist.Country != "" {
		return r.tally(ctx, artist.Country, 1)
	}
	return nil
}

// Get retrieves an artist by ID.
func (r *ArtistRepository) Get(ctx context.Context, id string) (*models.Artist, error) {
	query := `SELECT id, name, country, awards FROM artists WHERE id = ?`

	var artist models.Artist
	dest := []any{&artist.ID, &artist.Name, &artist.Country, &artist.Awards}
	if err := r.db.Scan(ctx, query, dest, id); err != nil {
		return nil, fmt.Errorf("artist %s: %w", id, err)
	}
	return &artist, nil
}

// Update rewrites an artist's name and awards. The country is fixed at
// create time so the tally stays consistent, and identifiers never change.
func (r *ArtistRepository) Update(ctx context.Context, artist *models.Artist) error {
	artist.Awards = models.NormalizeAwards(artist.Awards)

	if err := artist.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `UPDATE artists SET name = ?, awards = ? WHERE id = ?`

	if err := r.db.Exec(ctx, query, artist.Name, artist.Awards, artist.ID); err != nil {
		return fmt.Errorf("failed to update artist %s: %w", artist.ID, err)
	}
	return nil
}

// Delete removes an artist and settles the country tally. The row is read
// first so the tally knows which country to decrement.
func (r *ArtistRepository) Delete(ctx context.Context, id string) error {
	artist, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	query := `DELETE FROM artists WHERE id = ?`

	if err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete artist %s: %w", id, err)
	}

	if artist.Country != "" {
		return r.tally(ctx, artist.Country, -1)
	}
	return nil
}

// List retrieves all artists.
func (r *ArtistRepository) List(ctx context.Context) ([]*models.Artist, error) {
	query := `SELECT id, name, country, awards FROM artists`

	artists, err := store.Rows(ctx, r.db, query, func(scan store.ScanFunc) (*models.Artist, error) {
		var a models.Artist
		if err := scan(&a.ID, &a.Name, &a.Country, &a.Awards); err != nil {
			return nil, err
		}
		return &a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	return artists, nil
}

// AddAwards unions award names into the artist's award set.
func (r *ArtistRepository) AddAwards(ctx context.Context, id string, awards []string) error {
	if len(awards) == 0 {
		return nil
	}

	query := `UPDATE artists SET awards = awards + ? WHERE id = ?`

	if err := r.db.Exec(ctx, query, awards, id); err != nil {
		return fmt.Errorf("failed to add awards to artist %s: %w", id, err)
	}
	return nil
}

// CountByCountry reads the artist tally for a country. A country without a
// counter row counts zero.
func (r *ArtistRepository) CountByCountry(ctx context.Context, country string) (int64, error) {
	query := `SELECT total FROM artist_count_by_country WHERE country = ?`

	var total int64
	err := r.db.Scan(ctx, query, []any{&total}, country)
	if errors.Is(err, shared.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count artists in %s: %w", country, err)
	}
	return total, nil
}

// tally adjusts the per-country artist counter.
func (r *ArtistRepository) tally(ctx context.Context, country string, delta int) error {
	query := `UPDATE artist_count_by_country SET total = total + ? WHERE country = ?`

	if err := r.db.Exec(ctx, query, delta, country); err != nil {
		return fmt.Errorf("failed to adjust artist tally for %s: %w", country, err)
	}
	return nil
}
