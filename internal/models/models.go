package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avillegas/fonoteca/internal/shared"
)

// Model defines the base interface for all persistent entities.
type Model interface {
	Key() string     // Key returns the primary key column value
	Validate() error // Validate checks the entity's data before a write
}

// Repository defines the interface for data access operations.
// Implementations handle statement-to-struct mapping for one entity type.
type Repository[T Model] interface {
	Create(ctx context.Context, model T) error     // Create inserts a new entity
	Get(ctx context.Context, id string) (T, error) // Get retrieves an entity by its ID
	Update(ctx context.Context, model T) error     // Update rewrites an entity's mutable columns
	Delete(ctx context.Context, id string) error   // Delete removes an entity by its ID
	List(ctx context.Context) ([]T, error)         // List retrieves all entities
}

// ArtistRepository persists [Artist] entities.
type ArtistRepository interface {
	Repository[*Artist]

	// AddAwards unions award names into the artist's award set. Callers
	// are expected to pass names not already present.
	AddAwards(ctx context.Context, id string, awards []string) error

	// CountByCountry reads the denormalized artist tally for a country.
	// A country no artist was ever created in counts zero.
	CountByCountry(ctx context.Context, country string) (int64, error)
}

// SongRepository persists [Song] entities.
type SongRepository interface {
	Repository[*Song]

	ListByArtist(ctx context.Context, artistID string) ([]*Song, error)
	ListByGenre(ctx context.Context, genre string) ([]*Song, error)
}

// RecordingRepository persists [Recording] entities.
type RecordingRepository interface {
	Repository[*Recording]

	ListByDate(ctx context.Context, day time.Time) ([]*Recording, error)

	// DeleteByDate removes every recording made on the given day from both
	// the primary and the by-date table, returning how many were removed.
	DeleteByDate(ctx context.Context, day time.Time) (int, error)
}

// Artist is a performer with a set of named awards. Awards are unordered and
// deduplicated case-insensitively, keeping the first spelling seen.
type Artist struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Country string   `json:"country,omitempty"`
	Awards  []string `json:"awards,omitempty"`
}

func (a *Artist) Key() string { return a.ID }

// Validate checks required fields.
func (a *Artist) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: artist id is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: artist name is required", shared.ErrInvalidInput)
	}
	return nil
}

// Song is a composition. ArtistID references an [Artist] by identifier; the
// reference is checked by the service layer, not by storage.
type Song struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	ArtistID        string `json:"artist_id"`
	Genre           string `json:"genre,omitempty"`
	Year            int    `json:"year,omitempty"`
	DurationSeconds int    `json:"duration_seconds"`
}

func (s *Song) Key() string { return s.ID }

// Validate checks required fields.
func (s *Song) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: song id is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: song title is required", shared.ErrInvalidInput)
	}
	if s.ArtistID == "" {
		return fmt.Errorf("%w: song artist id is required", shared.ErrInvalidInput)
	}
	if s.DurationSeconds <= 0 {
		return fmt.Errorf("%w: song duration must be positive", shared.ErrInvalidInput)
	}
	return nil
}

// Recording is a dated performance of a [Song]. RecordedOn carries only the
// civil date; the time of day is discarded by the storage layer.
type Recording struct {
	ID              string    `json:"id"`
	SongID          string    `json:"song_id"`
	ArtistID        string    `json:"artist_id"`
	DurationSeconds int       `json:"duration_seconds"`
	RecordedOn      time.Time `json:"recorded_on"`
}

func (r *Recording) Key() string { return r.ID }

// Validate checks required fields.
func (r *Recording) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: recording id is required", shared.ErrInvalidInput)
	}
	if r.SongID == "" {
		return fmt.Errorf("%w: recording song id is required", shared.ErrInvalidInput)
	}
	if r.ArtistID == "" {
		return fmt.Errorf("%w: recording artist id is required", shared.ErrInvalidInput)
	}
	if r.DurationSeconds <= 0 {
		return fmt.Errorf("%w: recording duration must be positive", shared.ErrInvalidInput)
	}
	if r.RecordedOn.IsZero() {
		return fmt.Errorf("%w: recording date is required", shared.ErrInvalidInput)
	}
	return nil
}

// awardKey normalizes an award name for comparison: lowercased with
// whitespace collapsed.
func awardKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NormalizeAwards deduplicates award names case-insensitively, keeping the
// first spelling of each and the order they arrived in. Blank names are
// dropped.
func NormalizeAwards(awards []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, award := range awards {
		award = strings.TrimSpace(award)
		key := awardKey(award)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, award)
	}
	return out
}

// MissingAwards returns the members of incoming not already present in
// existing, comparing case-insensitively. The result is itself deduplicated.
func MissingAwards(existing, incoming []string) []string {
	have := map[string]bool{}
	for _, award := range existing {
		have[awardKey(award)] = true
	}

	var out []string
	for _, award := range NormalizeAwards(incoming) {
		if !have[awardKey(award)] {
			out = append(out, award)
		}
	}
	return out
}
