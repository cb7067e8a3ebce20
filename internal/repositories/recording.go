package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/avillegas/fonoteca/internal/store"
)

// RecordingRepository implements [models.RecordingRepository] for recording
// persistence, dual-writing rows to the by-date query table.
type RecordingRepository struct {
	db store.Querier
}

var _ models.RecordingRepository = (*RecordingRepository)(nil)

// NewRecordingRepository creates a new [RecordingRepository] with the given session
func NewRecordingRepository(db store.Querier) *RecordingRepository {
	return &RecordingRepository{db: db}
}

// Create inserts a new recording into both the primary and the by-date
// table, generating an ID when none is set. Only the civil date of
// RecordedOn is stored.
func (r *RecordingRepository) Create(ctx context.Context, rec *models.Recording) error {
	if rec.ID == "" {
		rec.ID = shared.GenerateID()
	}
	rec.RecordedOn = truncateToDay(rec.RecordedOn)

	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `INSERT INTO recordings (id, song_id, artist_id, duration_seconds, recorded_on) VALUES (?, ?, ?, ?, ?)`

	err := r.db.Exec(ctx, query, rec.ID, rec.SongID, rec.ArtistID, rec.DurationSeconds, rec.RecordedOn)
	if err != nil {
		return fmt.Errorf("failed to insert recording %s: %w", rec.ID, err)
	}

	query = `INSERT INTO recordings_by_date (recorded_on, id, song_id, artist_id, duration_seconds) VALUES (?, ?, ?, ?, ?)`

	err = r.db.Exec(ctx, query, rec.RecordedOn, rec.ID, rec.SongID, rec.ArtistID, rec.DurationSeconds)
	if err != nil {
		return fmt.Errorf("failed to index recording %s by date: %w", rec.ID, err)
	}
	return nil
}

// Get retrieves a recording by ID.
func (r *RecordingRepository) Get(ctx context.Context, id string) (*models.Recording, error) {
	query := `SELECT id, song_id, artist_id, duration_seconds, recorded_on FROM recordings WHERE id = ?`

	var rec models.Recording
	dest := []any{&rec.ID, &rec.SongID, &rec.ArtistID, &rec.DurationSeconds, &rec.RecordedOn}
	if err := r.db.Scan(ctx, query, dest, id); err != nil {
		return nil, fmt.Errorf("recording %s: %w", id, err)
	}
	return &rec, nil
}

// Update rewrites a recording's duration. The song and artist references and
// the date are fixed at create time; the date keys the by-date table.
func (r *RecordingRepository) Update(ctx context.Context, rec *models.Recording) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `UPDATE recordings SET duration_seconds = ? WHERE id = ?`

	if err := r.db.Exec(ctx, query, rec.DurationSeconds, rec.ID); err != nil {
		return fmt.Errorf("failed to update recording %s: %w", rec.ID, err)
	}

	query = `UPDATE recordings_by_date SET duration_seconds = ? WHERE recorded_on = ? AND id = ?`

	if err := r.db.Exec(ctx, query, rec.DurationSeconds, rec.RecordedOn, rec.ID); err != nil {
		return fmt.Errorf("failed to update recording %s by date: %w", rec.ID, err)
	}
	return nil
}

// Delete removes a recording from both tables. The row is read first so the
// by-date delete knows its partition.
func (r *RecordingRepository) Delete(ctx context.Context, id string) error {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	query := `DELETE FROM recordings WHERE id = ?`

	if err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete recording %s: %w", id, err)
	}

	query = `DELETE FROM recordings_by_date WHERE recorded_on = ? AND id = ?`

	if err := r.db.Exec(ctx, query, rec.RecordedOn, id); err != nil {
		return fmt.Errorf("failed to delete recording %s by date: %w", id, err)
	}
	return nil
}

// List retrieves all recordings.
func (r *RecordingRepository) List(ctx context.Context) ([]*models.Recording, error) {
	query := `SELECT id, song_id, artist_id, duration_seconds, recorded_on FROM recordings`

	recs, err := store.Rows(ctx, r.db, query, scanRecording)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	return recs, nil
}

// ListByDate retrieves all recordings made on a day, reading a single
// partition of the by-date table.
func (r *RecordingRepository) ListByDate(ctx context.Context, day time.Time) ([]*models.Recording, error) {
	query := `SELECT id, song_id, artist_id, duration_seconds, recorded_on FROM recordings_by_date WHERE recorded_on = ?`

	recs, err := store.Rows(ctx, r.db, query, scanRecording, truncateToDay(day))
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings on %s: %w", shared.FormatDate(day), err)
	}
	return recs, nil
}

// DeleteByDate removes every recording made on a day: each row leaves the
// primary table first, then the whole by-date partition goes at once.
func (r *RecordingRepository) DeleteByDate(ctx context.Context, day time.Time) (int, error) {
	day = truncateToDay(day)

	recs, err := r.ListByDate(ctx, day)
	if err != nil {
		return 0, err
	}
	if len(recs) == 0 {
		return 0, nil
	}

	query := `DELETE FROM recordings WHERE id = ?`

	for _, rec := range recs {
		if err := r.db.Exec(ctx, query, rec.ID); err != nil {
			return 0, fmt.Errorf("failed to delete recording %s: %w", rec.ID, err)
		}
	}

	query = `DELETE FROM recordings_by_date WHERE recorded_on = ?`

	if err := r.db.Exec(ctx, query, day); err != nil {
		return 0, fmt.Errorf("failed to delete recordings on %s: %w", shared.FormatDate(day), err)
	}
	return len(recs), nil
}

func scanRecording(scan store.ScanFunc) (*models.Recording, error) {
	var rec models.Recording
	if err := scan(&rec.ID, &rec.SongID, &rec.ArtistID, &rec.DurationSeconds, &rec.RecordedOn); err != nil {
		return nil, err
	}
	return &rec, nil
}

// truncateToDay drops the time-of-day portion, keeping the civil date in UTC.
func truncateToDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
