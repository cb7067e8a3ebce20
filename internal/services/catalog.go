package services

import (
	"context"
	"fmt"
	"time"

	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/charmbracelet/log"
)

// Catalog sequences repository operations into application use cases. It
// owns the reference checks between entities and the award normalization
// rules; statement mapping stays in the repositories.
type Catalog struct {
	artists    models.ArtistRepository
	songs      models.SongRepository
	recordings models.RecordingRepository
	logger     *log.Logger
}

// CatalogOpts contains the dependencies for creating a Catalog.
type CatalogOpts struct {
	Artists    models.ArtistRepository
	Songs      models.SongRepository
	Recordings models.RecordingRepository
	Logger     *log.Logger
}

// NewCatalog creates a new Catalog with the provided repositories
func NewCatalog(opts CatalogOpts) *Catalog {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Catalog{
		artists:    opts.Artists,
		songs:      opts.Songs,
		recordings: opts.Recordings,
		logger:     opts.Logger,
	}
}

// AddArtist registers a new artist, generating an identifier when the caller
// left it blank.
func (c *Catalog) AddArtist(ctx context.Context, artist *models.Artist) error {
	if err := c.artists.Create(ctx, artist); err != nil {
		return err
	}
	c.logger.Info("artist added", "id", artist.ID, "name", artist.Name)
	return nil
}

// GetArtist retrieves an artist by ID.
func (c *Catalog) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	return c.artists.Get(ctx, id)
}

// ListArtists retrieves all artists.
func (c *Catalog) ListArtists(ctx context.Context) ([]*models.Artist, error) {
	return c.artists.List(ctx)
}

// RenameArtist changes an artist's name, keeping everything else.
func (c *Catalog) RenameArtist(ctx context.Context, id, name string) (*models.Artist, error) {
	artist, err := c.artists.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	artist.Name = name
	if err := c.artists.Update(ctx, artist); err != nil {
		return nil, err
	}
	c.logger.Info("artist renamed", "id", id, "name", name)
	return artist, nil
}

// AddAwards grants awards to an artist, returning the names actually added.
// Duplicates of awards the artist already holds are dropped, comparing
// case-insensitively; the spelling already on record wins.
func (c *Catalog) AddAwards(ctx context.Context, id string, awards []string) ([]string, error) {
	artist, err := c.artists.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	missing := models.MissingAwards(artist.Awards, awards)
	if len(missing) == 0 {
		return nil, nil
	}

	if err := c.artists.AddAwards(ctx, id, missing); err != nil {
		return nil, err
	}
	c.logger.Info("awards added", "id", id, "awards", missing)
	return missing, nil
}

// RemoveArtist deletes an artist by ID.
func (c *Catalog) RemoveArtist(ctx context.Context, id string) error {
	if err := c.artists.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("artist removed", "id", id)
	return nil
}

// ArtistsInCountry reports how many artists were registered for a country.
func (c *Catalog) ArtistsInCountry(ctx context.Context, country string) (int64, error) {
	return c.artists.CountByCountry(ctx, country)
}

// AddSong registers a new song after checking that its artist exists.
func (c *Catalog) AddSong(ctx context.Context, song *models.Song) error {
	if song.ArtistID == "" {
		return fmt.Errorf("%w: song artist id is required", shared.ErrInvalidInput)
	}
	if _, err := c.artists.Get(ctx, song.ArtistID); err != nil {
		return err
	}

	if err := c.songs.Create(ctx, song); err != nil {
		return err
	}
	c.logger.Info("song added", "id", song.ID, "title", song.Title, "artist", song.ArtistID)
	return nil
}

// GetSong retrieves a song by ID.
func (c *Catalog) GetSong(ctx context.Context, id string) (*models.Song, error) {
	return c.songs.Get(ctx, id)
}

// ListSongs retrieves all songs.
func (c *Catalog) ListSongs(ctx context.Context) ([]*models.Song, error) {
	return c.songs.List(ctx)
}

// SongsByArtist retrieves all songs referencing an artist. An unknown artist
// yields an empty list, not an error.
func (c *Catalog) SongsByArtist(ctx context.Context, artistID string) ([]*models.Song, error) {
	return c.songs.ListByArtist(ctx, artistID)
}

// SongsByGenre retrieves all songs in a genre.
func (c *Catalog) SongsByGenre(ctx context.Context, genre string) ([]*models.Song, error) {
	return c.songs.ListByGenre(ctx, genre)
}

// RemoveSong deletes a song by ID.
func (c *Catalog) RemoveSong(ctx context.Context, id string) error {
	if err := c.songs.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("song removed", "id", id)
	return nil
}

// RegisterRecording stores a recording after checking that the referenced
// song and artist both exist. A blank artist reference is filled from the
// song. Nothing is written when a check fails.
func (c *Catalog) RegisterRecording(ctx context.Context, rec *models.Recording) error {
	if rec.SongID == "" {
		return fmt.Errorf("%w: recording song id is required", shared.ErrInvalidInput)
	}

	song, err := c.songs.Get(ctx, rec.SongID)
	if err != nil {
		return err
	}
	if rec.ArtistID == "" {
		rec.ArtistID = song.ArtistID
	}
	if _, err := c.artists.Get(ctx, rec.ArtistID); err != nil {
		return err
	}

	if err := c.recordings.Create(ctx, rec); err != nil {
		return err
	}
	c.logger.Info("recording registered",
		"id", rec.ID, "song", rec.SongID, "on", shared.FormatDate(rec.RecordedOn))
	return nil
}

// GetRecording retrieves a recording by ID.
func (c *Catalog) GetRecording(ctx context.Context, id string) (*models.Recording, error) {
	return c.recordings.Get(ctx, id)
}

// ListRecordings retrieves all recordings.
func (c *Catalog) ListRecordings(ctx context.Context) ([]*models.Recording, error) {
	return c.recordings.List(ctx)
}

// RecordingsOn retrieves all recordings made on a day.
func (c *Catalog) RecordingsOn(ctx context.Context, day time.Time) ([]*models.Recording, error) {
	return c.recordings.ListByDate(ctx, day)
}

// RemoveRecording deletes a recording by ID.
func (c *Catalog) RemoveRecording(ctx context.Context, id string) error {
	if err := c.recordings.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("recording removed", "id", id)
	return nil
}

// PurgeRecordingsOn deletes every recording made on a day, returning how
// many were removed.
func (c *Catalog) PurgeRecordingsOn(ctx context.Context, day time.Time) (int, error) {
	n, err := c.recordings.DeleteByDate(ctx, day)
	if err != nil {
		return 0, err
	}
	c.logger.Info("recordings purged", "on", shared.FormatDate(day), "count", n)
	return n, nil
}
