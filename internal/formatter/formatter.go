// package formatter renders catalog entities for files and terminals (CSV, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/shared"
)

// ArtistsToCSV converts artists to CSV with columns: ID, Name, Country, Awards.
// Awards are joined with "; " inside their column.
func ArtistsToCSV(artists []*models.Artist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Name", "Country", "Awards"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, artist := range artists {
		record := []string{
			artist.ID,
			artist.Name,
			artist.Country,
			strings.Join(artist.Awards, "; "),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SongsToCSV converts songs to CSV with columns: ID, Title, ArtistID, Genre, Year, Duration.
func SongsToCSV(songs []*models.Song) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "ArtistID", "Genre", "Year", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range songs {
		record := []string{
			song.ID,
			song.Title,
			song.ArtistID,
			song.Genre,
			strconv.Itoa(song.Year),
			strconv.Itoa(song.DurationSeconds),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// RecordingsToCSV converts recordings to CSV with columns: ID, SongID, ArtistID, Duration, RecordedOn.
func RecordingsToCSV(recordings []*models.Recording) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "SongID", "ArtistID", "Duration", "RecordedOn"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, rec := range recordings {
		record := []string{
			rec.ID,
			rec.SongID,
			rec.ArtistID,
			strconv.Itoa(rec.DurationSeconds),
			shared.FormatDate(rec.RecordedOn),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ArtistLine renders one artist for terminal listings.
func ArtistLine(artist *models.Artist) string {
	line := artist.Name
	if artist.Country != "" {
		line = fmt.Sprintf("%s (%s)", line, artist.Country)
	}
	if len(artist.Awards) > 0 {
		line = fmt.Sprintf("%s • awards: %s", line, strings.Join(artist.Awards, ", "))
	}
	return fmt.Sprintf("%s [%s]", line, artist.ID)
}

// SongLine renders one song for terminal listings.
func SongLine(song *models.Song) string {
	line := song.Title
	if song.Genre != "" {
		line = fmt.Sprintf("%s (%s)", line, song.Genre)
	}
	if song.Year > 0 {
		line = fmt.Sprintf("%s, %d", line, song.Year)
	}
	return fmt.Sprintf("%s [%s] %s", line, shared.FormatDuration(song.DurationSeconds), song.ID)
}

// RecordingLine renders one recording for terminal listings.
func RecordingLine(rec *models.Recording) string {
	return fmt.Sprintf("%s song=%s artist=%s [%s] %s",
		shared.FormatDate(rec.RecordedOn), rec.SongID, rec.ArtistID,
		shared.FormatDuration(rec.DurationSeconds), rec.ID)
}
