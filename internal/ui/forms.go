package ui

import (
	"strconv"
	"strings"

	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/charmbracelet/bubbles/textinput"
)

// fieldKind selects the validation applied to a form field.
type fieldKind int

const (
	textField fieldKind = iota
	intField
	dateField
	listField
)

// field pairs a labelled [textinput.Model] with its validation rule.
type field struct {
	label    string
	kind     fieldKind
	optional bool
	input    textinput.Model
}

func newField(label, placeholder string, kind fieldKind, optional bool) field {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 40
	return field{label: label, kind: kind, optional: optional, input: in}
}

// validate reports why the field's current value is unacceptable, or "".
func (f field) validate() string {
	val := strings.TrimSpace(f.input.Value())
	if val == "" {
		if f.optional {
			return ""
		}
		return f.label + " is required"
	}
	switch f.kind {
	case intField:
		if _, err := strconv.Atoi(val); err != nil {
			return f.label + " must be a whole number"
		}
	case dateField:
		if _, err := shared.ParseDate(val); err != nil {
			return f.label + " must be a date like 2024-06-01"
		}
	}
	return ""
}

// opFields builds the input fields the operation needs, in prompt order.
// Operations that take no input return nil and run as soon as they are chosen.
func opFields(op Op) []field {
	switch op {
	case OpAddArtist:
		return []field{
			newField("Name", "Nina Simone", textField, false),
			newField("Country", "United States", textField, true),
			newField("Awards", "Grammy, Hall of Fame", listField, true),
		}
	case OpAddSong:
		return []field{
			newField("Title", "Feeling Good", textField, false),
			newField("Artist ID", "artist uuid", textField, false),
			newField("Genre", "jazz", textField, true),
			newField("Year", "1965", intField, true),
			newField("Duration (seconds)", "177", intField, false),
		}
	case OpAddRecording:
		return []field{
			newField("Song ID", "song uuid", textField, false),
			newField("Artist ID", "blank to use the song's artist", textField, true),
			newField("Duration (seconds)", "181", intField, false),
			newField("Recorded on", "1965-05-22", dateField, false),
		}
	case OpAddAwards:
		return []field{
			newField("Artist ID", "artist uuid", textField, false),
			newField("Awards", "Grammy, Polar Music Prize", listField, false),
		}
	case OpRenameArtist:
		return []field{
			newField("Artist ID", "artist uuid", textField, false),
			newField("New name", "Dr. Nina Simone", textField, false),
		}
	case OpSongsByArtist:
		return []field{newField("Artist ID", "artist uuid", textField, false)}
	case OpSongsByGenre:
		return []field{newField("Genre", "jazz", textField, false)}
	case OpRecordingsOn:
		return []field{newField("Date", "1965-05-22", dateField, false)}
	case OpCountByCountry:
		return []field{newField("Country", "United States", textField, false)}
	case OpDeleteRecording:
		return []field{newField("Recording ID", "recording uuid", textField, false)}
	case OpPurgeRecordings:
		return []field{newField("Date", "1965-05-22", dateField, false)}
	default:
		return nil
	}
}
