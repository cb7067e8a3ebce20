package ui

import "github.com/charmbracelet/bubbles/list"

// Op enumerates the catalog operations the menu offers.
type Op int

const (
	OpAddArtist Op = iota
	OpAddSong
	OpAddRecording
	OpAddAwards
	OpRenameArtist
	OpListArtists
	OpSongsByArtist
	OpSongsByGenre
	OpRecordingsOn
	OpCountByCountry
	OpDeleteRecording
	OpPurgeRecordings
)

var _ list.Item = menuItem{}

// menuItem wraps an [Op] to implement [list.Item].
type menuItem struct {
	op    Op
	title string
	desc  string
}

func (i menuItem) FilterValue() string { return i.title }
func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }

func menuItems() []list.Item {
	return []list.Item{
		menuItem{OpAddArtist, "Add artist", "Create an artist with optional country and awards"},
		menuItem{OpAddSong, "Add song", "Create a song for an existing artist"},
		menuItem{OpAddRecording, "Add recording", "Register a recording of an existing song"},
		menuItem{OpAddAwards, "Add awards", "Grant awards to an artist, skipping ones already held"},
		menuItem{OpRenameArtist, "Rename artist", "Change an artist's name"},
		menuItem{OpListArtists, "List artists", "Show every artist in the catalog"},
		menuItem{OpSongsByArtist, "Songs by artist", "List the songs credited to an artist"},
		menuItem{OpSongsByGenre, "Songs by genre", "List the songs in a genre"},
		menuItem{OpRecordingsOn, "Recordings on date", "List the recordings made on a day"},
		menuItem{OpCountByCountry, "Count by country", "Count the artists from a country"},
		menuItem{OpDeleteRecording, "Delete recording", "Remove a single recording"},
		menuItem{OpPurgeRecordings, "Purge recordings", "Remove every recording made on a day"},
	}
}
