package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/avillegas/fonoteca/internal/formatter"
	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/services"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	MenuView ViewState = iota
	FormView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	catalog  *services.Catalog
	menu     list.Model
	op       Op
	opTitle  string
	fields   []field
	focus    int
	fieldErr string
	result   string
	err      error
	help     help.Model
	keys     keyMap
}

// opDoneMsg carries a finished operation's outcome back into Update.
type opDoneMsg struct {
	result string
	err    error
}

// NewModel creates a new TUI model over the provided catalog.
func NewModel(ctx context.Context, catalog *services.Catalog) *Model {
	menu := list.New(menuItems(), list.NewDefaultDelegate(), 0, 0)
	menu.Title = "Fonoteca"
	return &Model{
		ctx:     ctx,
		view:    MenuView,
		catalog: catalog,
		menu:    menu,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.menu.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case MenuView:
			return m.handleMenuKeys(msg)
		case FormView:
			return m.handleFormKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case opDoneMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		return m, nil
	}

	if m.view == MenuView {
		var cmd tea.Cmd
		m.menu, cmd = m.menu.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case MenuView:
		return m.renderMenu()
	case FormView:
		return m.renderForm()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleMenuKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.menu.SelectedItem()
		if selected != nil {
			if item, ok := selected.(menuItem); ok {
				return m, m.startOp(item)
			}
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m *Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.reset()
		return m, nil
	case "enter":
		if m.focus < len(m.fields)-1 {
			if bad := m.fields[m.focus].validate(); bad != "" {
				m.fieldErr = bad
				return m, nil
			}
			return m, m.focusField(m.focus + 1)
		}
		for i, f := range m.fields {
			if bad := f.validate(); bad != "" {
				cmd := m.focusField(i)
				m.fieldErr = bad
				return m, cmd
			}
		}
		return m, m.execute()
	case "tab", "down":
		return m, m.focusField(m.focus + 1)
	case "shift+tab", "up":
		return m, m.focusField(m.focus - 1)
	}

	var cmd tea.Cmd
	m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "m", "esc", "enter":
		m.reset()
		return m, nil
	}
	return m, nil
}

// startOp opens the operation's form, or runs it straight away when it
// takes no input.
func (m *Model) startOp(item menuItem) tea.Cmd {
	m.op = item.op
	m.opTitle = item.title
	m.fields = opFields(item.op)
	m.focus = 0
	m.fieldErr = ""
	if len(m.fields) == 0 {
		return m.execute()
	}
	m.view = FormView
	return m.fields[0].input.Focus()
}

func (m *Model) focusField(i int) tea.Cmd {
	if i < 0 || i >= len(m.fields) {
		return nil
	}
	m.fields[m.focus].input.Blur()
	m.focus = i
	m.fieldErr = ""
	return m.fields[i].input.Focus()
}

// reset returns to the menu and drops any in-flight form state.
func (m *Model) reset() {
	m.view = MenuView
	m.fields = nil
	m.focus = 0
	m.fieldErr = ""
	m.result = ""
	m.err = nil
}

func (m *Model) execute() tea.Cmd {
	vals := make([]string, len(m.fields))
	for i, f := range m.fields {
		vals[i] = strings.TrimSpace(f.input.Value())
	}
	op := m.op
	return func() tea.Msg {
		result, err := m.run(op, vals)
		return opDoneMsg{result: result, err: err}
	}
}

// run executes op against the catalog with the collected field values and
// returns the text shown in the result view. vals follows [opFields] order.
func (m *Model) run(op Op, vals []string) (string, error) {
	switch op {
	case OpAddArtist:
		artist := &models.Artist{
			Name:    vals[0],
			Country: vals[1],
			Awards:  shared.SplitList(vals[2]),
		}
		if err := m.catalog.AddArtist(m.ctx, artist); err != nil {
			return "", err
		}
		return "Added " + formatter.ArtistLine(artist), nil

	case OpAddSong:
		year := 0
		if vals[3] != "" {
			y, err := parseInt(vals[3])
			if err != nil {
				return "", err
			}
			year = y
		}
		duration, err := parseInt(vals[4])
		if err != nil {
			return "", err
		}
		song := &models.Song{
			Title:           vals[0],
			ArtistID:        vals[1],
			Genre:           vals[2],
			Year:            year,
			DurationSeconds: duration,
		}
		if err := m.catalog.AddSong(m.ctx, song); err != nil {
			return "", err
		}
		return "Added " + formatter.SongLine(song), nil

	case OpAddRecording:
		duration, err := parseInt(vals[2])
		if err != nil {
			return "", err
		}
		day, err := shared.ParseDate(vals[3])
		if err != nil {
			return "", err
		}
		rec := &models.Recording{
			SongID:          vals[0],
			ArtistID:        vals[1],
			DurationSeconds: duration,
			RecordedOn:      day,
		}
		if err := m.catalog.RegisterRecording(m.ctx, rec); err != nil {
			return "", err
		}
		return "Registered " + formatter.RecordingLine(rec), nil

	case OpAddAwards:
		added, err := m.catalog.AddAwards(m.ctx, vals[0], shared.SplitList(vals[1]))
		if err != nil {
			return "", err
		}
		if len(added) == 0 {
			return "No new awards, the artist already holds every one given", nil
		}
		return fmt.Sprintf("Added %d award(s): %s", len(added), strings.Join(added, ", ")), nil

	case OpRenameArtist:
		artist, err := m.catalog.RenameArtist(m.ctx, vals[0], vals[1])
		if err != nil {
			return "", err
		}
		return "Renamed " + formatter.ArtistLine(artist), nil

	case OpListArtists:
		artists, err := m.catalog.ListArtists(m.ctx)
		if err != nil {
			return "", err
		}
		if len(artists) == 0 {
			return "No artists in the catalog yet", nil
		}
		lines := make([]string, len(artists))
		for i, a := range artists {
			lines[i] = formatter.ArtistLine(a)
		}
		return strings.Join(lines, "\n"), nil

	case OpSongsByArtist:
		songs, err := m.catalog.SongsByArtist(m.ctx, vals[0])
		if err != nil {
			return "", err
		}
		return songLines(songs, "No songs for artist "+vals[0]), nil

	case OpSongsByGenre:
		songs, err := m.catalog.SongsByGenre(m.ctx, vals[0])
		if err != nil {
			return "", err
		}
		return songLines(songs, "No songs in genre "+vals[0]), nil

	case OpRecordingsOn:
		day, err := shared.ParseDate(vals[0])
		if err != nil {
			return "", err
		}
		recs, err := m.catalog.RecordingsOn(m.ctx, day)
		if err != nil {
			return "", err
		}
		if len(recs) == 0 {
			return "No recordings on " + shared.FormatDate(day), nil
		}
		lines := make([]string, len(recs))
		for i, r := range recs {
			lines[i] = formatter.RecordingLine(r)
		}
		return strings.Join(lines, "\n"), nil

	case OpCountByCountry:
		total, err := m.catalog.ArtistsInCountry(m.ctx, vals[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d artist(s) from %s", total, vals[0]), nil

	case OpDeleteRecording:
		if err := m.catalog.RemoveRecording(m.ctx, vals[0]); err != nil {
			return "", err
		}
		return "Deleted recording " + vals[0], nil

	case OpPurgeRecordings:
		day, err := shared.ParseDate(vals[0])
		if err != nil {
			return "", err
		}
		n, err := m.catalog.PurgeRecordingsOn(m.ctx, day)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Deleted %d recording(s) from %s", n, shared.FormatDate(day)), nil

	default:
		return "", fmt.Errorf("%w: unknown operation", shared.ErrInvalidInput)
	}
}

func songLines(songs []*models.Song, empty string) string {
	if len(songs) == 0 {
		return empty
	}
	lines := make([]string, len(songs))
	for i, s := range songs {
		lines[i] = formatter.SongLine(s)
	}
	return strings.Join(lines, "\n")
}

func parseInt(val string) (int, error) {
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", shared.ErrInvalidInput, val)
	}
	return n, nil
}

func (m *Model) renderMenu() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.menu.View(), helpView)
}

func (m *Model) renderForm() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(m.opTitle))
	b.WriteString("\n")
	for i, f := range m.fields {
		cursor := "  "
		if i == m.focus {
			cursor = "> "
		}
		b.WriteString(fmt.Sprintf("\n%s%s\n  %s\n", cursor, f.label, f.input.View()))
	}
	if m.fieldErr != "" {
		b.WriteString("\n" + styles.warn.Render(m.fieldErr) + "\n")
	}

	submitKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next/submit"))
	quitKey := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))
	helpKeys := []key.Binding{submitKey, m.keys.next, m.keys.back, quitKey}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s", b.String(), helpView)
}

func (m *Model) renderResult() string {
	var body string
	if m.err != nil {
		body = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	} else {
		body = styles.ok.Render("✓ "+m.opTitle) + "\n\n" + m.result
	}

	helpKeys := []key.Binding{m.keys.menu, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", body, helpView)
}
