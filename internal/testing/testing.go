// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/avillegas/fonoteca/internal/models"
	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/avillegas/fonoteca/internal/store"
)

// Call records one statement executed against a fake.
type Call struct {
	Stmt string
	Args []any
}

// FakeQuerier is a scripted, in-memory stand-in for [store.Querier].
//
// Result rows and forced errors are keyed by statement fragment and matched
// by substring, so tests pin behavior per table without repeating full CQL.
type FakeQuerier struct {
	Calls []Call
	Rows  map[string][][]any
	Errs  map[string]error
}

var _ store.Querier = (*FakeQuerier)(nil)

func NewFakeQuerier() *FakeQuerier {
	return &FakeQuerier{Rows: map[string][][]any{}, Errs: map[string]error{}}
}

// CallsMatching returns the recorded statements containing frag.
func (f *FakeQuerier) CallsMatching(frag string) []Call {
	var out []Call
	for _, c := range f.Calls {
		if strings.Contains(c.Stmt, frag) {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeQuerier) record(stmt string, args []any) {
	f.Calls = append(f.Calls, Call{Stmt: stmt, Args: args})
}

func (f *FakeQuerier) forcedErr(stmt string) error {
	for frag, err := range f.Errs {
		if strings.Contains(stmt, frag) {
			return err
		}
	}
	return nil
}

func (f *FakeQuerier) rows(stmt string) ([][]any, bool) {
	for frag, rows := range f.Rows {
		if strings.Contains(stmt, frag) {
			return rows, true
		}
	}
	return nil, false
}

func (f *FakeQuerier) Exec(ctx context.Context, stmt string, args ...any) error {
	f.record(stmt, args)
	return f.forcedErr(stmt)
}

func (f *FakeQuerier) Scan(ctx context.Context, stmt string, dest []any, args ...any) error {
	f.record(stmt, args)
	if err := f.forcedErr(stmt); err != nil {
		return err
	}
	rows, ok := f.rows(stmt)
	if !ok || len(rows) == 0 {
		return fmt.Errorf("%w: no rows", shared.ErrNotFound)
	}
	return CopyInto(dest, rows[0])
}

func (f *FakeQuerier) Each(ctx context.Context, stmt string, row store.RowFunc, args ...any) error {
	f.record(stmt, args)
	if err := f.forcedErr(stmt); err != nil {
		return err
	}
	rows, _ := f.rows(stmt)
	for _, r := range rows {
		vals := r
		if err := row(func(dest ...any) error { return CopyInto(dest, vals) }); err != nil {
			return err
		}
	}
	return nil
}

// CopyInto copies scripted column values into scan destinations.
func CopyInto(dest []any, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("fake row has %d columns, scan wants %d", len(vals), len(dest))
	}
	for i, v := range vals {
		switch d := dest[i].(type) {
		case *string:
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("column %d: want string, fake has %T", i, v)
			}
			*d = s
		case *int:
			n, ok := v.(int)
			if !ok {
				return fmt.Errorf("column %d: want int, fake has %T", i, v)
			}
			*d = n
		case *int64:
			switch n := v.(type) {
			case int64:
				*d = n
			case int:
				*d = int64(n)
			default:
				return fmt.Errorf("column %d: want int64, fake has %T", i, v)
			}
		case *[]string:
			s, ok := v.([]string)
			if !ok {
				return fmt.Errorf("column %d: want []string, fake has %T", i, v)
			}
			*d = append([]string(nil), s...)
		case *time.Time:
			t, ok := v.(time.Time)
			if !ok {
				return fmt.Errorf("column %d: want time.Time, fake has %T", i, v)
			}
			*d = t
		default:
			return fmt.Errorf("unsupported scan destination %T", dest[i])
		}
	}
	return nil
}

// FakeConn extends [FakeQuerier] with no-op lifecycle methods so CLI tests
// can stand in for a live session.
type FakeConn struct {
	*FakeQuerier
	Now        time.Time
	PingErr    error
	SchemaErr  error
	CloseCount int
}

var _ store.Conn = (*FakeConn)(nil)

func NewFakeConn() *FakeConn {
	return &FakeConn{FakeQuerier: NewFakeQuerier()}
}

func (f *FakeConn) Ping(ctx context.Context) (time.Time, error) { return f.Now, f.PingErr }
func (f *FakeConn) ApplySchema(ctx context.Context) error       { return f.SchemaErr }
func (f *FakeConn) Close()                                      { f.CloseCount++ }

// MemArtists is an in-memory [models.ArtistRepository].
type MemArtists struct {
	Items      map[string]*models.Artist
	Counts     map[string]int64
	AwardCalls [][]string
	Err        error // forced failure for every operation when set
}

var _ models.ArtistRepository = (*MemArtists)(nil)

func NewMemArtists() *MemArtists {
	return &MemArtists{Items: map[string]*models.Artist{}, Counts: map[string]int64{}}
}

// Seed stores artists directly, bypassing validation.
func (m *MemArtists) Seed(artists ...*models.Artist) *MemArtists {
	for _, a := range artists {
		m.Items[a.ID] = a
		if a.Country != "" {
			m.Counts[a.Country]++
		}
	}
	return m
}

func (m *MemArtists) Create(ctx context.Context, artist *models.Artist) error {
	if m.Err != nil {
		return m.Err
	}
	if artist.ID == "" {
		artist.ID = shared.GenerateID()
	}
	artist.Awards = models.NormalizeAwards(artist.Awards)
	if err := artist.Validate(); err != nil {
		return err
	}
	m.Items[artist.ID] = artist
	if artist.Country != "" {
		m.Counts[artist.Country]++
	}
	return nil
}

func (m *MemArtists) Get(ctx context.Context, id string) (*models.Artist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	artist, ok := m.Items[id]
	if !ok {
		return nil, fmt.Errorf("artist %s: %w", id, shared.ErrNotFound)
	}
	return artist, nil
}

func (m *MemArtists) Update(ctx context.Context, artist *models.Artist) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Items[artist.ID]; !ok {
		return fmt.Errorf("artist %s: %w", artist.ID, shared.ErrNotFound)
	}
	m.Items[artist.ID] = artist
	return nil
}

func (m *MemArtists) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	artist, ok := m.Items[id]
	if !ok {
		return fmt.Errorf("artist %s: %w", id, shared.ErrNotFound)
	}
	delete(m.Items, id)
	if artist.Country != "" {
		m.Counts[artist.Country]--
	}
	return nil
}

func (m *MemArtists) List(ctx context.Context) ([]*models.Artist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Artist
	for _, a := range m.Items {
		out = append(out, a)
	}
	return out, nil
}

func (m *MemArtists) AddAwards(ctx context.Context, id string, awards []string) error {
	if m.Err != nil {
		return m.Err
	}
	artist, ok := m.Items[id]
	if !ok {
		return fmt.Errorf("artist %s: %w", id, shared.ErrNotFound)
	}
	m.AwardCalls = append(m.AwardCalls, awards)
	artist.Awards = models.NormalizeAwards(append(artist.Awards, awards...))
	return nil
}

func (m *MemArtists) CountByCountry(ctx context.Context, country string) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return m.Counts[country], nil
}

// MemSongs is an in-memory [models.SongRepository].
type MemSongs struct {
	Items map[string]*models.Song
	Err   error
}

var _ models.SongRepository = (*MemSongs)(nil)

func NewMemSongs() *MemSongs {
	return &MemSongs{Items: map[string]*models.Song{}}
}

// Seed stores songs directly, bypassing validation.
func (m *MemSongs) Seed(songs ...*models.Song) *MemSongs {
	for _, s := range songs {
		m.Items[s.ID] = s
	}
	return m
}

func (m *MemSongs) Create(ctx context.Context, song *models.Song) error {
	if m.Err != nil {
		return m.Err
	}
	if song.ID == "" {
		song.ID = shared.GenerateID()
	}
	if err := song.Validate(); err != nil {
		return err
	}
	m.Items[song.ID] = song
	return nil
}

func (m *MemSongs) Get(ctx context.Context, id string) (*models.Song, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	song, ok := m.Items[id]
	if !ok {
		return nil, fmt.Errorf("song %s: %w", id, shared.ErrNotFound)
	}
	return song, nil
}

func (m *MemSongs) Update(ctx context.Context, song *models.Song) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Items[song.ID]; !ok {
		return fmt.Errorf("song %s: %w", song.ID, shared.ErrNotFound)
	}
	m.Items[song.ID] = song
	return nil
}

func (m *MemSongs) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Items[id]; !ok {
		return fmt.Errorf("song %s: %w", id, shared.ErrNotFound)
	}
	delete(m.Items, id)
	return nil
}

func (m *MemSongs) List(ctx context.Context) ([]*models.Song, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Song
	for _, s := range m.Items {
		out = append(out, s)
	}
	return out, nil
}

func (m *MemSongs) ListByArtist(ctx context.Context, artistID string) ([]*models.Song, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Song
	for _, s := range m.Items {
		if s.ArtistID == artistID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MemSongs) ListByGenre(ctx context.Context, genre string) ([]*models.Song, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Song
	for _, s := range m.Items {
		if s.Genre == genre {
			out = append(out, s)
		}
	}
	return out, nil
}

// MemRecordings is an in-memory [models.RecordingRepository].
type MemRecordings struct {
	Items map[string]*models.Recording
	Err   error
}

var _ models.RecordingRepository = (*MemRecordings)(nil)

func NewMemRecordings() *MemRecordings {
	return &MemRecordings{Items: map[string]*models.Recording{}}
}

// Seed stores recordings directly, bypassing validation.
func (m *MemRecordings) Seed(recs ...*models.Recording) *MemRecordings {
	for _, r := range recs {
		m.Items[r.ID] = r
	}
	return m
}

func (m *MemRecordings) Create(ctx context.Context, rec *models.Recording) error {
	if m.Err != nil {
		return m.Err
	}
	if rec.ID == "" {
		rec.ID = shared.GenerateID()
	}
	if err := rec.Validate(); err != nil {
		return err
	}
	m.Items[rec.ID] = rec
	return nil
}

func (m *MemRecordings) Get(ctx context.Context, id string) (*models.Recording, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	rec, ok := m.Items[id]
	if !ok {
		return nil, fmt.Errorf("recording %s: %w", id, shared.ErrNotFound)
	}
	return rec, nil
}

func (m *MemRecordings) Update(ctx context.Context, rec *models.Recording) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Items[rec.ID]; !ok {
		return fmt.Errorf("recording %s: %w", rec.ID, shared.ErrNotFound)
	}
	m.Items[rec.ID] = rec
	return nil
}

func (m *MemRecordings) Delete(ctx context.Context, id string) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Items[id]; !ok {
		return fmt.Errorf("recording %s: %w", id, shared.ErrNotFound)
	}
	delete(m.Items, id)
	return nil
}

func (m *MemRecordings) List(ctx context.Context) ([]*models.Recording, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Recording
	for _, r := range m.Items {
		out = append(out, r)
	}
	return out, nil
}

func (m *MemRecordings) ListByDate(ctx context.Context, day time.Time) ([]*models.Recording, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*models.Recording
	for _, r := range m.Items {
		if sameDay(r.RecordedOn, day) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemRecordings) DeleteByDate(ctx context.Context, day time.Time) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	n := 0
	for id, r := range m.Items {
		if sameDay(r.RecordedOn, day) {
			delete(m.Items, id)
			n++
		}
	}
	return n, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

// Day builds a UTC date for test fixtures.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
