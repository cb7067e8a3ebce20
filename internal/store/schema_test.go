package store

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avillegas/fonoteca/internal/shared"
)

func TestKeyspaceStatement(t *testing.T) {
	t.Run("builds a guarded create", func(t *testing.T) {
		got, err := KeyspaceStatement("fonoteca", 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		want := "CREATE KEYSPACE IF NOT EXISTS fonoteca WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 3}"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("defaults the replication factor", func(t *testing.T) {
		got, err := KeyspaceStatement("fonoteca", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(got, "'replication_factor': 1") {
			t.Errorf("expected a factor of 1, got %q", got)
		}
	})

	t.Run("rejects names that cannot be interpolated", func(t *testing.T) {
		tc := []struct {
			name     string
			keyspace string
		}{
			{"empty", ""},
			{"leading digit", "1keyspace"},
			{"hyphen", "bad-name"},
			{"whitespace", "drop keyspace"},
			{"semicolon", "x;y"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				_, err := KeyspaceStatement(tt.keyspace, 1)
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument for %q, got %v", tt.keyspace, err)
				}
			})
		}
	})
}

func TestSplitStatements(t *testing.T) {
	script := `-- catalog tables
CREATE TABLE IF NOT EXISTS artists (
    id text PRIMARY KEY -- row key
);

CREATE INDEX IF NOT EXISTS ON artists (name);
`

	stmts := SplitStatements(script)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %v", len(stmts), stmts)
	}
	if strings.Contains(stmts[0], "--") {
		t.Errorf("expected comments stripped, got %q", stmts[0])
	}
	if !strings.HasPrefix(stmts[0], "CREATE TABLE") {
		t.Errorf("expected the table statement first, got %q", stmts[0])
	}
	if !strings.HasPrefix(stmts[1], "CREATE INDEX") {
		t.Errorf("expected the index statement second, got %q", stmts[1])
	}
}

func TestEmbeddedSchema(t *testing.T) {
	stmts := SplitStatements(schemaCQL)
	if len(stmts) == 0 {
		t.Fatal("expected the embedded schema to contain statements")
	}

	joined := strings.Join(stmts, "\n")
	for _, table := range []string{
		"artists",
		"songs",
		"recordings",
		"recordings_by_date",
		"artist_count_by_country",
	} {
		if !strings.Contains(joined, table) {
			t.Errorf("expected the schema to define %s", table)
		}
	}

	for _, stmt := range stmts {
		if !strings.Contains(stmt, "IF NOT EXISTS") {
			t.Errorf("expected an idempotent statement, got %q", stmt)
		}
	}
}

func TestApplySchema(t *testing.T) {
	t.Run("executes every statement", func(t *testing.T) {
		c := &fakeConn{}
		s := newTestSession(&fakeDialer{})
		s.conn = c

		if err := s.ApplySchema(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if want := len(SplitStatements(schemaCQL)); c.execs != want {
			t.Errorf("expected %d statements executed, got %d", want, c.execs)
		}
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		c := &fakeConn{execFn: func(string, []any) error {
			return fakeReqErr{msg: "unconfigured keyspace"}
		}}
		s := newTestSession(&fakeDialer{})
		s.conn = c

		err := s.ApplySchema(context.Background())
		if !errors.Is(err, shared.ErrQuery) {
			t.Fatalf("expected ErrQuery, got %v", err)
		}
		if c.execs != 1 {
			t.Errorf("expected a stop after the first statement, got %d", c.execs)
		}
	})
}
