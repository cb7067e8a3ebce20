package store

import (
	"context"
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/charmbracelet/log"
)

//go:embed cql/schema.cql
var schemaCQL string

// keyspaceRe guards the one identifier that cannot be bound as a parameter.
var keyspaceRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)

// KeyspaceStatement builds the CREATE KEYSPACE statement for name. Keyspace
// identifiers cannot be bound as parameters, so the name is validated before
// interpolation.
func KeyspaceStatement(name string, replicas int) (string, error) {
	if !keyspaceRe.MatchString(name) {
		return "", fmt.Errorf("%w: keyspace name %q", shared.ErrInvalidArgument, name)
	}
	if replicas <= 0 {
		replicas = 1
	}
	stmt := fmt.Sprintf(
		"CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}",
		name, replicas,
	)
	return stmt, nil
}

// SplitStatements splits a CQL script on semicolons, stripping comments and
// blank segments.
func SplitStatements(script string) []string {
	var stmts []string
	for _, raw := range strings.Split(script, ";") {
		stmt := strings.TrimSpace(stripComments(raw))
		if stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

// stripComments removes -- comments from a statement.
func stripComments(cql string) string {
	lines := strings.Split(cql, "\n")
	var result []string
	for _, line := range lines {
		if idx := strings.Index(line, "--"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return strings.Join(result, "\n")
}

// ApplySchema executes the embedded schema statements one at a time. Every
// statement is idempotent, so reruns are safe.
func (s *Session) ApplySchema(ctx context.Context) error {
	stmts := SplitStatements(schemaCQL)
	for _, stmt := range stmts {
		if err := s.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w\nStatement: %s", err, stmt)
		}
	}
	s.logger.Info("schema applied", "keyspace", s.cfg.Keyspace, "statements", len(stmts))
	return nil
}

// InitSchema creates the keyspace if needed and applies the embedded table
// definitions.
//
// The keyspace cannot be created from a session bound to it, so the bootstrap
// runs in two connects: one without a keyspace for CREATE KEYSPACE, then one
// bound to it for the tables.
func InitSchema(ctx context.Context, cfg shared.CassandraConfig, logger *log.Logger) error {
	stmt, err := KeyspaceStatement(cfg.Keyspace, cfg.Replicas)
	if err != nil {
		return err
	}

	boot := cfg
	boot.Keyspace = ""
	s, err := Open(ctx, boot, logger)
	if err != nil {
		return err
	}
	if err := s.Exec(ctx, stmt); err != nil {
		s.Close()
		return fmt.Errorf("failed to create keyspace %s: %w", cfg.Keyspace, err)
	}
	s.Close()

	s, err = Open(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close()
	return s.ApplySchema(ctx)
}
