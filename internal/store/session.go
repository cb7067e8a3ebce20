package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/avillegas/fonoteca/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/gocql/gocql"
)

// ScanFunc copies the current row into dest, one pointer per column.
type ScanFunc func(dest ...any) error

// RowFunc consumes one row of a result set.
type RowFunc func(scan ScanFunc) error

// Querier executes parameterized CQL statements. Repositories depend on this
// interface rather than on [Session] directly.
type Querier interface {
	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, stmt string, args ...any) error

	// Scan runs a statement expected to return exactly one row and copies
	// it into dest. A statement matching no rows fails with
	// [shared.ErrNotFound].
	Scan(ctx context.Context, stmt string, dest []any, args ...any) error

	// Each runs a statement and streams every result row through row.
	Each(ctx context.Context, stmt string, row RowFunc, args ...any) error
}

// Conn is the full session surface the CLI layer needs: statement execution
// plus connectivity checks, schema application and shutdown.
type Conn interface {
	Querier
	Ping(ctx context.Context) (time.Time, error)
	ApplySchema(ctx context.Context) error
	Close()
}

// conn is the slice of the driver session the wrapper drives directly.
// Tests substitute a scripted implementation.
type conn interface {
	exec(ctx context.Context, stmt string, args []any) error
	scan(ctx context.Context, stmt string, dest []any, args []any) error
	iter(ctx context.Context, stmt string, args []any) rowScanner
	close()
}

// rowScanner matches [gocql.Scanner]: Err releases the underlying iterator
// and reports any failure seen while scanning.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// Session owns one long-lived connection to the cluster.
//
// Sessions move between three states: connected after [Open], reconnecting
// while an operation recovers from a transport failure, and closed after
// [Session.Close]. A broken but unclosed session re-enters the connect loop
// on its next operation; a closed one only ever fails.
type Session struct {
	cfg    shared.CassandraConfig
	logger *log.Logger
	conn   conn
	dial   func(cluster *gocql.ClusterConfig) (conn, error)
	closed bool
}

var (
	_ Querier = (*Session)(nil)
	_ Conn    = (*Session)(nil)
)

// Open connects to the cluster described by cfg, retrying up to
// cfg.MaxRetries times with a doubling delay between attempts.
func Open(ctx context.Context, cfg shared.CassandraConfig, logger *log.Logger) (*Session, error) {
	if len(cfg.Hosts) == 0 {
		return nil, fmt.Errorf("%w: no contact points configured", shared.ErrInvalidConfig)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Session{cfg: cfg, logger: logger, dial: dialCluster}
	if err := s.connect(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// connect runs the bounded retry loop against the cluster.
func (s *Session) connect(ctx context.Context) error {
	retries := s.cfg.MaxRetries
	if retries <= 0 {
		retries = 5
	}
	delay := s.cfg.RetryDelay.Std()
	if delay <= 0 {
		delay = 2 * time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		c, err := s.dial(s.cluster())
		if err == nil {
			s.conn = c
			s.logger.Info("connected to cluster",
				"hosts", s.cfg.Hosts, "keyspace", s.cfg.Keyspace, "attempt", attempt)
			return nil
		}

		lastErr = err
		s.logger.Warn("connection attempt failed",
			"attempt", attempt, "retries", retries, "error", err)
		if attempt == retries {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", shared.ErrConnection, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return fmt.Errorf("%w: no host reachable after %d attempts: %v", shared.ErrConnection, retries, lastErr)
}

// cluster builds the driver configuration. The driver's own retry policy is
// disabled so this wrapper stays the single retry boundary.
func (s *Session) cluster() *gocql.ClusterConfig {
	cluster := gocql.NewCluster(s.cfg.Hosts...)
	if s.cfg.Port > 0 {
		cluster.Port = s.cfg.Port
	}
	cluster.Keyspace = s.cfg.Keyspace
	cluster.ProtoVersion = 4
	cluster.RetryPolicy = &gocql.SimpleRetryPolicy{NumRetries: 0}
	if s.cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: s.cfg.Username,
			Password: s.cfg.Password,
		}
	}
	return cluster
}

// ready fails closed sessions and redials broken ones before an operation.
func (s *Session) ready(ctx context.Context) error {
	if s.closed {
		return fmt.Errorf("%w: session is closed", shared.ErrConnection)
	}
	if s.conn == nil {
		return s.reconnect(ctx)
	}
	return nil
}

// reconnect drops the current connection and runs one full connect cycle.
func (s *Session) reconnect(ctx context.Context) error {
	if s.conn != nil {
		s.conn.close()
		s.conn = nil
	}
	return s.connect(ctx)
}

// Exec runs a statement that returns no rows. A transport failure gets one
// reconnect cycle and one retry; anything the server rejected surfaces as
// [shared.ErrQuery] without a retry.
func (s *Session) Exec(ctx context.Context, stmt string, args ...any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	err := s.conn.exec(ctx, stmt, args)
	if err == nil {
		return nil
	}
	if !transient(err) {
		return classify(err)
	}

	s.logger.Warn("statement failed in transit, reconnecting", "error", err)
	if err := s.reconnect(ctx); err != nil {
		return err
	}
	if err := s.conn.exec(ctx, stmt, args); err != nil {
		return classify(err)
	}
	return nil
}

// Scan runs a statement expected to return a single row. Zero matching rows
// fail with [shared.ErrNotFound].
func (s *Session) Scan(ctx context.Context, stmt string, dest []any, args ...any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	err := s.conn.scan(ctx, stmt, dest, args)
	if err == nil {
		return nil
	}
	if !transient(err) {
		return classify(err)
	}

	s.logger.Warn("statement failed in transit, reconnecting", "error", err)
	if err := s.reconnect(ctx); err != nil {
		return err
	}
	if err := s.conn.scan(ctx, stmt, dest, args); err != nil {
		return classify(err)
	}
	return nil
}

// Each runs a statement and streams every result row through row. Errors
// returned by row itself pass through unclassified, so callers keep their
// own error chains.
//
// The statement is re-run on a fresh connection only when the transport
// failed before the first row arrived; a result set interrupted midway
// surfaces as [shared.ErrConnection] so callers never see duplicate rows.
func (s *Session) Each(ctx context.Context, stmt string, row RowFunc, args ...any) error {
	if err := s.ready(ctx); err != nil {
		return err
	}

	delivered, err := s.stream(ctx, stmt, row, args)
	if err == nil {
		return nil
	}
	var cbErr *callbackError
	if errors.As(err, &cbErr) {
		return cbErr.err
	}
	if delivered || !transient(err) {
		return classify(err)
	}

	s.logger.Warn("statement failed in transit, reconnecting", "error", err)
	if err := s.reconnect(ctx); err != nil {
		return err
	}
	if _, err := s.stream(ctx, stmt, row, args); err != nil {
		if errors.As(err, &cbErr) {
			return cbErr.err
		}
		return classify(err)
	}
	return nil
}

// callbackError marks a failure raised by the caller's RowFunc rather than
// by the driver.
type callbackError struct {
	err error
}

func (e *callbackError) Error() string { return e.err.Error() }
func (e *callbackError) Unwrap() error { return e.err }

// stream walks one result set, reporting whether any row reached the caller.
func (s *Session) stream(ctx context.Context, stmt string, row RowFunc, args []any) (bool, error) {
	scanner := s.conn.iter(ctx, stmt, args)
	delivered := false
	for scanner.Next() {
		delivered = true
		if err := row(scanner.Scan); err != nil {
			scanner.Err()
			return delivered, &callbackError{err: err}
		}
	}
	return delivered, scanner.Err()
}

// Ping round-trips a lightweight statement to verify the session is live,
// returning the coordinator's current time.
func (s *Session) Ping(ctx context.Context) (time.Time, error) {
	var now gocql.UUID
	if err := s.Scan(ctx, "SELECT now() FROM system.local", []any{&now}); err != nil {
		return time.Time{}, err
	}
	return now.Time(), nil
}

// Close releases the session. It is safe to call more than once; operations
// on a closed session fail with [shared.ErrConnection] and never reconnect.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.conn != nil {
		s.conn.close()
		s.conn = nil
	}
	s.logger.Debug("session closed")
}

// Rows collects every row of stmt into a slice, decoding each with dec.
func Rows[T any](ctx context.Context, q Querier, stmt string, dec func(scan ScanFunc) (T, error), args ...any) ([]T, error) {
	var out []T
	err := q.Each(ctx, stmt, func(scan ScanFunc) error {
		v, err := dec(scan)
		if err != nil {
			return err
		}
		out = append(out, v)
		return nil
	}, args...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// transient reports whether err is a transport-class failure worth one
// reconnect, as opposed to a server-side rejection of the statement.
func transient(err error) bool {
	if err == nil {
		return false
	}

	// The server answered: the statement itself is the problem.
	var reqErr gocql.RequestError
	if errors.As(err, &reqErr) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	switch {
	case errors.Is(err, gocql.ErrNoConnections),
		errors.Is(err, gocql.ErrSessionClosed),
		errors.Is(err, gocql.ErrConnectionClosed),
		errors.Is(err, gocql.ErrTimeoutNoResponse),
		errors.Is(err, gocql.ErrTooManyTimeouts),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}

	return false
}

// classify maps driver errors onto the shared error taxonomy.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gocql.ErrNotFound):
		return fmt.Errorf("%w: no rows", shared.ErrNotFound)
	case transient(err):
		return fmt.Errorf("%w: %v", shared.ErrConnection, err)
	default:
		return fmt.Errorf("%w: %v", shared.ErrQuery, err)
	}
}

// gocqlConn adapts *gocql.Session to the conn interface.
type gocqlConn struct {
	sess *gocql.Session
}

func dialCluster(cluster *gocql.ClusterConfig) (conn, error) {
	sess, err := cluster.CreateSession()
	if err != nil {
		return nil, err
	}
	return &gocqlConn{sess: sess}, nil
}

func (c *gocqlConn) exec(ctx context.Context, stmt string, args []any) error {
	return c.sess.Query(stmt, args...).WithContext(ctx).Exec()
}

func (c *gocqlConn) scan(ctx context.Context, stmt string, dest []any, args []any) error {
	return c.sess.Query(stmt, args...).WithContext(ctx).Scan(dest...)
}

func (c *gocqlConn) iter(ctx context.Context, stmt string, args []any) rowScanner {
	return c.sess.Query(stmt, args...).WithContext(ctx).Iter().Scanner()
}

func (c *gocqlConn) close() {
	c.sess.Close()
}
