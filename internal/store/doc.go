// Package store manages the lifecycle of the Cassandra session behind the
// catalog.
//
// [Session] wraps a gocql session with the application's retry boundary:
//   - [Open] dials the cluster with a bounded number of attempts and a
//     doubling delay between them.
//   - Statements that fail in transit get one reconnect cycle and one retry;
//     statements the server rejects fail immediately as [shared.ErrQuery]
//     and are never retried.
//   - [Session.Close] is idempotent, and a closed session stays closed.
//
// [Querier] is the slice of the session the repositories depend on, keeping
// them portable across the real session and test doubles. Schema management
// (keyspace bootstrap plus the embedded table definitions) lives in
// [InitSchema].
//
// The application is single threaded, so Session performs no locking and is
// not safe for concurrent use.
package store
