// Package repositories implements Cassandra persistence for all domain
// entities.
//
// Each repository implements its interface from [models] over a
// [store.Querier], mapping statements to structs and nothing else: reference
// checks live in the service layer, retry and reconnection live in the
// session. Errors are annotated with the entity and operation and passed
// through so callers can match them with errors.Is.
//
// Key Implementations:
//   - [ArtistRepository] : artist rows plus the per-country counter table
//   - [SongRepository] : song rows with artist and genre secondary indexes
//   - [RecordingRepository] : recording rows dual-written to a by-date table
//
// The denormalized tables are settled synchronously with their primary
// writes, in the order primary first, so a failed secondary write leaves a
// readable primary row.
package repositories
