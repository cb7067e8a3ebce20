// Package models defines the domain entities of the catalog and the
// persistence interfaces over them.
//
// Entities:
//   - [Artist] : a performer with a set of named awards
//   - [Song] : a composition, referencing its artist by identifier
//   - [Recording] : a dated performance of a song
//
// Identifiers are opaque strings, immutable once assigned; a blank ID on a
// create is filled with a generated UUID. References between entities carry
// no storage-level integrity (the column store has no foreign keys), so the
// service layer checks them before every write.
//
// The [Repository] interface defines the CRUD contract shared by every
// entity; [ArtistRepository], [SongRepository] and [RecordingRepository]
// extend it with the entity-specific query paths backed by denormalized
// tables and secondary indexes.
package models
