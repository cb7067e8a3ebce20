// Package services implements the application use cases over the
// repositories.
//
// [Catalog] sequences repository calls into the operations the CLI and menu
// expose: creating entities with generated identifiers, checking that
// referenced entities exist before a write (the column store has no foreign
// keys), normalizing award sets, and the query paths backed by denormalized
// tables. [Catalog.Export] dumps the whole catalog to CSV or JSON files with
// a rate limit on row encoding.
//
// Errors from below are annotated and passed through unchanged in kind;
// converting them to user-facing text is the presentation layer's job.
package services
