// Package sqlite provides the SQLite-backed implementation of the
// ConfigStore driven port. Entries live in a single config table with a
// kind column; list payloads are JSON-encoded. Schema changes are
// applied through embedded migrations.
package sqlite
