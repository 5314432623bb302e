// Package sqlite provides a SQLite-backed implementation of driven.RunStore.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files, and
// applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.nerset/data/history.db
package sqlite
