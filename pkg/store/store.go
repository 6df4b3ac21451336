// pkg/store/store.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package store implements the persistent AUP record store: a
// database/sql-backed, temporally-sliced key-value store of
// aup.Records with overlap-preserving upsert and point-in-time find,
// grounded on banshee-data-velocity.report/internal/db's
// modernc.org/sqlite + golang-migrate/migrate/v4 pairing.
package store

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a *sql.DB holding the aup_record table.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path,
// applies cfg's pragmas, and migrates the schema to the latest
// version.
func Open(path string, cfg Config) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err := applyPragmas(db, cfg); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrateUp() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("iofs source: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Analyze runs a one-shot ANALYZE to refresh the query planner's
// statistics, per spec.md §6's "one-shot ANALYZE/VACUUM operators".
func (s *Store) Analyze() error {
	_, err := s.db.Exec("ANALYZE")
	return err
}

// Vacuum rebuilds the database file, reclaiming space from deleted
// rows.
func (s *Store) Vacuum() error {
	_, err := s.db.Exec("VACUUM")
	return err
}
