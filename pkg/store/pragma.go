// pkg/store/pragma.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package store

import (
	"database/sql"
	"fmt"
)

// JournalMode selects SQLite's journal_mode pragma.
type JournalMode string

const (
	JournalDelete JournalMode = "DELETE"
	JournalWAL    JournalMode = "WAL"
)

// LockingMode selects SQLite's locking_mode pragma.
type LockingMode string

const (
	LockingNormal    LockingMode = "NORMAL"
	LockingExclusive LockingMode = "EXCLUSIVE"
)

// Config configures the pragmas Open executes once through the
// database handle (each on whichever pooled connection runs it), per
// spec.md §6's "configurable pragmas" requirement — generalized from
// banshee's single hardcoded applyPragmas call.
type Config struct {
	Journal    JournalMode
	Locking    LockingMode
	Sync       string // "OFF", "NORMAL", "FULL"; empty defaults to "NORMAL"
}

// DefaultConfig matches the spec's single-writer, embedded-store case:
// WAL journaling, normal locking, normal durability.
var DefaultConfig = Config{
	Journal: JournalWAL,
	Locking: LockingNormal,
	Sync:    "NORMAL",
}

func applyPragmas(db *sql.DB, cfg Config) error {
	journal := cfg.Journal
	if journal == "" {
		journal = JournalWAL
	}
	locking := cfg.Locking
	if locking == "" {
		locking = LockingNormal
	}
	sync := cfg.Sync
	if sync == "" {
		sync = "NORMAL"
	}

	pragmas := []string{
		fmt.Sprintf("PRAGMA journal_mode = %s", journal),
		fmt.Sprintf("PRAGMA locking_mode = %s", locking),
		fmt.Sprintf("PRAGMA synchronous = %s", sync),
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("apply pragma %q: %w", p, err)
		}
	}
	return nil
}
