// pkg/adrerr/errors.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package adrerr is the error taxonomy shared by the containment
// engine, ingest pipeline, and AUP store: sentinel errors for the
// fatal/recoverable kinds, plus ParseError/PersistenceError carrying
// structured context, grounded on the teacher's pkg/aviation/errors.go
// sentinel-list idiom.
package adrerr

import "errors"

var (
	ErrLinkUnresolved    = errors.New("link target not present in object database")
	ErrInvariantViolated = errors.New("invariant violated")
	ErrGeometryInvalid   = errors.New("self-intersecting geometry")
)

// ParseError describes a single malformed value encountered during
// ingest (unknown enum, invalid number, bad coordinate); the ingest
// driver accumulates these via util.ErrorLogger and continues.
type ParseError struct {
	Context string // e.g. feature ident, element path
	Err     error
}

func (e *ParseError) Error() string {
	return e.Context + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// PersistenceError wraps an AUP store I/O failure; callers propagate
// it and roll back the enclosing transaction.
type PersistenceError struct {
	Op  string // e.g. "save", "find", "find_point"
	Err error
}

func (e *PersistenceError) Error() string {
	return "aup store " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }
