// pkg/ingest/objectdb/objectdb.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package objectdb is a JSON-file-backed ingest.ObjectDB: a directory
// of snapshot dumps (airspaces.json, points.json, routes.json,
// segments.json) loaded once at open time, grounded on the
// map-lookup idiom of pkg/aviation's StaticDatabase. Ident lookups are
// plain map reads; only the per-route segment-edge lists handed out by
// RouteSegmentEdges are kept in an LRU.
package objectdb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brunoga/deep"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/ingest"
	"github.com/mmp/adrcore/pkg/temporal"
)

type airspaceDump struct {
	Ident string               `json:"ident"`
	Type  string               `json:"type"`
	Start temporal.TimeInstant `json:"start"`
	End   temporal.TimeInstant `json:"end"`
	ID    uuid.UUID            `json:"id"`
}

type pointDump struct {
	Ident string    `json:"ident"`
	ID    uuid.UUID `json:"id"`
}

type routeDump struct {
	Ident string    `json:"ident"`
	ID    uuid.UUID `json:"id"`
}

type segmentDump struct {
	Route        string    `json:"route"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	ID           uuid.UUID `json:"id"`
	LengthMetres float64   `json:"length_m"`
}

// DB is a read-only, in-memory object database loaded from a
// directory of JSON snapshot files.
type DB struct {
	airspaces []airspaceDump
	points    map[string]uuid.UUID
	routes    map[string]uuid.UUID
	segments  map[segmentKey]uuid.UUID
	edges     map[uuid.UUID][]ingest.SegmentEdge

	edgeCache *lru.Cache[uuid.UUID, []ingest.SegmentEdge]
}

type segmentKey struct {
	route, start, end uuid.UUID
}

// Open reads the snapshot files under dir. Any file that doesn't
// exist is treated as empty, so a caller that only cares about routes
// doesn't need to supply an airspaces.json.
func Open(dir string) (*DB, error) {
	db := &DB{
		points:   map[string]uuid.UUID{},
		routes:   map[string]uuid.UUID{},
		segments: map[segmentKey]uuid.UUID{},
		edges:    map[uuid.UUID][]ingest.SegmentEdge{},
	}

	if err := loadJSON(filepath.Join(dir, "airspaces.json"), &db.airspaces); err != nil {
		return nil, err
	}

	var points []pointDump
	if err := loadJSON(filepath.Join(dir, "points.json"), &points); err != nil {
		return nil, err
	}
	for _, p := range points {
		db.points[p.Ident] = p.ID
	}

	var routes []routeDump
	if err := loadJSON(filepath.Join(dir, "routes.json"), &routes); err != nil {
		return nil, err
	}
	for _, r := range routes {
		db.routes[r.Ident] = r.ID
	}

	var segments []segmentDump
	if err := loadJSON(filepath.Join(dir, "segments.json"), &segments); err != nil {
		return nil, err
	}
	for _, s := range segments {
		route, ok := db.routes[s.Route]
		if !ok {
			continue
		}
		start, sok := db.points[s.Start]
		end, eok := db.points[s.End]
		if !sok || !eok {
			continue
		}
		db.segments[segmentKey{route, start, end}] = s.ID
		db.segments[segmentKey{route, end, start}] = s.ID
		db.edges[route] = append(db.edges[route], ingest.SegmentEdge{
			Segment: s.ID, Start: start, End: end, LengthMetres: s.LengthMetres,
		})
	}

	cache, err := lru.New[uuid.UUID, []ingest.SegmentEdge](64)
	if err != nil {
		return nil, fmt.Errorf("objectdb: init edge cache: %w", err)
	}
	db.edgeCache = cache

	return db, nil
}

func loadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("objectdb: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("objectdb: parse %s: %w", path, err)
	}
	return nil
}

func (db *DB) FindAirspace(ident string, interval temporal.TimeInterval, airspaceType string) (uuid.UUID, bool) {
	for _, a := range db.airspaces {
		if a.Ident != ident || a.Type != airspaceType {
			continue
		}
		if (temporal.TimeInterval{Start: a.Start, End: a.End}).Overlaps(interval) {
			return a.ID, true
		}
	}
	return uuid.Nil, false
}

func (db *DB) FindPoint(ident string) (uuid.UUID, bool) {
	id, ok := db.points[ident]
	return id, ok
}

func (db *DB) FindRoute(ident string) (uuid.UUID, bool) {
	id, ok := db.routes[ident]
	return id, ok
}

func (db *DB) FindSegment(route, start, end uuid.UUID) (uuid.UUID, bool) {
	id, ok := db.segments[segmentKey{route, start, end}]
	return id, ok
}

// RouteSegmentEdges returns a deep copy of route's edges, caching the
// per-route slice so a Dijkstra fallback walking many route-segment
// features for the same route doesn't repeatedly clone it.
func (db *DB) RouteSegmentEdges(route uuid.UUID) []ingest.SegmentEdge {
	if cached, ok := db.edgeCache.Get(route); ok {
		return cached
	}
	edges := db.edges[route]
	cloned, err := deep.Copy(edges)
	if err != nil {
		return edges
	}
	db.edgeCache.Add(route, cloned)
	return cloned
}
