// pkg/ingest/testfeed/testfeed.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package testfeed provides in-memory fakes for ingest.FeatureSource
// and ingest.ObjectDB, in the style of pkg/aviation's StaticDatabase:
// plain maps populated by the test, no I/O.
package testfeed

import (
	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/ingest"
	"github.com/mmp/adrcore/pkg/temporal"
)

// Source is a fake ingest.FeatureSource backed by an in-memory slice
// of features and a parse-time ID map.
type Source struct {
	FeatureList []ingest.Feature
	ParseIDs    map[string]uuid.UUID
}

func NewSource() *Source {
	return &Source{ParseIDs: map[string]uuid.UUID{}}
}

func (s *Source) Features() []ingest.Feature { return s.FeatureList }

func (s *Source) ResolveParseID(ident string) (uuid.UUID, bool) {
	id, ok := s.ParseIDs[ident]
	return id, ok
}

// AddFeature appends f and returns s for chaining.
func (s *Source) AddFeature(f ingest.Feature) *Source {
	s.FeatureList = append(s.FeatureList, f)
	return s
}

// AddParseID registers ident -> id in the parse-time map and returns s
// for chaining.
func (s *Source) AddParseID(ident string, id uuid.UUID) *Source {
	s.ParseIDs[ident] = id
	return s
}

// airspaceEntry is one persistent airspace known to the fake object
// database: an ident/type pair valid over an interval.
type airspaceEntry struct {
	ident    string
	airType  string
	interval temporal.TimeInterval
	id       uuid.UUID
}

// ObjectDB is a fake ingest.ObjectDB backed by plain maps, populated
// directly by the test rather than by any query language.
type ObjectDB struct {
	Airspaces []airspaceEntry
	Points    map[string]uuid.UUID
	Routes    map[string]uuid.UUID
	Segments  map[segmentKey]uuid.UUID
	Edges     map[uuid.UUID][]ingest.SegmentEdge
}

type segmentKey struct {
	route, start, end uuid.UUID
}

func NewObjectDB() *ObjectDB {
	return &ObjectDB{
		Points:   map[string]uuid.UUID{},
		Routes:   map[string]uuid.UUID{},
		Segments: map[segmentKey]uuid.UUID{},
		Edges:    map[uuid.UUID][]ingest.SegmentEdge{},
	}
}

func (db *ObjectDB) AddAirspace(ident, airType string, interval temporal.TimeInterval, id uuid.UUID) *ObjectDB {
	db.Airspaces = append(db.Airspaces, airspaceEntry{ident: ident, airType: airType, interval: interval, id: id})
	return db
}

func (db *ObjectDB) AddPoint(ident string, id uuid.UUID) *ObjectDB {
	db.Points[ident] = id
	return db
}

func (db *ObjectDB) AddRoute(ident string, id uuid.UUID) *ObjectDB {
	db.Routes[ident] = id
	return db
}

func (db *ObjectDB) AddSegment(route, start, end, segment uuid.UUID, lengthMetres float64) *ObjectDB {
	db.Segments[segmentKey{route, start, end}] = segment
	db.Segments[segmentKey{route, end, start}] = segment
	db.Edges[route] = append(db.Edges[route], ingest.SegmentEdge{Segment: segment, Start: start, End: end, LengthMetres: lengthMetres})
	return db
}

func (db *ObjectDB) FindAirspace(ident string, interval temporal.TimeInterval, airspaceType string) (uuid.UUID, bool) {
	for _, a := range db.Airspaces {
		if a.ident != ident || a.airType != airspaceType {
			continue
		}
		if a.interval.Overlaps(interval) {
			return a.id, true
		}
	}
	return uuid.Nil, false
}

func (db *ObjectDB) FindPoint(ident string) (uuid.UUID, bool) {
	id, ok := db.Points[ident]
	return id, ok
}

func (db *ObjectDB) FindRoute(ident string) (uuid.UUID, bool) {
	id, ok := db.Routes[ident]
	return id, ok
}

func (db *ObjectDB) FindSegment(route, start, end uuid.UUID) (uuid.UUID, bool) {
	id, ok := db.Segments[segmentKey{route, start, end}]
	return id, ok
}

func (db *ObjectDB) RouteSegmentEdges(route uuid.UUID) []ingest.SegmentEdge {
	return db.Edges[route]
}
