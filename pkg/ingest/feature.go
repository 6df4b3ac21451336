// pkg/ingest/feature.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package ingest implements the AUP ingest pipeline: it consumes a
// parsed AIXM 5.1 feature tree (produced by an external XML SAX
// parser, out of scope here) and resolves each feature against the
// object database, deriving route-segment chains and emitting
// AUPCDR/AUPRSA records into the store.
package ingest

import (
	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/aup"
	"github.com/mmp/adrcore/pkg/temporal"
)

// Interpretation tags how a FeatureSlice's interval should be read.
type Interpretation int

const (
	Baseline Interpretation = iota
	PermDelta
	TempDelta
	Snapshot
)

// RawAvailability is a CDR availability band as the parser hands it
// over: host_airspaces are still bare idents from the feed, not yet
// resolved against the parse-time ID map.
type RawAvailability struct {
	AltRange           altitude.Range
	HostAirspaceIdents []string
	CDRNum             int
	Direction          altitude.Direction
}

// RawActivation is an RSA activation as the parser hands it over.
type RawActivation struct {
	AltRange           altitude.Range
	HostAirspaceIdents []string
	Status             aup.Status
}

// FeatureSlice is one versioned state of a Feature: a validity
// interval (meaningless for Snapshot slices, which describe a single
// instant) plus the attributes the parser extracted for it.
type FeatureSlice struct {
	Interval       temporal.TimeInterval
	Interpretation Interpretation

	// Airspace features.
	Ident        string
	AirspaceType string

	// RouteSegment features.
	Route string
	Start string
	End   string

	// CDR/RSA payload, present on non-snapshot RouteSegment/Airspace
	// slices that describe an availability/activation.
	Availabilities  []RawAvailability // CDR
	Activation      *RawActivation    // RSA
	RSAAirspaceType string
	RSAICAO         bool
	RSALevelFlags   uint32
}

// IsSnapshot reports whether s describes a single-instant feature
// state rather than a versioned interval.
func (s FeatureSlice) IsSnapshot() bool {
	return s.Interpretation == Snapshot
}

// Feature is a parse-time AUP feature: a sequence of time-slices of
// one of the two kinds §4.4 resolves (Airspace, RouteSegment).
type Feature struct {
	Kind   temporal.ObjectKind // KindAirspace or KindRouteSegment
	Slices []FeatureSlice
}

// snapshotSlice returns f's snapshot slice, if any — used to fill
// missing ident/type on non-snapshot slices per spec.
func (f Feature) snapshotSlice() (FeatureSlice, bool) {
	for _, s := range f.Slices {
		if s.IsSnapshot() {
			return s, true
		}
	}
	return FeatureSlice{}, false
}

// FeatureSource is the consumer-side interface onto the external SAX
// parser: it yields the parsed feature tree plus the parse-time ID map
// ("host_airspaces" strings, navaid/point idents -> the UUIDs assigned
// during this parse) the resolution pipeline needs to turn bare idents
// into persistent UUIDs it hasn't resolved through ObjectDB yet.
type FeatureSource interface {
	Features() []Feature
	ResolveParseID(ident string) (uuid.UUID, bool)
}

// ObjectDB is the read-only object-database collaborator: resolving a
// parsed feature's identity to a persistent Object's UUID, and
// supplying the route-segment adjacency a Dijkstra fallback needs.
type ObjectDB interface {
	// FindAirspace resolves (ident, overlap with interval, type) to a
	// persistent Airspace.
	FindAirspace(ident string, interval temporal.TimeInterval, airspaceType string) (uuid.UUID, bool)
	// FindPoint resolves a navaid/designated-point ident to its UUID.
	FindPoint(ident string) (uuid.UUID, bool)
	// FindRoute resolves a route ident to its UUID.
	FindRoute(ident string) (uuid.UUID, bool)
	// FindSegment returns the direct route segment between start and
	// end along route, if the persistent database already has one.
	FindSegment(route, start, end uuid.UUID) (uuid.UUID, bool)
	// RouteSegmentEdges returns every segment edge belonging to route,
	// for the Dijkstra fallback.
	RouteSegmentEdges(route uuid.UUID) []SegmentEdge
}

// SegmentEdge is one edge of a route's segment graph: a persistent
// route-segment UUID connecting two endpoint UUIDs, weighted by
// length.
type SegmentEdge struct {
	Segment     uuid.UUID
	Start, End  uuid.UUID
	LengthMetres float64
}
