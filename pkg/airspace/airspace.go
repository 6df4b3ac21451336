// pkg/airspace/airspace.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package airspace implements the composable airspace containment
// engine: an AirspaceTimeSlice is an operator chain of
// AirspaceComponents, each a polygon-with-holes (or a reference to a
// sub-airspace's own composed geometry) gated by altitude and a
// timetable. It answers point-in-airspace, segment-intersection, and
// interval-of-altitudes queries, all derived from GetPointAltitudes /
// GetIntersectAltitudes so the spec's containment/altitude-set
// equivalence invariants hold by construction rather than by separate
// bookkeeping.
package airspace

import (
	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/geom"
	"github.com/mmp/adrcore/pkg/interval"
	"github.com/mmp/adrcore/pkg/temporal"
	"github.com/mmp/adrcore/pkg/timetable"
)

// Operator tags how a component's contribution folds into the
// accumulated region: Base replaces it, Union adds to it. Intersect
// and Subtract are reserved by the spec but currently unused.
type Operator int

const (
	OpBase Operator = iota
	OpUnion
)

// PointLink ties a polygon vertex back to the designated point that
// owns it, so edits to the point propagate into the polygon on
// Recompute.
type PointLink struct {
	Link        temporal.Link
	PolyIndex   int
	RingIndex   int
	VertexIndex int
}

// AirspaceComponent is one term of the operator-chain composition of
// an airspace's geometry.
type AirspaceComponent struct {
	Operator     Operator
	AltRange     altitude.Range
	FullGeometry bool // defer entirely to AirspaceLink's own composed geometry
	GndElevMin   float64
	GndElevMax   float64
	AirspaceLink temporal.Link
	Poly         geom.MultiPolygonHole
	PointLinks   []PointLink
}

// TerrainDB is the external terrain-elevation collaborator: metres,
// with ocean areas already folded to 0 and nodata areas already
// dropped by the implementation.
type TerrainDB interface {
	GetMinMaxElev(poly geom.MultiPolygonHole) (minMetres, maxMetres float64)
}

// AirspaceTimeSlice is the time-slice payload for Object slices of
// kind Airspace.
type AirspaceTimeSlice struct {
	Type      string
	LocalType string
	Flags     uint32
	BBox      geom.Extent
	Timetable timetable.TimeTableOr
	Components []AirspaceComponent
}

// resolveSubAirspace resolves a Link to the Object it names and extracts the
// AirspaceTimeSlice active at instant t, treating an unresolved link
// or a non-Airspace/absent slice as "no sub-airspace" rather than
// raising — containment queries never throw per spec §4.2.
func resolveSubAirspace(link temporal.Link, loader temporal.LinkLoader, t temporal.TimeInstant) (*AirspaceTimeSlice, bool) {
	if link.IsNil() {
		return nil, false
	}
	obj, ok := link.Cached()
	if !ok {
		if loader == nil {
			return nil, false
		}
		l := link
		if err := loader.Resolve([]*temporal.Link{&l}, 1); err != nil {
			return nil, false
		}
		obj, ok = l.Cached()
		if !ok {
			return nil, false
		}
	}
	ts, ok := obj.SliceAt(t)
	if !ok {
		return nil, false
	}
	slice, ok := temporal.SliceAs[*AirspaceTimeSlice](ts)
	if !ok {
		return nil, false
	}
	return slice, true
}

// applies reports whether s's bbox contains pt and its timetable
// contains (pt, time) — the universal bypass gate every operation
// checks first.
func (s *AirspaceTimeSlice) applies(tte *timetable.TimeTableEval, instant temporal.TimeInstant, pt geom.Point) bool {
	if !s.BBox.Inside(pt) {
		return false
	}
	return s.Timetable.IsInside(tte, uint64(instant), true)
}

// IsAltitudeOverlap reports whether any component's altrange overlaps
// [alt0,alt1] during tm, ignoring geometry and point position
// entirely — used to ask "could this airspace ever apply at this
// altitude" independent of where the query point sits.
func (s *AirspaceTimeSlice) IsAltitudeOverlap(alt0, alt1 int32, tm temporal.TimeInstant, callerAltRange altitude.Range) bool {
	for _, c := range s.Components {
		merged := c.AltRange.Merge(callerAltRange)
		if merged.OverlapsClosed(alt0, alt1) {
			return true
		}
	}
	return false
}

func emptyIntSet() interval.Set[int32] { return interval.Set[int32]{} }
