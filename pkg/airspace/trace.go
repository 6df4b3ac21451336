// pkg/airspace/trace.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/geom"
	"github.com/mmp/adrcore/pkg/temporal"
	"github.com/mmp/adrcore/pkg/timetable"
)

// Reason names why a single step of TraceInside accepted or rejected
// the query point.
type Reason int

const (
	ReasonOutsideBBox Reason = iota
	ReasonOutsideTimetable
	ReasonOutsideTimeSlice
	ReasonOutsideAltRange
	ReasonOutsidePolygon
	ReasonBorder
	ReasonInside
	ReasonOutside
	ReasonNoIntersect
	ReasonSubAirspaceUnresolved
)

func (r Reason) String() string {
	switch r {
	case ReasonOutsideBBox:
		return "outsidebbox"
	case ReasonOutsideTimetable:
		return "outsidetimetable"
	case ReasonOutsideTimeSlice:
		return "outsidetimeslice"
	case ReasonOutsideAltRange:
		return "altrange"
	case ReasonOutsidePolygon:
		return "outside"
	case ReasonBorder:
		return "border"
	case ReasonInside:
		return "inside"
	case ReasonNoIntersect:
		return "nointersect"
	case ReasonSubAirspaceUnresolved:
		return "outsidetime"
	default:
		return "outside"
	}
}

// Trace is one step of a TraceInside diagnostic run: which airspace
// and component index produced Reason.
type Trace struct {
	Airspace       uuid.UUID
	ComponentIndex int
	Reason         Reason
}

// TraceInside mirrors IsInside's logic but records a Trace per
// component instead of folding and short-circuiting, so a caller can
// see exactly which component (and, for FullGeometry components, which
// nested sub-airspace) accepted or rejected the point.
func (s *AirspaceTimeSlice) TraceInside(airspaceID uuid.UUID, tte *timetable.TimeTableEval, instant temporal.TimeInstant,
	pt geom.Point, alt int32, callerAltRange altitude.Range, queryUUID uuid.UUID, loader temporal.LinkLoader) (bool, []Trace) {

	var trace []Trace

	if !s.BBox.Inside(pt) {
		trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: -1, Reason: ReasonOutsideBBox})
		return false, trace
	}
	if !s.Timetable.IsInside(tte, uint64(instant), true) {
		trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: -1, Reason: ReasonOutsideTimetable})
		return false, trace
	}

	acc := false
	for i, c := range s.Components {
		merged := c.AltRange.Merge(callerAltRange)
		var hit bool

		switch {
		case len(c.Poly) > 0:
			class := geom.ClassifyMultiPolygon(pt, c.Poly)
			switch {
			case class == geom.Outside:
				trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: i, Reason: ReasonOutsidePolygon})
			case !merged.Contains(alt):
				trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: i, Reason: ReasonOutsideAltRange})
			case class == geom.OnBoundary:
				trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: i, Reason: ReasonBorder})
			case componentSuppressesPoint(c, queryUUID):
				trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: i, Reason: ReasonOutsidePolygon})
			default:
				trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: i, Reason: ReasonInside})
				hit = true
			}

		case c.FullGeometry && !c.AirspaceLink.IsNil():
			sub, ok := resolveSubAirspace(c.AirspaceLink, loader, instant)
			if !ok {
				trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: i, Reason: ReasonSubAirspaceUnresolved})
				break
			}
			subHit, subTrace := sub.TraceInside(c.AirspaceLink.UUID(), tte, instant, pt, alt, merged, queryUUID, loader)
			trace = append(trace, subTrace...)
			hit = subHit

		default:
			trace = append(trace, Trace{Airspace: airspaceID, ComponentIndex: i, Reason: ReasonOutside})
		}

		switch c.Operator {
		case OpBase:
			acc = hit
		case OpUnion:
			acc = acc || hit
		}
	}

	return acc, trace
}
