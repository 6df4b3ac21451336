// pkg/temporal/object.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package temporal

import (
	"sort"

	"github.com/google/uuid"
)

// ObjectKind discriminates the feature classes the object database can
// hand back; every Object carries one so callers can tell what its
// TimeSlice Payloads will assert to without probing each possibility.
type ObjectKind int

const (
	KindUnknown ObjectKind = iota
	KindAirspace
	KindRoute
	KindRouteSegment
	KindNavaid
	KindDesignatedPoint
	KindSpecialDate
	KindOrganisationAuthority
	KindUnit
	KindATMService
)

func (k ObjectKind) String() string {
	switch k {
	case KindAirspace:
		return "Airspace"
	case KindRoute:
		return "Route"
	case KindRouteSegment:
		return "RouteSegment"
	case KindNavaid:
		return "Navaid"
	case KindDesignatedPoint:
		return "DesignatedPoint"
	case KindSpecialDate:
		return "SpecialDate"
	case KindOrganisationAuthority:
		return "OrganisationAuthority"
	case KindUnit:
		return "Unit"
	case KindATMService:
		return "AirTrafficManagementService"
	default:
		return "Unknown"
	}
}

// Object is a TemporalObject: a UUID-identified, reference-counted (via
// ordinary Go GC — the "single owner, shared handles only for read"
// convention from the design notes is enforced by callers treating a
// *Object as read-only outside of AddTimeSlice/CleanTimeSlices) feature
// with an ordered list of TimeSlices.
type Object struct {
	id     uuid.UUID
	Kind   ObjectKind
	slices []TimeSlice
}

// NewObject creates an empty Object of the given kind.
func NewObject(id uuid.UUID, kind ObjectKind) *Object {
	return &Object{id: id, Kind: kind}
}

func (o *Object) UUID() uuid.UUID { return o.id }

// Len returns the number of time-slices currently held.
func (o *Object) Len() int { return len(o.slices) }

// SliceAt returns the slice whose interval contains t, or Invalid. The
// slice list is kept sorted by (start, end) by CleanTimeSlices, so a
// linear scan naturally resolves coincident-start ties in favor of the
// earlier-ending slice; a binary search over start times is a valid
// drop-in optimization for objects with long slice lists, per the spec.
func (o *Object) SliceAt(t TimeInstant) (TimeSlice, bool) {
	for _, ts := range o.slices {
		if ts.Interval.Contains(t) {
			return ts, true
		}
	}
	return Invalid, false
}

// BestOverlap returns the slice with the greatest overlap with
// [t0, t1); if every slice has zero overlap, returns Invalid.
func (o *Object) BestOverlap(t0, t1 TimeInstant) (TimeSlice, bool) {
	query := TimeInterval{Start: t0, End: t1}
	var best TimeSlice
	var bestOverlap uint64
	found := false
	for _, ts := range o.slices {
		ov := ts.Interval.OverlapSecs(query)
		if ov > bestOverlap {
			bestOverlap = ov
			best = ts
			found = true
		}
	}
	if !found {
		return Invalid, false
	}
	return best, true
}

// ByIndex returns the i'th slice in storage order (including snapshots),
// or Invalid if i is out of range.
func (o *Object) ByIndex(i int) (TimeSlice, bool) {
	if i < 0 || i >= len(o.slices) {
		return Invalid, false
	}
	return o.slices[i], true
}

// Slices returns the full, ordered slice list for iteration (e.g. by
// the airspace recompute/trace code walking every version).
func (o *Object) Slices() []TimeSlice {
	return o.slices
}

// AddTimeSlice appends ts and re-normalizes the slice list.
func (o *Object) AddTimeSlice(ts TimeSlice) {
	o.slices = append(o.slices, ts)
	o.CleanTimeSlices(0)
}

// CleanTimeSlices normalizes the slice list:
//  1. stable-sorts by (start, end);
//  2. leaves snapshots untouched;
//  3. truncates each non-snapshot slice's end to the next non-snapshot
//     slice's start when they overlap;
//  4. drops any slice that is neither well-formed nor a snapshot, or
//     whose end is at or before cutoff.
func (o *Object) CleanTimeSlices(cutoff TimeInstant) {
	sort.SliceStable(o.slices, func(i, j int) bool {
		a, b := o.slices[i].Interval, o.slices[j].Interval
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.End < b.End
	})

	lastNonSnapshot := -1
	for i := range o.slices {
		if o.slices[i].Interval.IsSnapshot() {
			continue
		}
		if lastNonSnapshot >= 0 {
			prev := &o.slices[lastNonSnapshot].Interval
			if prev.End > o.slices[i].Interval.Start {
				prev.End = o.slices[i].Interval.Start
			}
		}
		lastNonSnapshot = i
	}

	filtered := o.slices[:0]
	for _, ts := range o.slices {
		if ts.Interval.End <= cutoff {
			continue
		}
		if !ts.Interval.IsSnapshot() && ts.Interval.Start >= ts.Interval.End {
			continue
		}
		filtered = append(filtered, ts)
	}
	o.slices = filtered
}
