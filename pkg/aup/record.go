// pkg/aup/record.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package aup implements the AUP record model: CDR (Conditional Route)
// and RSA (Restricted-Sector Activation) records as produced by the
// daily EAUP bulletin, plus the temporal-overlap arithmetic the store's
// upsert algorithm is built on.
package aup

import (
	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/temporal"
)

// Kind discriminates the two record payload shapes a Record carries.
type Kind int

const (
	KindCDR Kind = iota
	KindRSA
)

func (k Kind) String() string {
	if k == KindRSA {
		return "RSA"
	}
	return "CDR"
}

// Status is an RSA activation's reported state.
type Status int

const (
	StatusActive Status = iota
	StatusInvalid
)

// Availability is one CDR opening: an altitude band, the airspaces
// that host it, which of the route segment's three conditional-route
// numbers it belongs to, and the direction it's usable in.
type Availability struct {
	AltRange     altitude.Range
	HostAirspaces []uuid.UUID
	CDRNum       int // 1, 2, or 3
	Direction    altitude.Direction
}

// sameBand reports whether a and o would merge under the CDR merge rule:
// same altrange and direction (host_airspaces/cdr_num are the fields
// replaced by the merge, not compared).
func (a Availability) sameBand(o Availability) bool {
	return a.AltRange == o.AltRange && a.Direction == o.Direction
}

// Activation is an RSA record's single payload entry: the activated
// altitude band, the airspaces hosting the restriction, and its status.
type Activation struct {
	AltRange      altitude.Range
	HostAirspaces []uuid.UUID
	Status        Status
}

// Record is a single AUP record: a CDR (payload []Availability) or an
// RSA (payload Activation plus the airspace attributes captured at
// ingest time), attached to obj_link (a route segment for CDR, an
// airspace for RSA) over a half-open time interval.
type Record struct {
	ObjLink  temporal.Link
	Interval temporal.TimeInterval
	Kind     Kind

	CDRAvailabilities []Availability // Kind == KindCDR

	RSAActivation  Activation // Kind == KindRSA
	RSAAirspaceType string
	RSAICAO        bool
	RSALevelFlags  uint32
}

// IsValid reports whether r's interval is non-degenerate; a record
// with start == end is never stored, per spec.
func (r Record) IsValid() bool {
	return r.Interval.Start != r.Interval.End
}

// IsOverlap reports whether r's interval overlaps [t0,t1).
func (r Record) IsOverlap(t0, t1 temporal.TimeInstant) bool {
	return r.Interval.Overlaps(temporal.TimeInterval{Start: t0, End: t1})
}

// GetOverlap returns the length, in seconds, of r's interval's
// intersection with [t0,t1).
func (r Record) GetOverlap(t0, t1 temporal.TimeInstant) uint64 {
	return r.Interval.OverlapSecs(temporal.TimeInterval{Start: t0, End: t1})
}

// clip bounds t to r's own interval.
func (r Record) clip(t temporal.TimeInstant) temporal.TimeInstant {
	if t < r.Interval.Start {
		return r.Interval.Start
	}
	if t > r.Interval.End {
		return r.Interval.End
	}
	return t
}

// TimeDiscontinuities returns the set of instants, within r's own
// interval, at which r's own boundary or the boundary of any record
// reachable through a transitive link sits — the union of r's own
// start/end with every resolvable linked record's discontinuities via
// resolve, clipped to r's interval and deduplicated.
func (r Record) TimeDiscontinuities(resolve func(uuid.UUID) []Record) []temporal.TimeInstant {
	set := map[temporal.TimeInstant]struct{}{
		r.clip(r.Interval.Start): {},
		r.clip(r.Interval.End):   {},
	}

	if resolve != nil {
		for _, id := range r.linkedAirspaces() {
			for _, linked := range resolve(id) {
				if !linked.IsOverlap(r.Interval.Start, r.Interval.End) {
					continue
				}
				set[r.clip(linked.Interval.Start)] = struct{}{}
				set[r.clip(linked.Interval.End)] = struct{}{}
			}
		}
	}

	out := make([]temporal.TimeInstant, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	return sortInstants(out)
}

func (r Record) linkedAirspaces() []uuid.UUID {
	switch r.Kind {
	case KindCDR:
		var out []uuid.UUID
		for _, a := range r.CDRAvailabilities {
			out = append(out, a.HostAirspaces...)
		}
		return out
	case KindRSA:
		return r.RSAActivation.HostAirspaces
	default:
		return nil
	}
}

func sortInstants(ts []temporal.TimeInstant) []temporal.TimeInstant {
	for i := 1; i < len(ts); i++ {
		for j := i; j > 0 && ts[j] < ts[j-1]; j-- {
			ts[j], ts[j-1] = ts[j-1], ts[j]
		}
	}
	return ts
}
