// pkg/altitude/altrange.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package altitude implements AltRange (a tagged altitude band) and
// BidirAltRange (a per-direction pair of altitude IntervalSets), the
// vertical-extent primitives AirspaceComponent and the AUP availability
// records are built from.
package altitude

import (
	"math"

	"github.com/mmp/adrcore/pkg/interval"
)

// Mode tags how an altitude bound should be interpreted.
type Mode int

const (
	QNH Mode = iota
	STD
	Height
	Floor
	Ceiling
	Unlimited
	Ignore
)

// AltMax is the sentinel used in place of a numeric bound when Mode is
// Unlimited; AltIgnore marks a bound that never constrains anything
// (Mode Ignore carries it, but the field itself is never read — the
// mode alone decides).
const (
	AltMax    int32 = math.MaxInt32 / 2
	AltIgnore int32 = math.MinInt32 / 2
)

// Range is an altitude band with independently tagged lower and upper
// bounds (feet).
type Range struct {
	LowerAlt  int32
	LowerMode Mode
	UpperAlt  int32
	UpperMode Mode
}

// Unbounded is the altrange that imposes no constraint at all — the
// identity element for Merge.
var Unbounded = Range{LowerMode: Ignore, UpperMode: Ignore}

// EffectiveLower returns the numeric lower bound used for comparisons;
// Ignore floors it at the lowest representable altitude.
func (a Range) EffectiveLower() int32 {
	if a.LowerMode == Ignore {
		return -AltMax
	}
	return a.LowerAlt
}

// EffectiveUpper returns the numeric upper bound used for comparisons;
// Ignore and Unlimited both raise it to AltMax.
func (a Range) EffectiveUpper() int32 {
	if a.UpperMode == Ignore || a.UpperMode == Unlimited {
		return AltMax
	}
	return a.UpperAlt
}

// Contains reports whether alt lies within the (inclusive) effective
// bounds of a.
func (a Range) Contains(alt int32) bool {
	return alt >= a.EffectiveLower() && alt <= a.EffectiveUpper()
}

// Empty reports whether a's effective bounds describe no altitudes at all.
func (a Range) Empty() bool {
	return a.EffectiveLower() > a.EffectiveUpper()
}

// Merge combines a with the caller-supplied altrange b, producing the
// tightest range consistent with both — the "gated by altrange (merged
// with caller's altrange)" operation components apply during containment
// queries.
func (a Range) Merge(b Range) Range {
	lo := a.EffectiveLower()
	if bl := b.EffectiveLower(); bl > lo {
		lo = bl
	}
	hi := a.EffectiveUpper()
	if bh := b.EffectiveUpper(); bh < hi {
		hi = bh
	}
	return Range{LowerAlt: lo, LowerMode: Floor, UpperAlt: hi, UpperMode: Ceiling}
}

// Overlaps reports whether a and b's effective bounds share any altitude.
func (a Range) Overlaps(b Range) bool {
	return a.EffectiveLower() <= b.EffectiveUpper() && b.EffectiveLower() <= a.EffectiveUpper()
}

// OverlapsClosed reports whether a overlaps the closed range [alt0, alt1].
func (a Range) OverlapsClosed(alt0, alt1 int32) bool {
	return a.EffectiveLower() <= alt1 && alt0 <= a.EffectiveUpper()
}

// ToIntervalSet converts a's (inclusive) effective bounds to a
// half-open IntervalSet, e.g. FL000-FL660 -> [0, 66001).
func (a Range) ToIntervalSet() interval.Set[int32] {
	if a.Empty() {
		return interval.Set[int32]{}
	}
	lo, hi := a.EffectiveLower(), a.EffectiveUpper()
	return interval.New(interval.Span[int32]{Lo: lo, Hi: hi + 1})
}

// ClosedBounds returns a's effective (lower, upper) bounds as an
// inclusive pair, for callers presenting results the way the spec's
// examples do ("[0, 66000]").
func (a Range) ClosedBounds() (lo, hi int32) {
	return a.EffectiveLower(), a.EffectiveUpper()
}
