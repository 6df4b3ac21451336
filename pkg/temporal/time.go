// pkg/temporal/time.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package temporal implements the versioned-object model shared by every
// ADR/AIXM feature class: a UUID-identified Object carrying an ordered
// list of TimeSlices, with point-in-time and best-overlap access.
package temporal

// TimeInstant is seconds-since-epoch. TimeMax marks an open-ended
// interval ("still in effect"); since it is the largest representable
// value, ordinary min/max/subtraction arithmetic treats it as +Inf
// without special-casing.
type TimeInstant uint64

const TimeMax TimeInstant = ^TimeInstant(0)

// TimeInterval is half-open: [Start, End). A snapshot slice is the
// degenerate case Start == End != 0, describing a single instant rather
// than a span.
type TimeInterval struct {
	Start TimeInstant
	End   TimeInstant
}

// IsSnapshot reports whether iv is a degenerate instant-description slice.
func (iv TimeInterval) IsSnapshot() bool {
	return iv.Start == iv.End && iv.Start != 0
}

// IsOpen reports whether iv has no defined end.
func (iv TimeInterval) IsOpen() bool {
	return iv.End == TimeMax
}

// Contains reports whether t falls in [Start, End). Snapshot intervals
// contain nothing under half-open semantics by construction; callers
// that want snapshot data go through ByIndex instead of SliceAt.
func (iv TimeInterval) Contains(t TimeInstant) bool {
	return t >= iv.Start && t < iv.End
}

// Overlaps reports whether iv and other share any instant.
func (iv TimeInterval) Overlaps(other TimeInterval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// OverlapSecs returns the length, in seconds, of the intersection of iv
// and other (0 if disjoint).
func (iv TimeInterval) OverlapSecs(other TimeInterval) uint64 {
	start := maxInstant(iv.Start, other.Start)
	end := minInstant(iv.End, other.End)
	if end <= start {
		return 0
	}
	return uint64(end - start)
}

// Intersect returns the intersection of iv and other, and whether it is
// non-empty.
func (iv TimeInterval) Intersect(other TimeInterval) (TimeInterval, bool) {
	start := maxInstant(iv.Start, other.Start)
	end := minInstant(iv.End, other.End)
	if end <= start {
		return TimeInterval{}, false
	}
	return TimeInterval{Start: start, End: end}, true
}

func minInstant(a, b TimeInstant) TimeInstant {
	if a < b {
		return a
	}
	return b
}

func maxInstant(a, b TimeInstant) TimeInstant {
	if a > b {
		return a
	}
	return b
}
