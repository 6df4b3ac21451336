// pkg/temporal/slice.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package temporal

// TimeSlice is the base shared by every feature's versioned state: a
// half-open validity interval plus a polymorphic Payload. Per the
// design notes, rather than virtual dispatch with per-type as_*
// accessors that fall back to a shared invalid singleton, the payload
// is carried as `any` and extracted with SliceAs, a generic safe-cast
// that returns (zero, false) on a kind mismatch instead of panicking or
// aliasing a global sentinel object.
type TimeSlice struct {
	Interval TimeInterval
	Payload  any
}

// Invalid is the zero-value TimeSlice returned by accessors that find
// nothing; its Interval is the empty, non-snapshot [0,0) so it never
// satisfies Contains or contributes overlap.
var Invalid = TimeSlice{}

// IsValid reports whether ts was actually produced by a lookup, as
// opposed to being the Invalid sentinel.
func (ts TimeSlice) IsValid() bool {
	return ts.Payload != nil
}

// SliceAs extracts ts's Payload as T, the safe-pattern-extraction
// analogue of the source tree's as_airspace/as_route/... accessors.
func SliceAs[T any](ts TimeSlice) (T, bool) {
	v, ok := ts.Payload.(T)
	return v, ok
}

// IdentPayload is the common case of a feature whose state at a given
// time is just a name (Navaid, DesignatedPoint, Route, ... before any
// richer payload is attached).
type IdentPayload struct {
	Ident string
}

// PointIdentPayload adds a geographic position to an identified feature
// (a Navaid or DesignatedPoint time-slice).
type PointIdentPayload struct {
	Ident    string
	Lat, Lon float64
}
