// pkg/timetable/element.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timetable

// TimeInstant mirrors pkg/temporal.TimeInstant's representation
// (unsigned seconds since epoch) without importing that package, so
// the algebra stays free of any dependency on the object model it is
// embedded in.
type TimeInstant = uint64

// TimeTableElement is a validity window [Start, End) over a fold of
// TimePatterns.
type TimeTableElement struct {
	Start, End TimeInstant
	Patterns   []TimePattern
}

// inWindow reports whether tte's instant (carried by the caller as
// part of constructing Year/Month/.../DaySeconds) falls in
// [Start,End); callers that only have a TimeTableEval (no absolute
// TimeInstant) treat every element as in-window, relying on the
// bounding-box/bbox pre-check the airspace layer already performs
// before invoking the algebra (spec §4.2 "the slice is bypassed unless
// its bbox contains the query and its timetable contains the point").
func (e TimeTableElement) inWindow(instant TimeInstant, haveInstant bool) bool {
	if !haveInstant {
		return true
	}
	return instant >= e.Start && instant < e.End
}

// IsInside evaluates e's pattern fold at tte. instant/haveInstant let
// a caller that has an absolute TimeInstant bound e's validity window;
// when absent the window check is skipped (the caller already
// enforced it).
func (e TimeTableElement) IsInside(tte *TimeTableEval, instant TimeInstant, haveInstant bool) bool {
	if !e.inWindow(instant, haveInstant) {
		return false
	}
	if len(e.Patterns) == 0 {
		return false
	}
	acc := false
	for _, p := range e.Patterns {
		v := p.IsInside(tte)
		switch p.Operator {
		case OpSet:
			acc = v
		case OpAdd:
			acc = acc || v
		case OpSub:
			acc = acc && !v
		}
	}
	return acc
}

// Simplify implements the TimeTableElement.simplify contract:
//  1. drop patterns with an invalid operator (none exist in this
//     representation — Op is closed — so this step is a no-op here),
//  2. drop structurally-never patterns,
//  3. drop leading sub patterns (nothing to subtract from yet), then
//     upgrade the new first pattern to Set,
//  4. a later Set pattern masks everything before it,
//  5. an Always pattern absorbs everything before it; if it was itself
//     Sub, the whole element becomes never (nil patterns).
func (e TimeTableElement) Simplify() TimeTableElement {
	var kept []TimePattern
	for _, p := range e.Patterns {
		if p.IsNever() {
			continue
		}
		kept = append(kept, p)
	}
	for len(kept) > 0 && kept[0].Operator == OpSub {
		kept = kept[1:]
	}
	if len(kept) == 0 {
		return TimeTableElement{Start: e.Start, End: e.End}
	}
	kept[0].Operator = OpSet

	lastSet := 0
	for i := 1; i < len(kept); i++ {
		if kept[i].Operator == OpSet {
			lastSet = i
		}
	}
	kept = kept[lastSet:]
	if lastSet > 0 {
		kept[0].Operator = OpSet
	}

	for i, p := range kept {
		if p.Type == TypeAlways {
			if p.Operator == OpSub {
				return TimeTableElement{Start: e.Start, End: e.End}
			}
			kept = kept[i:]
			kept[0].Operator = OpSet
			break
		}
	}

	return TimeTableElement{Start: e.Start, End: e.End, Patterns: kept}
}

// IsNever reports whether e can never be inside regardless of tte
// (after simplification, an empty pattern list).
func (e TimeTableElement) IsNever() bool {
	return len(e.Simplify().Patterns) == 0
}
