// pkg/timetable/table.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timetable

// TimeTable is a fold of TimeTableElements, each tagged as included
// (ORed in) or excluded (AND-NOT'd in). Negate flips the folded
// result; it exists so Invert (§4.3 De Morgan expansion) can represent
// "not this TimeTable" without leaving the three-level OR-of-AND shape
// — negating a TimeTable with no Elements (structurally "always")
// yields the per-table encoding of "never" that TimeTableAnd.IsNever
// recognizes.
type TimeTable struct {
	Elements []TimeTableElementRef
	Negate   bool
}

// TimeTableElementRef pairs an element with its include/exclude role
// within the enclosing TimeTable.
type TimeTableElementRef struct {
	Element TimeTableElement
	Exclude bool
}

// IsInside folds the table's elements: empty is always-true (vacuously
// included, barred only by earlier bbox/time pre-checks); otherwise
// excluded elements AND-NOT their value into the accumulator, included
// elements OR it in.
func (t TimeTable) IsInside(tte *TimeTableEval, instant TimeInstant, haveInstant bool) bool {
	acc := true
	if len(t.Elements) > 0 {
		acc = false
		for _, ref := range t.Elements {
			v := ref.Element.IsInside(tte, instant, haveInstant)
			if ref.Exclude {
				acc = acc && !v
			} else {
				acc = acc || v
			}
		}
	}
	if t.Negate {
		return !acc
	}
	return acc
}

// IsAlways reports whether t is structurally empty and not negated
// (vacuous truth).
func (t TimeTable) IsAlways() bool {
	return !t.Negate && len(t.Elements) == 0
}

// IsNever reports whether t is a negated vacuous truth.
func (t TimeTable) IsNever() bool {
	return t.Negate && len(t.Elements) == 0
}

// Simplify applies TimeTableElement.Simplify to each constituent
// element and drops those that became structurally never — an
// included never-element contributes nothing to the OR fold, and an
// excluded never-element is an AND-NOT of a constant false, the
// identity, so it also drops cleanly.
func (t TimeTable) Simplify() TimeTable {
	var kept []TimeTableElementRef
	for _, ref := range t.Elements {
		se := ref.Element.Simplify()
		if len(se.Patterns) == 0 {
			continue
		}
		kept = append(kept, TimeTableElementRef{Element: se, Exclude: ref.Exclude})
	}
	return TimeTable{Elements: kept, Negate: t.Negate}
}
