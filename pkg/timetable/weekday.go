// pkg/timetable/weekday.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timetable

import "github.com/mmp/adrcore/pkg/interval"

// WeekdayPattern is the 7-slot canonical normal form for a TimeTable
// whose every TimePattern is TypeWeekday: one IntervalSet<minute> per
// weekday (index 0=Monday .. 6=Sunday), each confined to [0,1440).
type WeekdayPattern struct {
	Days [7]interval.Set[int]
}

// FullDay is the [0,1440) interval spanning an entire day in minutes.
var FullDay = interval.Span[int]{Lo: 0, Hi: 1440}

func weekdayBits(mask uint8) []int {
	var days []int
	for d := 0; d < 7; d++ {
		if mask&(1<<uint(d)) != 0 {
			days = append(days, d)
		}
	}
	return days
}

// minutesSpan converts a TimePattern's [StartTime,EndTime) (seconds)
// into one or two minute-granularity Spans, splitting at midnight when
// the window wraps.
func minutesSpan(p TimePattern) []interval.Span[int] {
	start, end := p.StartTime/60, p.EndTime/60
	if p.EndTime > p.StartTime {
		return []interval.Span[int]{{Lo: start, Hi: end}}
	}
	return []interval.Span[int]{{Lo: start, Hi: 1440}, {Lo: 0, Hi: end}}
}

// ConvertWeekday attempts to convert a TimeTableElement into
// WeekdayPattern normal form, succeeding only when every constituent
// TimePattern is TypeWeekday (per spec §4.3). The fold applies each
// pattern's operator per matched weekday slot exactly as
// TimeTableElement.IsInside would evaluate it, just precomputed for
// all 1440 minutes of the day at once via interval-set algebra instead
// of per-minute evaluation.
func ConvertWeekday(e TimeTableElement) (WeekdayPattern, bool) {
	var wp WeekdayPattern
	for d := range wp.Days {
		wp.Days[d] = interval.Set[int]{}
	}
	for _, p := range e.Patterns {
		if p.Type != TypeWeekday {
			return WeekdayPattern{}, false
		}
		spans := minutesSpan(p)
		days := weekdayBits(p.WeekdayMask)
		if p.Operator == OpSet {
			// A set pattern resets every day, not just the ones it matches.
			for d := range wp.Days {
				wp.Days[d] = interval.Set[int]{}
			}
		}
		for _, d := range days {
			cur := wp.Days[d]
			switch p.Operator {
			case OpSet:
				cur = interval.New(spans...)
			case OpAdd:
				cur = cur.Union(interval.New(spans...))
			case OpSub:
				cur = cur.Difference(interval.New(spans...))
			}
			wp.Days[d] = cur
		}
	}
	return wp, true
}

// Equal reports whether two WeekdayPatterns describe identical
// per-day minute sets.
func (wp WeekdayPattern) Equal(o WeekdayPattern) bool {
	for d := 0; d < 7; d++ {
		if !wp.Days[d].Equal(o.Days[d]) {
			return false
		}
	}
	return true
}

// Invert complements every day's minute set within the full-day span.
func (wp WeekdayPattern) Invert() WeekdayPattern {
	var out WeekdayPattern
	for d := 0; d < 7; d++ {
		out.Days[d] = wp.Days[d].Complement(FullDay)
	}
	return out
}

// Union computes the per-day union of two WeekdayPatterns.
func (wp WeekdayPattern) Union(o WeekdayPattern) WeekdayPattern {
	var out WeekdayPattern
	for d := 0; d < 7; d++ {
		out.Days[d] = wp.Days[d].Union(o.Days[d])
	}
	return out
}

// Intersect computes the per-day intersection of two WeekdayPatterns.
func (wp WeekdayPattern) Intersect(o WeekdayPattern) WeekdayPattern {
	var out WeekdayPattern
	for d := 0; d < 7; d++ {
		out.Days[d] = wp.Days[d].Intersect(o.Days[d])
	}
	return out
}

// IsEmpty reports whether every day's minute set is empty (the
// pattern never matches).
func (wp WeekdayPattern) IsEmpty() bool {
	for d := 0; d < 7; d++ {
		if !wp.Days[d].IsEmpty() {
			return false
		}
	}
	return true
}
