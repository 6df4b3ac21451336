// pkg/timetable/pattern.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timetable

// Op tags how a pattern or leaf combines with the accumulator it folds
// into: set resets it, add ORs it in, sub AND-NOTs it out.
type Op int

const (
	OpSet Op = iota
	OpAdd
	OpSub
)

// DateType selects which calendar predicate a TimePattern tests.
type DateType int

const (
	TypeWeekday DateType = iota
	TypeHoliday
	TypeBusyFriday
	TypeBeforeHoliday
	TypeAfterHoliday
	TypeAlways
)

// Weekday bit positions within WeekdayMask, Monday-first to match the
// spec's 7-slot weekday normal form ordering.
const (
	Monday = 1 << iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const FullWeekMask = Monday | Tuesday | Wednesday | Thursday | Friday | Saturday | Sunday

// TimePattern is the algebra's leaf: a daily time-of-day window
// combined with a calendar predicate.
type TimePattern struct {
	Operator    Op
	Type        DateType
	WeekdayMask uint8 // valid only when Type == TypeWeekday
	StartTime   int   // seconds since midnight, [0, 86400)
	EndTime     int   // seconds since midnight; EndTime <= StartTime wraps past midnight
}

// matchesTimeOfDay reports whether tte's time-of-day falls in
// [StartTime, EndTime) modulo 24h, with end-wrap when EndTime <=
// StartTime.
func (p TimePattern) matchesTimeOfDay(tte *TimeTableEval) bool {
	t := tte.DaySeconds
	if p.EndTime > p.StartTime {
		return t >= p.StartTime && t < p.EndTime
	}
	// Wraps past midnight: inside iff at or after start, or before end.
	return t >= p.StartTime || t < p.EndTime
}

func (p TimePattern) matchesDate(tte *TimeTableEval) bool {
	switch p.Type {
	case TypeWeekday:
		if tte.WDay < 0 || tte.WDay > 6 {
			return false
		}
		return p.WeekdayMask&(1<<uint(tte.WDay)) != 0
	case TypeHoliday:
		return tte.IsHoliday()
	case TypeBusyFriday:
		return tte.IsBusyFriday()
	case TypeBeforeHoliday:
		return tte.IsBeforeHoliday()
	case TypeAfterHoliday:
		return tte.IsAfterHoliday()
	case TypeAlways:
		return true
	default:
		return false
	}
}

// IsInside reports whether tte falls within this pattern's daily
// window and satisfies its date predicate.
func (p TimePattern) IsInside(tte *TimeTableEval) bool {
	return p.matchesTimeOfDay(tte) && p.matchesDate(tte)
}

// IsNever reports whether p can never match: a weekday pattern with an
// empty mask is the only structurally-never leaf (StartTime ==
// EndTime denotes the full day, by the same modulo-24h convention
// matchesTimeOfDay uses, not an empty window).
func (p TimePattern) IsNever() bool {
	return p.Type == TypeWeekday && p.WeekdayMask == 0
}
