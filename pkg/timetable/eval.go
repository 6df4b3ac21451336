// pkg/timetable/eval.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package timetable implements the three-level boolean timetable
// algebra (TimeTableOr of TimeTableAnd of TimeTable of TimeTableElement
// of TimePattern), weekday-pattern normal form, and special-date
// (holiday) evaluation.
package timetable

import "github.com/mmp/adrcore/pkg/geom"

// SpecialDateSource answers the holiday-adjacent predicates a
// TimeTableEval needs but cannot compute itself: whether a given
// civil date, as observed from a point, is a holiday of the given
// authority/type, or the business-Friday-before-a-holiday rule. It is
// satisfied by the authority/SpecialDate catalogue outside this
// package (the temporal object store), never by the algebra itself.
type SpecialDateSource interface {
	IsHoliday(year, month, day int, point geom.Point) bool
	IsBusyFriday(year, month, day int, point geom.Point) bool
	IsBeforeHoliday(year, month, day int, point geom.Point) bool
	IsAfterHoliday(year, month, day int, point geom.Point) bool
}

// TimeTableEval is the environment a timetable is evaluated against:
// a moment in time, a geographic point (for authority-boundary holiday
// lookups), and lazily-evaluated special-date flags memoized per call
// since SpecialDateSource lookups may consult the containment engine.
type TimeTableEval struct {
	Year, Month, MDay, WDay int // WDay: 0=Monday .. 6=Sunday
	DaySeconds              int // seconds since local midnight, [0, 86400)
	Point                   geom.Point
	Special                 SpecialDateSource

	holiday, busyFriday, beforeHoliday, afterHoliday *bool
}

func (e *TimeTableEval) IsHoliday() bool {
	if e.holiday == nil {
		v := e.Special != nil && e.Special.IsHoliday(e.Year, e.Month, e.MDay, e.Point)
		e.holiday = &v
	}
	return *e.holiday
}

func (e *TimeTableEval) IsBusyFriday() bool {
	if e.busyFriday == nil {
		v := e.Special != nil && e.Special.IsBusyFriday(e.Year, e.Month, e.MDay, e.Point)
		e.busyFriday = &v
	}
	return *e.busyFriday
}

func (e *TimeTableEval) IsBeforeHoliday() bool {
	if e.beforeHoliday == nil {
		v := e.Special != nil && e.Special.IsBeforeHoliday(e.Year, e.Month, e.MDay, e.Point)
		e.beforeHoliday = &v
	}
	return *e.beforeHoliday
}

func (e *TimeTableEval) IsAfterHoliday() bool {
	if e.afterHoliday == nil {
		v := e.Special != nil && e.Special.IsAfterHoliday(e.Year, e.Month, e.MDay, e.Point)
		e.afterHoliday = &v
	}
	return *e.afterHoliday
}
