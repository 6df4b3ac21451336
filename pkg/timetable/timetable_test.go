// pkg/timetable/timetable_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timetable

import "testing"

func weekdayPattern(mask uint8, startH, endH int) TimePattern {
	return TimePattern{
		Operator:    OpSet,
		Type:        TypeWeekday,
		WeekdayMask: mask,
		StartTime:   startH * 3600,
		EndTime:     endH * 3600,
	}
}

func evalAt(wday, hour int) *TimeTableEval {
	return &TimeTableEval{WDay: wday, DaySeconds: hour * 3600}
}

func TestTimePatternWeekdayWindow(t *testing.T) {
	p := weekdayPattern(Monday|Tuesday, 6, 22)
	if !p.IsInside(evalAt(0, 10)) {
		t.Errorf("Monday 10:00 should be inside [6,22)")
	}
	if p.IsInside(evalAt(2, 10)) {
		t.Errorf("Wednesday should not match a Mon/Tue mask")
	}
	if p.IsInside(evalAt(0, 23)) {
		t.Errorf("Monday 23:00 should be outside [6,22)")
	}
}

func TestTimePatternWrapMidnight(t *testing.T) {
	p := weekdayPattern(FullWeekMask, 22, 6)
	if !p.IsInside(evalAt(3, 23)) {
		t.Errorf("23:00 should be inside a 22:00-06:00 wrap window")
	}
	if !p.IsInside(evalAt(3, 2)) {
		t.Errorf("02:00 should be inside a 22:00-06:00 wrap window")
	}
	if p.IsInside(evalAt(3, 12)) {
		t.Errorf("noon should be outside a 22:00-06:00 wrap window")
	}
}

func TestElementFoldSubExcludes(t *testing.T) {
	e := TimeTableElement{
		Start: 0, End: 100,
		Patterns: []TimePattern{
			weekdayPattern(FullWeekMask, 0, 24),
			{Operator: OpSub, Type: TypeWeekday, WeekdayMask: Saturday | Sunday, StartTime: 0, EndTime: 24 * 3600},
		},
	}
	if !e.IsInside(evalAt(0, 10), 0, false) {
		t.Errorf("Monday should remain inside after subtracting weekends")
	}
	if e.IsInside(evalAt(5, 10), 0, false) {
		t.Errorf("Saturday should be excluded")
	}
}

func TestElementSimplifyDropsLeadingSub(t *testing.T) {
	e := TimeTableElement{
		Patterns: []TimePattern{
			{Operator: OpSub, Type: TypeWeekday, WeekdayMask: Monday, StartTime: 0, EndTime: 3600},
			weekdayPattern(Tuesday, 6, 20),
		},
	}
	simplified := e.Simplify()
	if len(simplified.Patterns) != 1 || simplified.Patterns[0].Operator != OpSet {
		t.Fatalf("expected leading sub dropped and survivor promoted to Set, got %+v", simplified.Patterns)
	}
}

func TestElementSimplifyLaterSetMasksEarlier(t *testing.T) {
	e := TimeTableElement{
		Patterns: []TimePattern{
			weekdayPattern(Monday, 6, 20),
			{Operator: OpSet, Type: TypeWeekday, WeekdayMask: Tuesday, StartTime: 6 * 3600, EndTime: 20 * 3600},
		},
	}
	simplified := e.Simplify()
	if len(simplified.Patterns) != 1 || simplified.Patterns[0].WeekdayMask != Tuesday {
		t.Fatalf("a later Set pattern should mask everything before it, got %+v", simplified.Patterns)
	}
}

func TestTimeTableOrAlwaysNeverIdentities(t *testing.T) {
	always := Always()
	never := Never()
	if !always.IsAlways() || always.IsNever() {
		t.Errorf("Always() should be always, not never")
	}
	if !never.IsNever() || never.IsAlways() {
		t.Errorf("Never() should be never, not always")
	}
	if !always.IsInside(evalAt(0, 0), 0, false) {
		t.Errorf("Always() should evaluate true everywhere")
	}
	if never.IsInside(evalAt(0, 0), 0, false) {
		t.Errorf("Never() should evaluate false everywhere")
	}
}

func TestTimeTableOrAndOrLaws(t *testing.T) {
	mon := TimeTableOr{Ands: []TimeTableAnd{{Tables: []TimeTable{{
		Elements: []TimeTableElementRef{{Element: TimeTableElement{Patterns: []TimePattern{weekdayPattern(Monday, 0, 24)}}}},
	}}}}}

	if !mon.And(mon).IsInside(evalAt(0, 10), 0, false) {
		t.Errorf("t & t should equal t")
	}
	if mon.And(mon.Invert()).IsInside(evalAt(0, 10), 0, false) {
		t.Errorf("t & ~t should be never")
	}
	if !mon.Or(mon.Invert()).IsInside(evalAt(0, 10), 0, false) {
		t.Errorf("t | ~t should be always")
	}
	if !mon.Or(mon.Invert()).IsInside(evalAt(2, 10), 0, false) {
		t.Errorf("t | ~t should be always regardless of day")
	}
}

func TestTimeTableOrInvertInvertRoundtrip(t *testing.T) {
	mon := TimeTableOr{Ands: []TimeTableAnd{{Tables: []TimeTable{{
		Elements: []TimeTableElementRef{{Element: TimeTableElement{Patterns: []TimePattern{weekdayPattern(Monday, 6, 20)}}}},
	}}}}}

	roundtrip := mon.Invert().Invert()
	for wday := 0; wday < 7; wday++ {
		for _, hour := range []int{0, 6, 10, 20, 23} {
			ev := evalAt(wday, hour)
			if roundtrip.IsInside(ev, 0, false) != mon.IsInside(ev, 0, false) {
				t.Errorf("double-invert mismatch at wday=%d hour=%d", wday, hour)
			}
		}
	}
}

func TestConvertWeekdaySucceedsAndFails(t *testing.T) {
	e := TimeTableElement{Patterns: []TimePattern{weekdayPattern(Monday|Tuesday, 6, 20)}}
	wp, ok := ConvertWeekday(e)
	if !ok {
		t.Fatalf("a pure-weekday element should convert")
	}
	if wp.Days[0].IsEmpty() || wp.Days[2].IsEmpty() == false {
		t.Errorf("Monday slot should be populated, Wednesday slot empty")
	}

	holiday := TimeTableElement{Patterns: []TimePattern{{Operator: OpSet, Type: TypeHoliday, StartTime: 0, EndTime: 3600}}}
	if _, ok := ConvertWeekday(holiday); ok {
		t.Errorf("an element containing a non-weekday pattern should not convert")
	}
}

func TestWeekdayPatternInvertUnionIntersect(t *testing.T) {
	e := TimeTableElement{Patterns: []TimePattern{weekdayPattern(Monday, 6, 20)}}
	wp, _ := ConvertWeekday(e)
	inv := wp.Invert()
	full := wp.Days[0].Union(inv.Days[0])
	if !full.Contains(0) || !full.Contains(1439) {
		t.Errorf("a set unioned with its complement should cover the full day")
	}
	if !wp.Days[0].Intersect(inv.Days[0]).IsEmpty() {
		t.Errorf("a set intersected with its complement should be empty")
	}
}
