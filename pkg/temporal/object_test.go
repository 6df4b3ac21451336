// pkg/temporal/object_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package temporal

import (
	"testing"

	"github.com/google/uuid"
)

func mkIdent(s string) TimeSlice {
	return TimeSlice{Payload: IdentPayload{Ident: s}}
}

func TestSliceAtSortedDisjoint(t *testing.T) {
	o := NewObject(uuid.New(), KindNavaid)
	a := mkIdent("A")
	a.Interval = TimeInterval{Start: 0, End: 100}
	b := mkIdent("B")
	b.Interval = TimeInterval{Start: 100, End: 200}
	o.AddTimeSlice(a)
	o.AddTimeSlice(b)

	if ts, ok := o.SliceAt(50); !ok || ts.Payload.(IdentPayload).Ident != "A" {
		t.Errorf("SliceAt(50) = %+v, %v; want A", ts, ok)
	}
	if ts, ok := o.SliceAt(100); !ok || ts.Payload.(IdentPayload).Ident != "B" {
		t.Errorf("SliceAt(100) = %+v, %v; want B", ts, ok)
	}
	if _, ok := o.SliceAt(200); ok {
		t.Errorf("SliceAt(200) found a slice; want none (open end)")
	}
}

func TestCleanTimeSlicesTruncatesOverlap(t *testing.T) {
	o := NewObject(uuid.New(), KindNavaid)
	a := mkIdent("A")
	a.Interval = TimeInterval{Start: 0, End: 150}
	b := mkIdent("B")
	b.Interval = TimeInterval{Start: 100, End: 200}
	o.AddTimeSlice(a)
	o.AddTimeSlice(b)

	if ts, ok := o.SliceAt(120); !ok || ts.Payload.(IdentPayload).Ident != "B" {
		t.Errorf("SliceAt(120) = %+v, %v; want B (A should be truncated to end=100)", ts, ok)
	}
	first, _ := o.ByIndex(0)
	if first.Interval.End != 100 {
		t.Errorf("first slice end = %d; want 100", first.Interval.End)
	}
}

func TestCleanTimeSlicesKeepsSnapshots(t *testing.T) {
	o := NewObject(uuid.New(), KindAirspace)
	snap := mkIdent("snap")
	snap.Interval = TimeInterval{Start: 50, End: 50}
	a := mkIdent("A")
	a.Interval = TimeInterval{Start: 0, End: 100}
	o.AddTimeSlice(snap)
	o.AddTimeSlice(a)

	if o.Len() != 2 {
		t.Fatalf("Len() = %d; want 2 (snapshot must survive cleaning)", o.Len())
	}
	snapShot, ok := o.ByIndex(1)
	if !ok || !snapShot.Interval.IsSnapshot() {
		t.Errorf("expected snapshot slice to be preserved as-is")
	}
}

func TestCleanTimeSlicesDropsCutoff(t *testing.T) {
	o := NewObject(uuid.New(), KindNavaid)
	old := mkIdent("old")
	old.Interval = TimeInterval{Start: 0, End: 50}
	o.AddTimeSlice(old)
	o.CleanTimeSlices(60)
	if o.Len() != 0 {
		t.Errorf("Len() = %d; want 0 after cutoff past every slice's end", o.Len())
	}
}

func TestBestOverlap(t *testing.T) {
	o := NewObject(uuid.New(), KindNavaid)
	a := mkIdent("A")
	a.Interval = TimeInterval{Start: 0, End: 100}
	b := mkIdent("B")
	b.Interval = TimeInterval{Start: 100, End: 300}
	o.AddTimeSlice(a)
	o.AddTimeSlice(b)

	ts, ok := o.BestOverlap(80, 250)
	if !ok || ts.Payload.(IdentPayload).Ident != "B" {
		t.Errorf("BestOverlap(80,250) = %+v, %v; want B (150s overlap vs A's 20s)", ts, ok)
	}

	if _, ok := o.BestOverlap(1000, 2000); ok {
		t.Errorf("BestOverlap with zero overlap everywhere should return false")
	}
}

func TestLinkEquality(t *testing.T) {
	id := uuid.New()
	l1 := NewLink(id)
	l2 := NewLink(id)
	o := NewObject(id, KindNavaid)
	l2.Cache(o)

	if !l1.Equal(l2) {
		t.Errorf("Links to the same UUID must be equal regardless of cache state")
	}
	if l1.IsNil() {
		t.Errorf("non-nil UUID Link reported as nil")
	}
	if !NilLink.IsNil() {
		t.Errorf("NilLink.IsNil() = false")
	}
}
