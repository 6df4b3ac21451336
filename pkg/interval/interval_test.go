// pkg/interval/interval_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package interval

import "testing"

func TestUnionMergesAdjacent(t *testing.T) {
	s := New(Span[int]{0, 10}, Span[int]{10, 20})
	if len(s.Spans()) != 1 || s.Spans()[0] != (Span[int]{0, 20}) {
		t.Errorf("adjacent spans should merge into one; got %+v", s.Spans())
	}
}

func TestIntersect(t *testing.T) {
	a := New(Span[int]{0, 100}, Span[int]{200, 300})
	b := New(Span[int]{50, 250})
	got := a.Intersect(b)
	want := New(Span[int]{50, 100}, Span[int]{200, 250})
	if !got.Equal(want) {
		t.Errorf("Intersect() = %+v; want %+v", got.Spans(), want.Spans())
	}
}

func TestComplement(t *testing.T) {
	a := New(Span[int]{10, 20})
	got := a.Complement(Span[int]{0, 30})
	want := New(Span[int]{0, 10}, Span[int]{20, 30})
	if !got.Equal(want) {
		t.Errorf("Complement() = %+v; want %+v", got.Spans(), want.Spans())
	}
}

func TestDifference(t *testing.T) {
	a := New(Span[int]{0, 100})
	b := New(Span[int]{40, 60})
	got := a.Difference(b)
	want := New(Span[int]{0, 40}, Span[int]{60, 100})
	if !got.Equal(want) {
		t.Errorf("Difference() = %+v; want %+v", got.Spans(), want.Spans())
	}
}

func TestContains(t *testing.T) {
	s := New(Span[int]{0, 10}, Span[int]{20, 30})
	for _, tc := range []struct {
		v    int
		want bool
	}{{5, true}, {10, false}, {15, false}, {25, true}, {30, false}} {
		if got := s.Contains(tc.v); got != tc.want {
			t.Errorf("Contains(%d) = %v; want %v", tc.v, got, tc.want)
		}
	}
}

func TestUnionIdempotent(t *testing.T) {
	a := New(Span[int]{0, 10})
	if u := a.Union(a); !u.Equal(a) {
		t.Errorf("a | a != a: %+v vs %+v", u.Spans(), a.Spans())
	}
}
