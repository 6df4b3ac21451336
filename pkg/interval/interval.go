// pkg/interval/interval.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package interval implements IntervalSet, a finite union of half-open
// intervals over an ordered integer domain, closed under the set
// algebra (union, intersection, complement, difference) that AltRange
// and the weekday-pattern timetable normal form are both built from.
package interval

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// Span is a single half-open interval [Lo, Hi).
type Span[T constraints.Integer] struct {
	Lo, Hi T
}

func (s Span[T]) Empty() bool { return s.Hi <= s.Lo }

func (s Span[T]) Contains(v T) bool { return v >= s.Lo && v < s.Hi }

func (s Span[T]) Overlaps(o Span[T]) bool { return s.Lo < o.Hi && o.Lo < s.Hi }

// adjacent reports whether s and o touch or overlap, so that merging
// them produces no gap.
func (s Span[T]) adjacent(o Span[T]) bool { return s.Lo <= o.Hi && o.Lo <= s.Hi }

// Set is a canonical IntervalSet: disjoint, non-adjacent, sorted spans.
type Set[T constraints.Integer] struct {
	spans []Span[T]
}

// New builds a canonical Set from arbitrary (possibly overlapping,
// unsorted) spans.
func New[T constraints.Integer](spans ...Span[T]) Set[T] {
	var s Set[T]
	for _, sp := range spans {
		if !sp.Empty() {
			s.spans = append(s.spans, sp)
		}
	}
	s.normalize()
	return s
}

func (s *Set[T]) normalize() {
	if len(s.spans) == 0 {
		return
	}
	sort.Slice(s.spans, func(i, j int) bool { return s.spans[i].Lo < s.spans[j].Lo })
	out := s.spans[:1]
	for _, sp := range s.spans[1:] {
		last := &out[len(out)-1]
		if sp.adjacent(*last) {
			if sp.Hi > last.Hi {
				last.Hi = sp.Hi
			}
		} else {
			out = append(out, sp)
		}
	}
	s.spans = out
}

// IsEmpty reports whether the set contains no values.
func (s Set[T]) IsEmpty() bool { return len(s.spans) == 0 }

// Spans returns the canonical spans, sorted and disjoint.
func (s Set[T]) Spans() []Span[T] {
	return s.spans
}

// Contains reports whether v is a member of the set.
func (s Set[T]) Contains(v T) bool {
	// Binary search over Lo since spans are sorted and disjoint.
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].Hi > v })
	return i < len(s.spans) && s.spans[i].Lo <= v
}

// Equal reports whether s and o have identical canonical spans.
func (s Set[T]) Equal(o Set[T]) bool {
	if len(s.spans) != len(o.spans) {
		return false
	}
	for i := range s.spans {
		if s.spans[i] != o.spans[i] {
			return false
		}
	}
	return true
}

// Union returns the union of s and o.
func (s Set[T]) Union(o Set[T]) Set[T] {
	merged := make([]Span[T], 0, len(s.spans)+len(o.spans))
	merged = append(merged, s.spans...)
	merged = append(merged, o.spans...)
	return New(merged...)
}

// Add returns s with sp merged in.
func (s Set[T]) Add(sp Span[T]) Set[T] {
	return New(append(append([]Span[T]{}, s.spans...), sp)...)
}

// Intersect returns the intersection of s and o, via a merge-sweep over
// the two disjoint, sorted span lists.
func (s Set[T]) Intersect(o Set[T]) Set[T] {
	var out []Span[T]
	i, j := 0, 0
	for i < len(s.spans) && j < len(o.spans) {
		a, b := s.spans[i], o.spans[j]
		lo := a.Lo
		if b.Lo > lo {
			lo = b.Lo
		}
		hi := a.Hi
		if b.Hi < hi {
			hi = b.Hi
		}
		if lo < hi {
			out = append(out, Span[T]{Lo: lo, Hi: hi})
		}
		if a.Hi < b.Hi {
			i++
		} else {
			j++
		}
	}
	return New(out...)
}

// Complement returns the complement of s within [full.Lo, full.Hi).
func (s Set[T]) Complement(full Span[T]) Set[T] {
	var out []Span[T]
	cur := full.Lo
	for _, sp := range s.spans {
		lo, hi := sp.Lo, sp.Hi
		if lo < full.Lo {
			lo = full.Lo
		}
		if hi > full.Hi {
			hi = full.Hi
		}
		if lo >= hi {
			continue
		}
		if lo > cur {
			out = append(out, Span[T]{Lo: cur, Hi: lo})
		}
		if hi > cur {
			cur = hi
		}
	}
	if cur < full.Hi {
		out = append(out, Span[T]{Lo: cur, Hi: full.Hi})
	}
	return New(out...)
}

// Difference returns s minus o (s intersected with o's complement
// within a domain wide enough to cover both sets).
func (s Set[T]) Difference(o Set[T]) Set[T] {
	if o.IsEmpty() || s.IsEmpty() {
		return s
	}
	lo, hi := s.spans[0].Lo, s.spans[len(s.spans)-1].Hi
	if o.spans[0].Lo < lo {
		lo = o.spans[0].Lo
	}
	if o.spans[len(o.spans)-1].Hi > hi {
		hi = o.spans[len(o.spans)-1].Hi
	}
	return s.Intersect(o.Complement(Span[T]{Lo: lo, Hi: hi}))
}
