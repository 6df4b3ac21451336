// pkg/geom/geom_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geom

import "testing"

func square(x0, y0, x1, y1 float64) Ring {
	return Ring{{x0, y0}, {x0, y1}, {x1, y1}, {x1, y0}}
}

func TestClassifyRingInsideOutside(t *testing.T) {
	r := square(0, 0, 2, 2)
	if ClassifyRing(Point{1, 1}, r) != Inside {
		t.Errorf("(1,1) should be inside")
	}
	if ClassifyRing(Point{3, 3}, r) != Outside {
		t.Errorf("(3,3) should be outside")
	}
}

func TestClassifyRingBoundary(t *testing.T) {
	r := square(0, 0, 2, 2)
	if ClassifyRing(Point{0, 1}, r) != OnBoundary {
		t.Errorf("(0,1) lies on an edge and should be OnBoundary")
	}
	if ClassifyRing(Point{0, 0}, r) != OnBoundary {
		t.Errorf("(0,0) is a vertex and should be OnBoundary")
	}
}

func TestClassifyPolygonWithHole(t *testing.T) {
	poly := PolygonHole{
		Exterior: square(0, 0, 10, 10),
		Holes:    []Ring{square(4, 4, 6, 6)},
	}
	if ClassifyPolygon(Point{1, 1}, poly) != Inside {
		t.Errorf("(1,1) should be inside the exterior, outside the hole")
	}
	if ClassifyPolygon(Point{5, 5}, poly) != Outside {
		t.Errorf("(5,5) is inside the hole and should read as outside")
	}
}

func TestClassifyMultiPolygonUnion(t *testing.T) {
	mp := MultiPolygonHole{
		{Exterior: square(0, 0, 2, 2)},
		{Exterior: square(5, 5, 7, 7)},
	}
	if ClassifyMultiPolygon(Point{1, 1}, mp) != Inside {
		t.Errorf("point in first component should be inside the union")
	}
	if ClassifyMultiPolygon(Point{6, 6}, mp) != Inside {
		t.Errorf("point in second component should be inside the union")
	}
	if ClassifyMultiPolygon(Point{10, 10}, mp) != Outside {
		t.Errorf("point in neither component should be outside")
	}
}

func TestSegmentIntersectsRingStrict(t *testing.T) {
	r := square(0, 0, 2, 2)
	// Crosses the boundary transversally.
	if !SegmentIntersectsRing(Point{-1, 1}, Point{3, 1}, r) {
		t.Errorf("segment through the square should strictly intersect the ring")
	}
	// Touches only at a shared vertex: not a strict crossing.
	if SegmentIntersectsRing(Point{0, 0}, Point{-1, -1}, r) {
		t.Errorf("segment touching only at a vertex should not count as a strict intersection")
	}
	// Entirely outside.
	if SegmentIntersectsRing(Point{3, 3}, Point{4, 4}, r) {
		t.Errorf("segment outside the ring should not intersect")
	}
}

func TestIsCCWAndReverse(t *testing.T) {
	cw := Ring{{0, 0}, {0, 2}, {2, 2}, {2, 0}}
	if IsCCW(cw) {
		t.Fatalf("test fixture should be CW by this shoelace convention")
	}
	rev := Reverse(cw)
	if !IsCCW(rev) {
		t.Errorf("reversing a CW ring should produce a CCW ring")
	}
}

func TestNormalizeOrientation(t *testing.T) {
	p := PolygonHole{
		Exterior: Ring{{0, 0}, {0, 2}, {2, 2}, {2, 0}},             // CW
		Holes:    []Ring{{{1, 1}, {1.5, 1}, {1.5, 1.5}, {1, 1.5}}}, // CCW
	}
	reversed := NormalizeOrientation(&p)
	if !IsCCW(p.Exterior) {
		t.Errorf("exterior should be CCW after normalization")
	}
	if IsCCW(p.Holes[0]) {
		t.Errorf("hole should be CW after normalization")
	}
	if len(reversed) != 2 {
		t.Errorf("expected both exterior and hole to be reported reversed, got %v", reversed)
	}
}

func TestMakeValidRemovesBowtie(t *testing.T) {
	// A figure-eight / bowtie: edges (0,0)-(2,2) and (2,0)-(0,2) cross
	// at the center, so the ring as given is self-intersecting.
	bowtie := Ring{{0, 0}, {2, 0}, {0, 2}, {2, 2}}
	fixed := MakeValid(PolygonHole{Exterior: bowtie})
	if _, _, _, found := firstSelfIntersection(fixed.Exterior); found {
		t.Errorf("MakeValid should leave no self-intersection, got %v", fixed.Exterior)
	}
}

func TestUnionConcatenatesAndValidates(t *testing.T) {
	a := MultiPolygonHole{{Exterior: square(0, 0, 2, 2)}}
	b := MultiPolygonHole{{Exterior: square(5, 5, 7, 7)}}
	u := Union(a, b)
	if len(u) != 2 {
		t.Fatalf("Union of one-polygon multipolygons should have 2 components, got %d", len(u))
	}
}
