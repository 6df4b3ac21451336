// pkg/geom/geom.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package geom implements the polygon-with-holes geometry the airspace
// containment engine is built on: winding-number point containment,
// strict segment/polygon intersection, bounding boxes, and the
// self-intersection repair the spec calls "GEOS make-valid".
//
// Points are plain [2]float64 (lon, lat); the extra precision relative
// to the teacher's float32 Point2LL matters here since airspace
// polygons span a few hundredths of a degree at boundary vertices.
package geom

import "math"

// Point is a (lon, lat) pair in decimal degrees.
type Point = [2]float64

// Ring is a closed polygon boundary; the last vertex does not repeat
// the first, matching the teacher's PointInPolygon convention.
type Ring []Point

// PolygonHole is one exterior ring plus zero or more hole rings. After
// Recompute the exterior is wound CCW and holes are wound CW.
type PolygonHole struct {
	Exterior Ring
	Holes    []Ring
}

// MultiPolygonHole is a sequence of PolygonHoles; the union of their
// interiors (with holes subtracted) is the represented area.
type MultiPolygonHole []PolygonHole

// Extent is a 2D bounding box with opposite min/max corners, grounded
// on the teacher's Extent2D.
type Extent struct {
	P0, P1 Point
}

// EmptyExtent returns an Extent describing no points at all.
func EmptyExtent() Extent {
	return Extent{P0: Point{1e30, 1e30}, P1: Point{-1e30, -1e30}}
}

func (e Extent) Union(p Point) Extent {
	e.P0[0] = math.Min(e.P0[0], p[0])
	e.P0[1] = math.Min(e.P0[1], p[1])
	e.P1[0] = math.Max(e.P1[0], p[0])
	e.P1[1] = math.Max(e.P1[1], p[1])
	return e
}

func (e Extent) UnionExtent(o Extent) Extent {
	return e.Union(o.P0).Union(o.P1)
}

func (e Extent) Inside(p Point) bool {
	return p[0] >= e.P0[0] && p[0] <= e.P1[0] && p[1] >= e.P0[1] && p[1] <= e.P1[1]
}

// Overlaps reports whether a and b share any area.
func Overlaps(a, b Extent) bool {
	x := a.P1[0] >= b.P0[0] && a.P0[0] <= b.P1[0]
	y := a.P1[1] >= b.P0[1] && a.P0[1] <= b.P1[1]
	return x && y
}

func ExtentFromRing(r Ring) Extent {
	e := EmptyExtent()
	for _, p := range r {
		e = e.Union(p)
	}
	return e
}

func ExtentFromPolygon(p PolygonHole) Extent {
	return ExtentFromRing(p.Exterior)
}

func ExtentFromMultiPolygon(mp MultiPolygonHole) Extent {
	e := EmptyExtent()
	for _, p := range mp {
		e = e.UnionExtent(ExtentFromPolygon(p))
	}
	return e
}

///////////////////////////////////////////////////////////////////////////
// Segment intersection, grounded on pkg/math/geom.go LineLineIntersect /
// SegmentSegmentIntersect.

// LineLineIntersect returns the intersection of the infinite lines
// through (p1,p2) and (p3,p4); ok is false for parallel or near-parallel
// lines.
func LineLineIntersect(p1, p2, p3, p4 Point) (pt Point, ok bool) {
	d12 := Point{p1[0] - p2[0], p1[1] - p2[1]}
	d34 := Point{p3[0] - p4[0], p3[1] - p4[1]}
	denom := d12[0]*d34[1] - d12[1]*d34[0]
	if math.Abs(denom) < 1e-12 {
		return Point{}, false
	}
	numx := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[0]-p4[0]) - (p1[0]-p2[0])*(p3[0]*p4[1]-p3[1]*p4[0])
	numy := (p1[0]*p2[1]-p1[1]*p2[0])*(p3[1]-p4[1]) - (p1[1]-p2[1])*(p3[0]*p4[1]-p3[1]*p4[0])
	return Point{numx / denom, numy / denom}, true
}

// SegmentSegmentIntersect returns the intersection of segments (p1,p2)
// and (p3,p4), requiring the intersection to lie within both segments'
// bounding boxes.
func SegmentSegmentIntersect(p1, p2, p3, p4 Point) (Point, bool) {
	p, ok := LineLineIntersect(p1, p2, p3, p4)
	if !ok {
		return Point{}, false
	}
	b0, b1 := ExtentFromRing(Ring{p1, p2}), ExtentFromRing(Ring{p3, p4})
	return p, b0.Inside(p) && b1.Inside(p)
}

// segmentsProperlyCross reports whether segment (a0,a1) crosses segment
// (b0,b1) transversally — touching at a shared endpoint or lying along
// the same line does not count as a crossing. This realizes the spec's
// "strict" segment/polygon intersection: touching a vertex without
// crossing the boundary is not an intersection.
func segmentsProperlyCross(a0, a1, b0, b1 Point) bool {
	d1 := cross(sub(b1, b0), sub(a0, b0))
	d2 := cross(sub(b1, b0), sub(a1, b0))
	d3 := cross(sub(a1, a0), sub(b0, a0))
	d4 := cross(sub(a1, a0), sub(b1, a0))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func sub(a, b Point) Point   { return Point{a[0] - b[0], a[1] - b[1]} }
func cross(a, b Point) float64 { return a[0]*b[1] - a[1]*b[0] }

// SegmentIntersectsRing reports whether segment (a,b) strictly crosses
// any edge of ring r.
func SegmentIntersectsRing(a, b Point, r Ring) bool {
	n := len(r)
	for i := 0; i < n; i++ {
		if segmentsProperlyCross(a, b, r[i], r[(i+1)%n]) {
			return true
		}
	}
	return false
}

// SegmentIntersectsPolygon reports whether segment (a,b) strictly
// crosses the exterior ring or any hole ring of p.
func SegmentIntersectsPolygon(a, b Point, p PolygonHole) bool {
	if SegmentIntersectsRing(a, b, p.Exterior) {
		return true
	}
	for _, h := range p.Holes {
		if SegmentIntersectsRing(a, b, h) {
			return true
		}
	}
	return false
}

// SegmentIntersectsMultiPolygon reports whether segment (a,b) strictly
// crosses the boundary of any component polygon of mp.
func SegmentIntersectsMultiPolygon(a, b Point, mp MultiPolygonHole) bool {
	for _, p := range mp {
		if SegmentIntersectsPolygon(a, b, p) {
			return true
		}
	}
	return false
}

///////////////////////////////////////////////////////////////////////////
// Winding number containment.
//
// The teacher's PointInPolygon (pkg/math/geom.go) is an even-odd ray
// cast; composed multi-polygons built by repeated `union` can overlap
// themselves, where even-odd and winding-number containment diverge.
// windingNumber accumulates signed crossings of a ray cast in +x from p
// and returns the total winding count (nonzero means inside), the
// standard generalization that handles self-overlapping rings correctly.

// VertexClass is the result of testing a point against a ring: it may
// lie strictly inside, strictly outside, or exactly on the boundary.
type VertexClass int

const (
	Outside VertexClass = iota
	Inside
	OnBoundary
)

func windingNumber(p Point, r Ring) (wn int, onBoundary bool) {
	n := len(r)
	for i := 0; i < n; i++ {
		v0, v1 := r[i], r[(i+1)%n]
		if onSegment(p, v0, v1) {
			return 0, true
		}
		if v0[1] <= p[1] {
			if v1[1] > p[1] && cross(sub(v1, v0), sub(p, v0)) > 0 {
				wn++
			}
		} else {
			if v1[1] <= p[1] && cross(sub(v1, v0), sub(p, v0)) < 0 {
				wn--
			}
		}
	}
	return wn, false
}

func onSegment(p, a, b Point) bool {
	c := cross(sub(b, a), sub(p, a))
	if math.Abs(c) > 1e-9 {
		return false
	}
	d := dot(sub(p, a), sub(b, a))
	if d < 0 {
		return false
	}
	return d <= dot(sub(b, a), sub(b, a))
}

func dot(a, b Point) float64 { return a[0]*b[0] + a[1]*b[1] }

// ClassifyRing classifies p against the single ring r using the winding
// number rule.
func ClassifyRing(p Point, r Ring) VertexClass {
	wn, border := windingNumber(p, r)
	if border {
		return OnBoundary
	}
	if wn != 0 {
		return Inside
	}
	return Outside
}

// ClassifyPolygon classifies p against a polygon-with-holes: inside the
// exterior and not inside (nor on) any hole is Inside; on either the
// exterior or a hole boundary is OnBoundary.
func ClassifyPolygon(p Point, poly PolygonHole) VertexClass {
	switch ClassifyRing(p, poly.Exterior) {
	case Outside:
		return Outside
	case OnBoundary:
		return OnBoundary
	}
	for _, h := range poly.Holes {
		switch ClassifyRing(p, h) {
		case Inside:
			return Outside
		case OnBoundary:
			return OnBoundary
		}
	}
	return Inside
}

// ClassifyMultiPolygon classifies p against the union of mp's polygons:
// Inside if inside any component, OnBoundary if on the boundary of any
// component not already Inside another, else Outside.
func ClassifyMultiPolygon(p Point, mp MultiPolygonHole) VertexClass {
	best := Outside
	for _, poly := range mp {
		switch ClassifyPolygon(p, poly) {
		case Inside:
			return Inside
		case OnBoundary:
			best = OnBoundary
		}
	}
	return best
}
