// pkg/geom/makevalid.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geom

// MakeValid repairs a self-intersecting ring by splitting it at each
// self-intersection into simple loops and keeping the loop(s) enclosing
// the larger area, discarding degenerate "bowtie" slivers. It is the
// module's stand-in for a GEOS make-valid call: no geometry-validation
// binding exists anywhere in the corpus this module draws on, so
// self-intersection repair is built from the same line-intersection
// primitives the teacher's own polygon code uses (LineLineIntersect),
// rather than importing an unavailable library.
func MakeValid(poly PolygonHole) PolygonHole {
	return PolygonHole{
		Exterior: makeValidRing(poly.Exterior),
		Holes:    mapRings(poly.Holes, makeValidRing),
	}
}

func mapRings(rs []Ring, f func(Ring) Ring) []Ring {
	out := make([]Ring, len(rs))
	for i, r := range rs {
		out[i] = f(r)
	}
	return out
}

// makeValidRing repeatedly finds a pair of non-adjacent edges that
// properly cross and splits the ring there, keeping the larger-area
// loop, until no self-intersection remains.
func makeValidRing(r Ring) Ring {
	const maxIterations = 64
	for iter := 0; iter < maxIterations; iter++ {
		i, j, pt, found := firstSelfIntersection(r)
		if !found {
			return r
		}
		r = splitAndKeepLarger(r, i, j, pt)
	}
	return r
}

func firstSelfIntersection(r Ring) (i, j int, pt Point, found bool) {
	n := len(r)
	for a := 0; a < n; a++ {
		a0, a1 := r[a], r[(a+1)%n]
		for b := a + 2; b < n; b++ {
			if a == 0 && b == n-1 {
				continue // adjacent wrap-around edge
			}
			b0, b1 := r[b], r[(b+1)%n]
			if p, ok := SegmentSegmentIntersect(a0, a1, b0, b1); ok {
				return a, b, p, true
			}
		}
	}
	return 0, 0, Point{}, false
}

// splitAndKeepLarger cuts the ring at the intersection of edge i
// (r[i]->r[i+1]) and edge j (r[j]->r[j+1]), producing two closed loops
// that share vertex pt, and returns whichever has the larger enclosed
// area.
func splitAndKeepLarger(r Ring, i, j int, pt Point) Ring {
	n := len(r)

	loopA := make(Ring, 0, j-i+2)
	loopA = append(loopA, pt)
	for k := i + 1; k <= j; k++ {
		loopA = append(loopA, r[k%n])
	}

	loopB := make(Ring, 0, n-(j-i)+2)
	loopB = append(loopB, pt)
	for k := j + 1; k <= i+n; k++ {
		loopB = append(loopB, r[k%n])
	}

	if absArea(loopA) >= absArea(loopB) {
		return loopA
	}
	return loopB
}

func absArea(r Ring) float64 {
	a := signedArea(r)
	if a < 0 {
		return -a
	}
	return a
}

// Union merges the polygons of a and b into one MultiPolygonHole.
// Containment tests (ClassifyMultiPolygon) already treat a
// MultiPolygonHole as the union of its members' interiors, so no
// boundary-merging is needed for correctness here: concatenating the
// (already make-valid'd) polygon lists is sufficient. Spec.md's
// "validation before each union" step is realized by calling MakeValid
// on each input polygon before it is appended.
func Union(a, b MultiPolygonHole) MultiPolygonHole {
	out := make(MultiPolygonHole, 0, len(a)+len(b))
	for _, p := range a {
		out = append(out, MakeValid(p))
	}
	for _, p := range b {
		out = append(out, MakeValid(p))
	}
	return out
}
