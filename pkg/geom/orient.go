// pkg/geom/orient.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package geom

// signedArea returns twice the signed area of r (the shoelace sum);
// positive for CCW winding, negative for CW.
func signedArea(r Ring) float64 {
	var a float64
	n := len(r)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		a += r[i][0]*r[j][1] - r[j][0]*r[i][1]
	}
	return a
}

// IsCCW reports whether r is wound counter-clockwise.
func IsCCW(r Ring) bool {
	return signedArea(r) > 0
}

// Reverse returns r with its vertex order reversed. ReindexAfterReverse
// below computes the corresponding vertex-index remap.
func Reverse(r Ring) Ring {
	out := make(Ring, len(r))
	n := len(r)
	for i, p := range r {
		out[n-1-i] = p
	}
	return out
}

// NormalizeOrientation rewinds p's exterior CCW and its holes CW,
// reporting which rings were reversed (exterior at index -1, hole i at
// index i) so callers can reindex any PointLinks that reference them.
func NormalizeOrientation(p *PolygonHole) (reversed []int) {
	if !IsCCW(p.Exterior) {
		p.Exterior = Reverse(p.Exterior)
		reversed = append(reversed, -1)
	}
	for i := range p.Holes {
		if IsCCW(p.Holes[i]) {
			p.Holes[i] = Reverse(p.Holes[i])
			reversed = append(reversed, i)
		}
	}
	return reversed
}

// ReindexAfterReverse maps a vertex index valid before a ring of the
// given size was reversed to its index after reversal.
func ReindexAfterReverse(size, oldIndex int) int {
	return size - 1 - oldIndex
}
