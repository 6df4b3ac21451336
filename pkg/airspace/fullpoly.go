// pkg/airspace/fullpoly.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"github.com/mmp/adrcore/pkg/geom"
	"github.com/mmp/adrcore/pkg/temporal"
)

// GetFullPoly composes each component's polygon (and, for components
// that defer to a sub-airspace, that sub-airspace's own full polygon
// at instant t) by the operator chain into the effective
// MultiPolygonHole. Every polygon is passed through geom.MakeValid
// before being folded in by Union, absorbing self-intersections from
// source data the way spec.md's "GEOS make-valid before each union"
// step requires.
func (s *AirspaceTimeSlice) GetFullPoly(instant temporal.TimeInstant, loader temporal.LinkLoader) geom.MultiPolygonHole {
	var acc geom.MultiPolygonHole
	for _, c := range s.Components {
		var contribution geom.MultiPolygonHole
		if len(c.Poly) > 0 {
			for _, p := range c.Poly {
				contribution = append(contribution, geom.MakeValid(p))
			}
		} else if c.FullGeometry && !c.AirspaceLink.IsNil() {
			if sub, ok := resolveSubAirspace(c.AirspaceLink, loader, instant); ok {
				contribution = sub.GetFullPoly(instant, loader)
			}
		}

		switch c.Operator {
		case OpBase:
			acc = contribution
		case OpUnion:
			acc = geom.Union(acc, contribution)
		}
	}
	return acc
}
