// pkg/airspace/recompute.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package airspace

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mmp/adrcore/pkg/adrerr"
	"github.com/mmp/adrcore/pkg/geom"
	"github.com/mmp/adrcore/pkg/temporal"
)

// FeetPerMetre converts terrain elevations (metres, per the terrain
// collaborator) into the feet AltRange/AirspaceComponent use.
const FeetPerMetre = 3.28084

// Recompute implements spec §4.2's four-step maintenance pass:
//  1. overwrite each PointLink's vertex with its linked point's
//     current coordinate,
//  2. rewind rings CCW exterior / CW holes, reindexing any PointLink
//     that referenced a reversed ring,
//  3. recompute s's bbox as the union of component polygon bboxes and
//     referenced sub-airspace bboxes overlapping in time,
//  4. query the terrain collaborator for components with invalid
//     ground-elevation fields, converting metres to feet.
//
// A malformed PointLink, a required-but-nil airspace link, or an
// unresolvable link aborts recomputation of that component with
// adrerr.ErrInvariantViolated / adrerr.ErrLinkUnresolved; containment
// queries themselves never error, per spec.
func (s *AirspaceTimeSlice) Recompute(instant temporal.TimeInstant, loader temporal.LinkLoader, terrain TerrainDB) error {
	var eg errgroup.Group
	for i := range s.Components {
		i := i
		eg.Go(func() error {
			if err := recomputeComponent(&s.Components[i], instant, loader, terrain); err != nil {
				return fmt.Errorf("component %d: %w", i, err)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	s.BBox = s.computeBBox(instant, loader)
	return nil
}

func recomputeComponent(c *AirspaceComponent, instant temporal.TimeInstant, loader temporal.LinkLoader, terrain TerrainDB) error {
	for _, pl := range c.PointLinks {
		if err := applyPointLink(c, pl, instant, loader); err != nil {
			return err
		}
	}

	for pi := range c.Poly {
		reversed := geom.NormalizeOrientation(&c.Poly[pi])
		for _, idx := range reversed {
			reindexPointLinks(c, pi, idx)
		}
	}

	if c.GndElevMin == 0 && c.GndElevMax == 0 && len(c.Poly) > 0 && terrain != nil {
		minM, maxM := terrain.GetMinMaxElev(c.Poly)
		c.GndElevMin = minM * FeetPerMetre
		c.GndElevMax = maxM * FeetPerMetre
	} else if c.FullGeometry && !c.AirspaceLink.IsNil() {
		if sub, ok := resolveSubAirspace(c.AirspaceLink, loader, instant); ok {
			min, max := subElevExtent(sub)
			c.GndElevMin, c.GndElevMax = min, max
		}
	}

	return nil
}

func subElevExtent(sub *AirspaceTimeSlice) (minElev, maxElev float64) {
	first := true
	for _, c := range sub.Components {
		if first {
			minElev, maxElev = c.GndElevMin, c.GndElevMax
			first = false
			continue
		}
		if c.GndElevMin < minElev {
			minElev = c.GndElevMin
		}
		if c.GndElevMax > maxElev {
			maxElev = c.GndElevMax
		}
	}
	return minElev, maxElev
}

// applyPointLink overwrites the polygon vertex pl references with its
// linked designated point's current coordinate.
func applyPointLink(c *AirspaceComponent, pl PointLink, instant temporal.TimeInstant, loader temporal.LinkLoader) error {
	if pl.PolyIndex < 0 || pl.PolyIndex >= len(c.Poly) {
		return adrerr.ErrInvariantViolated
	}
	poly := &c.Poly[pl.PolyIndex]
	var ring *geom.Ring
	if pl.RingIndex < 0 {
		ring = &poly.Exterior
	} else if pl.RingIndex < len(poly.Holes) {
		ring = &poly.Holes[pl.RingIndex]
	} else {
		return adrerr.ErrInvariantViolated
	}
	if pl.VertexIndex < 0 || pl.VertexIndex >= len(*ring) {
		return adrerr.ErrInvariantViolated
	}

	obj, ok := pl.Link.Cached()
	if !ok {
		if loader == nil {
			return adrerr.ErrLinkUnresolved
		}
		l := pl.Link
		if err := loader.Resolve([]*temporal.Link{&l}, 1); err != nil {
			return adrerr.ErrLinkUnresolved
		}
		obj, ok = l.Cached()
		if !ok {
			return adrerr.ErrLinkUnresolved
		}
	}

	ts, ok := obj.SliceAt(instant)
	if !ok {
		return adrerr.ErrLinkUnresolved
	}
	pt, ok := temporal.SliceAs[temporal.PointIdentPayload](ts)
	if !ok {
		return adrerr.ErrLinkUnresolved
	}
	(*ring)[pl.VertexIndex] = geom.Point{pt.Lon, pt.Lat}
	return nil
}

// reindexPointLinks remaps the VertexIndex of every PointLink that
// references the given (polyIndex, ringIndex) after that ring was
// reversed. ringIndex follows geom.NormalizeOrientation's convention:
// -1 for the exterior, the hole index otherwise.
func reindexPointLinks(c *AirspaceComponent, polyIndex, ringIndex int) {
	var size int
	if ringIndex < 0 {
		size = len(c.Poly[polyIndex].Exterior)
	} else {
		size = len(c.Poly[polyIndex].Holes[ringIndex])
	}
	for i := range c.PointLinks {
		pl := &c.PointLinks[i]
		if pl.PolyIndex == polyIndex && pl.RingIndex == ringIndex {
			pl.VertexIndex = geom.ReindexAfterReverse(size, pl.VertexIndex)
		}
	}
}

// computeBBox unions every component's polygon bbox with referenced
// sub-airspace bboxes overlapping in time.
func (s *AirspaceTimeSlice) computeBBox(instant temporal.TimeInstant, loader temporal.LinkLoader) geom.Extent {
	e := geom.EmptyExtent()
	for _, c := range s.Components {
		if len(c.Poly) > 0 {
			e = e.UnionExtent(geom.ExtentFromMultiPolygon(c.Poly))
		}
		if c.FullGeometry && !c.AirspaceLink.IsNil() {
			if sub, ok := resolveSubAirspace(c.AirspaceLink, loader, instant); ok {
				e = e.UnionExtent(sub.BBox)
			}
		}
	}
	return e
}
