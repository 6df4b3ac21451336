// pkg/ingest/resolve.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ingest

import (
	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/aup"
	"github.com/mmp/adrcore/pkg/log"
	"github.com/mmp/adrcore/pkg/store"
	"github.com/mmp/adrcore/pkg/temporal"
	"github.com/mmp/adrcore/pkg/util"
)

// Ingester drives the resolution pipeline against one ObjectDB and
// AUP store.Store, accumulating warnings for anything it skips rather
// than aborting the whole feed.
type Ingester struct {
	ObjectDB ObjectDB
	Store    *store.Store
	Log      *log.Logger

	Errors util.ErrorLogger
}

// Run resolves and saves every feature src yields. It never returns an
// error for a single bad feature; the warnings for skipped features
// accumulate in ing.Errors for the caller to inspect afterward.
func (ing *Ingester) Run(src FeatureSource) error {
	for _, f := range src.Features() {
		switch f.Kind {
		case temporal.KindAirspace:
			ing.resolveAirspace(src, f)
		case temporal.KindRouteSegment:
			ing.resolveRouteSegment(src, f)
		default:
			ing.Errors.ErrorString("unrecognized feature kind %v", f.Kind)
		}
	}
	return nil
}

func (ing *Ingester) resolveAirspace(src FeatureSource, f Feature) {
	ing.Errors.Push("airspace feature")
	defer ing.Errors.Pop()

	snap, hasSnap := f.snapshotSlice()

	for _, sl := range f.Slices {
		if sl.IsSnapshot() {
			continue
		}
		ident, atype := sl.Ident, sl.AirspaceType
		if ident == "" && hasSnap {
			ident = snap.Ident
		}
		if atype == "" && hasSnap {
			atype = snap.AirspaceType
		}

		airspaceID, ok := ing.ObjectDB.FindAirspace(ident, sl.Interval, atype)
		if !ok {
			ing.Errors.ErrorString("airspace %q (type %q) not found in object database, skipping", ident, atype)
			continue
		}

		rec, ok := ing.buildRSARecord(src, airspaceID, sl, atype)
		if !ok {
			continue
		}
		if err := ing.Store.Save(rec); err != nil {
			ing.Errors.Error(err)
		}
	}
}

func (ing *Ingester) buildRSARecord(src FeatureSource, airspaceID uuid.UUID, sl FeatureSlice, atype string) (aup.Record, bool) {
	if sl.Activation == nil {
		ing.Errors.ErrorString("non-snapshot airspace slice has no activation payload")
		return aup.Record{}, false
	}

	hosts, ok := ing.resolveHostAirspaces(src, sl.Activation.HostAirspaceIdents)
	if !ok {
		return aup.Record{}, false
	}

	return aup.Record{
		ObjLink:  temporal.NewLink(airspaceID),
		Interval: sl.Interval,
		Kind:     aup.KindRSA,
		RSAActivation: aup.Activation{
			AltRange:      sl.Activation.AltRange,
			HostAirspaces: hosts,
			Status:        sl.Activation.Status,
		},
		RSAAirspaceType: atype,
		RSAICAO:         sl.RSAICAO,
		RSALevelFlags:   sl.RSALevelFlags,
	}, true
}

// resolveHostAirspaces looks up every host_airspaces ident against the
// parse-time ID map. A single unresolvable ident fails the whole
// slice rather than silently dropping a host.
func (ing *Ingester) resolveHostAirspaces(src FeatureSource, idents []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(idents))
	for _, ident := range idents {
		id, ok := src.ResolveParseID(ident)
		if !ok {
			ing.Errors.ErrorString("host_airspaces ident %q not present in parse-time ID map, skipping", ident)
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func (ing *Ingester) resolveRouteSegment(src FeatureSource, f Feature) {
	ing.Errors.Push("route segment feature")
	defer ing.Errors.Pop()

	for _, sl := range f.Slices {
		if sl.IsSnapshot() {
			continue
		}

		route, ok := ing.ObjectDB.FindRoute(sl.Route)
		if !ok {
			ing.Errors.ErrorString("route %q not found in object database, skipping", sl.Route)
			continue
		}
		start, ok := ing.ObjectDB.FindPoint(sl.Start)
		if !ok {
			ing.Errors.ErrorString("route segment endpoint %q not found, skipping", sl.Start)
			continue
		}
		end, ok := ing.ObjectDB.FindPoint(sl.End)
		if !ok {
			ing.Errors.ErrorString("route segment endpoint %q not found, skipping", sl.End)
			continue
		}

		chain, ok := ing.resolveSegmentChain(route, start, end)
		if !ok {
			continue
		}

		avail, ok := ing.resolveAvailabilities(src, sl.Availabilities)
		if !ok {
			continue
		}

		for _, seg := range chain {
			rec := aup.Record{
				ObjLink:           temporal.NewLink(seg),
				Interval:          sl.Interval,
				Kind:              aup.KindCDR,
				CDRAvailabilities: avail,
			}
			if err := ing.Store.Save(rec); err != nil {
				ing.Errors.Error(err)
			}
		}
	}
}

func (ing *Ingester) resolveAvailabilities(src FeatureSource, raw []RawAvailability) ([]aup.Availability, bool) {
	out := make([]aup.Availability, 0, len(raw))
	for _, r := range raw {
		hosts, ok := ing.resolveHostAirspaces(src, r.HostAirspaceIdents)
		if !ok {
			return nil, false
		}
		out = append(out, aup.Availability{
			AltRange:      r.AltRange,
			HostAirspaces: hosts,
			CDRNum:        r.CDRNum,
			Direction:     r.Direction,
		})
	}
	return out, true
}

// resolveSegmentChain returns the ordered segment UUIDs from start to
// end along route: the direct segment if the object database already
// has one, else a Dijkstra reconstruction over the route's segment
// graph.
func (ing *Ingester) resolveSegmentChain(route, start, end uuid.UUID) ([]uuid.UUID, bool) {
	if seg, ok := ing.ObjectDB.FindSegment(route, start, end); ok {
		return []uuid.UUID{seg}, true
	}

	edges := ing.ObjectDB.RouteSegmentEdges(route)
	chain, err := shortestPath(edges, start, end)
	if err != nil {
		ing.Errors.Error(err)
		return nil, false
	}
	return chain, true
}
