// pkg/ingest/ingest_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ingest_test

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/aup"
	"github.com/mmp/adrcore/pkg/ingest"
	"github.com/mmp/adrcore/pkg/ingest/testfeed"
	"github.com/mmp/adrcore/pkg/store"
	"github.com/mmp/adrcore/pkg/temporal"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "aup.db"), store.DefaultConfig)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func band(lo, hi int32) altitude.Range {
	return altitude.Range{LowerAlt: lo, LowerMode: altitude.QNH, UpperAlt: hi, UpperMode: altitude.QNH}
}

func TestIngestRouteSegmentDirect(t *testing.T) {
	s := openTestStore(t)

	routeID, startID, endID, segID, hostID := uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()

	db := testfeed.NewObjectDB().
		AddRoute("UL620", routeID).
		AddPoint("DIK", startID).
		AddPoint("LARDI", endID).
		AddSegment(routeID, startID, endID, segID, 100_000)

	src := testfeed.NewSource().AddParseID("LFFF", hostID)
	src.AddFeature(ingest.Feature{
		Kind: temporal.KindRouteSegment,
		Slices: []ingest.FeatureSlice{
			{
				Interval: temporal.TimeInterval{Start: 100, End: 200},
				Route:    "UL620", Start: "DIK", End: "LARDI",
				Availabilities: []ingest.RawAvailability{
					{AltRange: band(10000, 20000), HostAirspaceIdents: []string{"LFFF"}, CDRNum: 1, Direction: altitude.Forward},
				},
			},
		},
	})

	ing := &ingest.Ingester{ObjectDB: db, Store: s}
	if err := ing.Run(src); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ing.Errors.HaveErrors() {
		t.Fatalf("unexpected ingest errors: %s", ing.Errors.String())
	}

	rec, ok, err := s.FindPoint(segID, 150)
	if err != nil || !ok {
		t.Fatalf("find_point: ok=%v err=%v", ok, err)
	}
	if len(rec.CDRAvailabilities) != 1 || rec.CDRAvailabilities[0].HostAirspaces[0] != hostID {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestIngestRouteSegmentDijkstraFallback(t *testing.T) {
	s := openTestStore(t)

	routeID := uuid.New()
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	segAB, segBC := uuid.New(), uuid.New()

	db := testfeed.NewObjectDB().
		AddRoute("UN853", routeID).
		AddPoint("ALPHA", a).
		AddPoint("BRAVO", b).
		AddPoint("CHARLIE", c).
		AddSegment(routeID, a, b, segAB, 50_000).
		AddSegment(routeID, b, c, segBC, 60_000)

	src := testfeed.NewSource()
	src.AddFeature(ingest.Feature{
		Kind: temporal.KindRouteSegment,
		Slices: []ingest.FeatureSlice{
			{
				Interval: temporal.TimeInterval{Start: 0, End: 100},
				Route:    "UN853", Start: "ALPHA", End: "CHARLIE",
				Availabilities: []ingest.RawAvailability{
					{AltRange: band(20000, 30000), Direction: altitude.Backward},
				},
			},
		},
	})

	ing := &ingest.Ingester{ObjectDB: db, Store: s}
	if err := ing.Run(src); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ing.Errors.HaveErrors() {
		t.Fatalf("unexpected ingest errors: %s", ing.Errors.String())
	}

	for _, seg := range []uuid.UUID{segAB, segBC} {
		recs, err := s.Find(seg, 0, 100)
		if err != nil {
			t.Fatalf("find(%v): %v", seg, err)
		}
		if len(recs) != 1 {
			t.Fatalf("expected one record per segment in the reconstructed chain, got %d", len(recs))
		}
	}
}

func TestIngestRouteSegmentUnreachableWarnsAndSkips(t *testing.T) {
	s := openTestStore(t)

	routeID := uuid.New()
	a, b := uuid.New(), uuid.New()

	db := testfeed.NewObjectDB().
		AddRoute("UL620", routeID).
		AddPoint("DIK", a).
		AddPoint("LARDI", b)
	// No segment and no edges registered: unreachable.

	src := testfeed.NewSource()
	src.AddFeature(ingest.Feature{
		Kind: temporal.KindRouteSegment,
		Slices: []ingest.FeatureSlice{
			{
				Interval: temporal.TimeInterval{Start: 0, End: 100},
				Route:    "UL620", Start: "DIK", End: "LARDI",
			},
		},
	})

	ing := &ingest.Ingester{ObjectDB: db, Store: s}
	if err := ing.Run(src); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ing.Errors.HaveErrors() {
		t.Fatalf("expected a warning for an unreconstructable segment chain")
	}
}

func TestIngestAirspaceResolvesAndFillsFromSnapshot(t *testing.T) {
	s := openTestStore(t)

	airspaceID, hostID := uuid.New(), uuid.New()

	db := testfeed.NewObjectDB().
		AddAirspace("LFBBZ01", "D", temporal.TimeInterval{Start: 0, End: 1000}, airspaceID)

	src := testfeed.NewSource().AddParseID("LFBB", hostID)
	src.AddFeature(ingest.Feature{
		Kind: temporal.KindAirspace,
		Slices: []ingest.FeatureSlice{
			{Interpretation: ingest.Snapshot, Ident: "LFBBZ01", AirspaceType: "D"},
			{
				Interval: temporal.TimeInterval{Start: 100, End: 200},
				Activation: &ingest.RawActivation{
					AltRange:           band(0, 5000),
					HostAirspaceIdents: []string{"LFBB"},
					Status:             aup.StatusActive,
				},
			},
		},
	})

	ing := &ingest.Ingester{ObjectDB: db, Store: s}
	if err := ing.Run(src); err != nil {
		t.Fatalf("run: %v", err)
	}
	if ing.Errors.HaveErrors() {
		t.Fatalf("unexpected ingest errors: %s", ing.Errors.String())
	}

	rec, ok, err := s.FindPoint(airspaceID, 150)
	if err != nil || !ok {
		t.Fatalf("find_point: ok=%v err=%v", ok, err)
	}
	if rec.Kind != aup.KindRSA || len(rec.RSAActivation.HostAirspaces) != 1 || rec.RSAActivation.HostAirspaces[0] != hostID {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestIngestAirspaceNotFoundWarnsAndSkips(t *testing.T) {
	s := openTestStore(t)
	db := testfeed.NewObjectDB() // empty: nothing resolves.

	src := testfeed.NewSource()
	src.AddFeature(ingest.Feature{
		Kind: temporal.KindAirspace,
		Slices: []ingest.FeatureSlice{
			{
				Interval:     temporal.TimeInterval{Start: 100, End: 200},
				Ident:        "UNKNOWN",
				AirspaceType: "D",
				Activation:   &ingest.RawActivation{AltRange: band(0, 5000)},
			},
		},
	})

	ing := &ingest.Ingester{ObjectDB: db, Store: s}
	if err := ing.Run(src); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !ing.Errors.HaveErrors() {
		t.Fatalf("expected a warning for an unresolvable airspace ident")
	}
}
