// pkg/ingest/objectdb/objectdb_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package objectdb

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/temporal"
)

func writeJSON(t *testing.T, dir, name string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal %s: %v", name, err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestOpenLoadsSnapshotFiles(t *testing.T) {
	dir := t.TempDir()

	airspaceID := uuid.New()
	writeJSON(t, dir, "airspaces.json", []airspaceDump{
		{Ident: "LFBBZ01", Type: "D", Start: 0, End: 1000, ID: airspaceID},
	})

	a, b := uuid.New(), uuid.New()
	writeJSON(t, dir, "points.json", []pointDump{
		{Ident: "DIK", ID: a},
		{Ident: "LARDI", ID: b},
	})

	routeID := uuid.New()
	writeJSON(t, dir, "routes.json", []routeDump{{Ident: "UL620", ID: routeID}})

	segID := uuid.New()
	writeJSON(t, dir, "segments.json", []segmentDump{
		{Route: "UL620", Start: "DIK", End: "LARDI", ID: segID, LengthMetres: 123_000},
	})

	db, err := Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if id, ok := db.FindAirspace("LFBBZ01", temporal.TimeInterval{Start: 100, End: 200}, "D"); !ok || id != airspaceID {
		t.Fatalf("FindAirspace: id=%v ok=%v", id, ok)
	}
	if id, ok := db.FindPoint("DIK"); !ok || id != a {
		t.Fatalf("FindPoint: id=%v ok=%v", id, ok)
	}
	if id, ok := db.FindRoute("UL620"); !ok || id != routeID {
		t.Fatalf("FindRoute: id=%v ok=%v", id, ok)
	}
	if id, ok := db.FindSegment(routeID, a, b); !ok || id != segID {
		t.Fatalf("FindSegment: id=%v ok=%v", id, ok)
	}

	edges := db.RouteSegmentEdges(routeID)
	if len(edges) != 1 || edges[0].Segment != segID {
		t.Fatalf("unexpected edges: %+v", edges)
	}
	// The returned slice is a deep copy of db.edges; mutating it must
	// not corrupt the master copy the next cache miss would clone from.
	edges[0].LengthMetres = -1
	if db.edges[routeID][0].LengthMetres != 123_000 {
		t.Fatalf("RouteSegmentEdges leaked a mutable view onto the master edge list")
	}
}

func TestOpenToleratesMissingFiles(t *testing.T) {
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := db.FindRoute("UL620"); ok {
		t.Fatalf("expected no routes in an empty directory")
	}
}
