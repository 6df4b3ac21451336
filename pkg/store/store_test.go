// pkg/store/store_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/altitude"
	"github.com/mmp/adrcore/pkg/aup"
	"github.com/mmp/adrcore/pkg/temporal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "aup.db"), DefaultConfig)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func band(lo, hi int32) altitude.Range {
	return altitude.Range{LowerAlt: lo, LowerMode: altitude.QNH, UpperAlt: hi, UpperMode: altitude.QNH}
}

func cdrRecord(objLink uuid.UUID, t0, t1 temporal.TimeInstant, lo, hi int32) aup.Record {
	return aup.Record{
		ObjLink:  temporal.NewLink(objLink),
		Interval: temporal.TimeInterval{Start: t0, End: t1},
		Kind:     aup.KindCDR,
		CDRAvailabilities: []aup.Availability{
			{AltRange: band(lo, hi), Direction: altitude.Forward},
		},
	}
}

// TestCDRUpsertOverlap reproduces spec's worked example #6 exactly:
// save [100,200) {FL100-200 fwd}, then [150,250) {FL200-300 fwd}; check
// find_point at 120, 175, 225.
func TestCDRUpsertOverlap(t *testing.T) {
	s := openTestStore(t)
	objLink := uuid.New()

	if err := s.Save(cdrRecord(objLink, 100, 200, 10000, 20000)); err != nil {
		t.Fatalf("save first CDR: %v", err)
	}
	if err := s.Save(cdrRecord(objLink, 150, 250, 20000, 30000)); err != nil {
		t.Fatalf("save second CDR: %v", err)
	}

	check := func(at temporal.TimeInstant, wantBands int) {
		rec, ok, err := s.FindPoint(objLink, at)
		if err != nil {
			t.Fatalf("find_point(%d): %v", at, err)
		}
		if !ok {
			t.Fatalf("find_point(%d): expected a record, found none", at)
		}
		if len(rec.CDRAvailabilities) != wantBands {
			t.Fatalf("find_point(%d): expected %d availability bands, got %d (%+v)",
				at, wantBands, len(rec.CDRAvailabilities), rec.CDRAvailabilities)
		}
	}

	check(120, 1) // {FL100-200}
	check(175, 2) // {FL100-200, FL200-300}
	check(225, 1) // {FL200-300}
}

func TestRSAUpsertTruncatesFragments(t *testing.T) {
	s := openTestStore(t)
	objLink := uuid.New()

	first := aup.Record{
		ObjLink:  temporal.NewLink(objLink),
		Interval: temporal.TimeInterval{Start: 100, End: 300},
		Kind:     aup.KindRSA,
		RSAActivation: aup.Activation{
			AltRange: band(10000, 20000),
			Status:   aup.StatusActive,
		},
	}
	if err := s.Save(first); err != nil {
		t.Fatalf("save first RSA: %v", err)
	}

	second := aup.Record{
		ObjLink:  temporal.NewLink(objLink),
		Interval: temporal.TimeInterval{Start: 150, End: 200},
		Kind:     aup.KindRSA,
		RSAActivation: aup.Activation{
			AltRange: band(20000, 30000),
			Status:   aup.StatusActive,
		},
	}
	if err := s.Save(second); err != nil {
		t.Fatalf("save second RSA: %v", err)
	}

	recs, err := s.Find(objLink, 0, 1000)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records (earlier fragment, second, later fragment), got %d: %+v", len(recs), recs)
	}

	atBefore, ok, err := s.FindPoint(objLink, 120)
	if err != nil || !ok {
		t.Fatalf("find_point(120): ok=%v err=%v", ok, err)
	}
	if atBefore.RSAActivation.AltRange != band(10000, 20000) {
		t.Fatalf("expected earlier fragment to keep original altrange, got %+v", atBefore.RSAActivation)
	}

	atMiddle, ok, err := s.FindPoint(objLink, 175)
	if err != nil || !ok {
		t.Fatalf("find_point(175): ok=%v err=%v", ok, err)
	}
	if atMiddle.RSAActivation.AltRange != band(20000, 30000) {
		t.Fatalf("expected middle to be the newly saved record, got %+v", atMiddle.RSAActivation)
	}

	atAfter, ok, err := s.FindPoint(objLink, 250)
	if err != nil || !ok {
		t.Fatalf("find_point(250): ok=%v err=%v", ok, err)
	}
	if atAfter.RSAActivation.AltRange != band(10000, 20000) {
		t.Fatalf("expected later fragment to keep original altrange, got %+v", atAfter.RSAActivation)
	}
}

func TestSaveRejectsDegenerateInterval(t *testing.T) {
	s := openTestStore(t)
	rec := cdrRecord(uuid.New(), 100, 100, 10000, 20000)
	if err := s.Save(rec); err == nil {
		t.Fatalf("expected degenerate [100,100) interval to be rejected")
	}
}
