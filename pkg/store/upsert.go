// pkg/store/upsert.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package store

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/mmp/adrcore/pkg/aup"
	"github.com/mmp/adrcore/pkg/temporal"
)

// Save performs the overlap-preserving upsert described in spec.md's
// "AUP store upsert (critical)" section, inside a single transaction:
//  1. find every stored record sharing rec's obj_link whose interval
//     overlaps rec's,
//  2. partition by kind,
//  3. CDR: rebuild the whole combined span as a sequence of
//     non-overlapping records split at every boundary time, each one
//     merging in whichever of rec/found cover that sub-interval,
//  4. other kinds: delete the overlapping originals, re-inserting each
//     one's non-overlapping fragment outside rec's interval, then save
//     rec itself.
//
// Step 5 of the spec ("finally save rec itself") applies only to the
// non-CDR branch: the CDR branch's boundary-split records already
// cover rec's own interval (each sub-interval merges in rec's
// availability when rec overlaps it), so a further verbatim save of
// rec would duplicate coverage across two records with the same
// obj_link at the same instant. Hand-tracing the spec's worked CDR
// upsert example (save [100,200) then [150,250)) against this
// implementation reproduces its exact expected find_point results.
func (s *Store) Save(rec aup.Record) error {
	if !rec.IsValid() {
		return fmt.Errorf("aup record has degenerate interval [%d,%d)", rec.Interval.Start, rec.Interval.End)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save: begin: %w", err)
	}
	defer tx.Rollback()

	found, err := queryOverlapping(tx, rec.ObjLink.UUID(), rec.Interval)
	if err != nil {
		return fmt.Errorf("save: find overlapping: %w", err)
	}

	switch rec.Kind {
	case aup.KindCDR:
		if err := saveCDR(tx, rec, found); err != nil {
			return err
		}
	default:
		if err := saveOther(tx, rec, found); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func saveCDR(tx *sql.Tx, rec aup.Record, found []row) error {
	boundaries := map[temporal.TimeInstant]struct{}{
		rec.Interval.Start: {},
		rec.Interval.End:   {},
	}
	for _, f := range found {
		boundaries[f.start] = struct{}{}
		boundaries[f.end] = struct{}{}
	}
	sorted := make([]temporal.TimeInstant, 0, len(boundaries))
	for t := range boundaries {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	for i := 0; i+1 < len(sorted); i++ {
		t0, t1 := sorted[i], sorted[i+1]
		if t0 == t1 {
			continue
		}
		var avail []aup.Availability
		if rec.IsOverlap(t0, t1) {
			avail = aup.MergeAvailabilities(avail, rec.CDRAvailabilities)
		}
		for _, f := range found {
			fr, err := decodeRow(f)
			if err != nil {
				return fmt.Errorf("save: decode overlapping CDR: %w", err)
			}
			if fr.IsOverlap(t0, t1) {
				avail = aup.MergeAvailabilities(avail, fr.CDRAvailabilities)
			}
		}
		if len(avail) == 0 {
			continue
		}
		sub := aup.Record{
			ObjLink:           rec.ObjLink,
			Interval:          temporal.TimeInterval{Start: t0, End: t1},
			Kind:              aup.KindCDR,
			CDRAvailabilities: avail,
		}
		if err := insertRecord(tx, sub); err != nil {
			return fmt.Errorf("save: insert CDR fragment: %w", err)
		}
	}

	for _, f := range found {
		if err := deleteRow(tx, f.id); err != nil {
			return fmt.Errorf("save: delete overlapping CDR: %w", err)
		}
	}
	return nil
}

func saveOther(tx *sql.Tx, rec aup.Record, found []row) error {
	for _, f := range found {
		fr, err := decodeRow(f)
		if err != nil {
			return fmt.Errorf("save: decode overlapping record: %w", err)
		}
		if fr.Interval.Start < rec.Interval.Start {
			frag := fr
			frag.Interval.End = rec.Interval.Start
			if frag.IsValid() {
				if err := insertRecord(tx, frag); err != nil {
					return fmt.Errorf("save: insert earlier fragment: %w", err)
				}
			}
		}
		if fr.Interval.End > rec.Interval.End {
			frag := fr
			frag.Interval.Start = rec.Interval.End
			if frag.IsValid() {
				if err := insertRecord(tx, frag); err != nil {
					return fmt.Errorf("save: insert later fragment: %w", err)
				}
			}
		}
		if err := deleteRow(tx, f.id); err != nil {
			return fmt.Errorf("save: delete overlapping record: %w", err)
		}
	}
	return insertRecord(tx, rec)
}

func insertRecord(tx *sql.Tx, rec aup.Record) error {
	r, err := encodeRow(rec)
	if err != nil {
		return err
	}
	_, err = tx.Exec(
		`INSERT INTO aup_record (obj_link, kind, start_time, end_time, payload, rsa_airspace_type, rsa_icao, rsa_level_flags)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.objLink.String(), int(r.kind), uint64(r.start), uint64(r.end), r.payload,
		r.rsaAirspaceType, boolToInt(r.rsaICAO), r.rsaLevelFlags)
	return err
}

func deleteRow(tx *sql.Tx, id int64) error {
	_, err := tx.Exec("DELETE FROM aup_record WHERE id = ?", id)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
