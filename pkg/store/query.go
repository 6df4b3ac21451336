// pkg/store/query.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmp/adrcore/pkg/aup"
	"github.com/mmp/adrcore/pkg/temporal"
)

const selectColumns = "id, obj_link, kind, start_time, end_time, payload, rsa_airspace_type, rsa_icao, rsa_level_flags"

func scanRows(rows *sql.Rows) ([]row, error) {
	var out []row
	for rows.Next() {
		var r row
		var objLinkText string
		var icao int
		if err := rows.Scan(&r.id, &objLinkText, &r.kind, &r.start, &r.end, &r.payload,
			&r.rsaAirspaceType, &icao, &r.rsaLevelFlags); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(objLinkText)
		if err != nil {
			return nil, fmt.Errorf("parse obj_link %q: %w", objLinkText, err)
		}
		r.objLink = id
		r.rsaICAO = icao != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func queryOverlapping(q queryer, objLink uuid.UUID, iv temporal.TimeInterval) ([]row, error) {
	rows, err := q.Query(
		"SELECT "+selectColumns+" FROM aup_record WHERE obj_link = ? AND start_time < ? AND end_time > ? ORDER BY start_time",
		objLink.String(), uint64(iv.End), uint64(iv.Start))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows)
}

type queryer interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

// Find returns every record attached to objLink whose interval
// overlaps [t0,t1).
func (s *Store) Find(objLink uuid.UUID, t0, t1 temporal.TimeInstant) ([]aup.Record, error) {
	rows, err := queryOverlapping(s.db, objLink, temporal.TimeInterval{Start: t0, End: t1})
	if err != nil {
		return nil, fmt.Errorf("find: %w", err)
	}
	out := make([]aup.Record, 0, len(rows))
	for _, r := range rows {
		rec, err := decodeRow(r)
		if err != nil {
			return nil, fmt.Errorf("find: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// FindRange returns every record, across all obj_links, whose interval
// overlaps [t0,t1) — an unscoped sweep listing what's active over a
// window.
func (s *Store) FindRange(t0, t1 temporal.TimeInstant) ([]aup.Record, error) {
	rows, err := s.db.Query(
		"SELECT "+selectColumns+" FROM aup_record WHERE start_time < ? AND end_time > ? ORDER BY obj_link, start_time",
		uint64(t1), uint64(t0))
	if err != nil {
		return nil, fmt.Errorf("find range: %w", err)
	}
	defer rows.Close()
	parsed, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("find range: %w", err)
	}
	out := make([]aup.Record, 0, len(parsed))
	for _, r := range parsed {
		rec, err := decodeRow(r)
		if err != nil {
			return nil, fmt.Errorf("find range: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// FindPoint returns the record attached to objLink whose interval
// contains t, if any.
func (s *Store) FindPoint(objLink uuid.UUID, t temporal.TimeInstant) (aup.Record, bool, error) {
	rows, err := queryOverlapping(s.db, objLink, temporal.TimeInterval{Start: t, End: t + 1})
	if err != nil {
		return aup.Record{}, false, fmt.Errorf("find point: %w", err)
	}
	for _, r := range rows {
		if !(r.start <= t && t < r.end) {
			continue
		}
		rec, err := decodeRow(r)
		if err != nil {
			return aup.Record{}, false, fmt.Errorf("find point: %w", err)
		}
		return rec, true, nil
	}
	return aup.Record{}, false, nil
}
