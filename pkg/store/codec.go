// pkg/store/codec.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/mmp/adrcore/pkg/aup"
	"github.com/mmp/adrcore/pkg/temporal"
)

// row is the flat representation of an aup.Record as stored in
// aup_record; encodeRow/decodeRow handle the kind-specific
// JSON blob, zstd-compressed before it hits the payload column.
type row struct {
	id              int64
	objLink         uuid.UUID
	kind            aup.Kind
	start, end      temporal.TimeInstant
	payload         []byte
	rsaAirspaceType string
	rsaICAO         bool
	rsaLevelFlags   uint32
}

func compressPayload(b []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("new zstd writer: %w", err)
	}
	defer enc.Close()
	return enc.EncodeAll(b, nil), nil
}

func decompressPayload(b []byte) ([]byte, error) {
	dec, err := zstd.NewReader(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("new zstd reader: %w", err)
	}
	defer dec.Close()
	out, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	return out, nil
}

func encodeRow(rec aup.Record) (row, error) {
	r := row{
		objLink: rec.ObjLink.UUID(),
		kind:    rec.Kind,
		start:   rec.Interval.Start,
		end:     rec.Interval.End,
	}
	var b []byte
	switch rec.Kind {
	case aup.KindCDR:
		var err error
		b, err = json.Marshal(rec.CDRAvailabilities)
		if err != nil {
			return row{}, fmt.Errorf("encode CDR payload: %w", err)
		}
	case aup.KindRSA:
		var err error
		b, err = json.Marshal(rec.RSAActivation)
		if err != nil {
			return row{}, fmt.Errorf("encode RSA payload: %w", err)
		}
		r.rsaAirspaceType = rec.RSAAirspaceType
		r.rsaICAO = rec.RSAICAO
		r.rsaLevelFlags = rec.RSALevelFlags
	default:
		return row{}, fmt.Errorf("unknown record kind %d", rec.Kind)
	}
	compressed, err := compressPayload(b)
	if err != nil {
		return row{}, err
	}
	r.payload = compressed
	return r, nil
}

func decodeRow(r row) (aup.Record, error) {
	rec := aup.Record{
		ObjLink:         temporal.NewLink(r.objLink),
		Interval:        temporal.TimeInterval{Start: r.start, End: r.end},
		Kind:            r.kind,
		RSAAirspaceType: r.rsaAirspaceType,
		RSAICAO:         r.rsaICAO,
		RSALevelFlags:   r.rsaLevelFlags,
	}
	b, err := decompressPayload(r.payload)
	if err != nil {
		return aup.Record{}, err
	}
	switch r.kind {
	case aup.KindCDR:
		if err := json.Unmarshal(b, &rec.CDRAvailabilities); err != nil {
			return aup.Record{}, fmt.Errorf("decode CDR payload: %w", err)
		}
	case aup.KindRSA:
		if err := json.Unmarshal(b, &rec.RSAActivation); err != nil {
			return aup.Record{}, fmt.Errorf("decode RSA payload: %w", err)
		}
	default:
		return aup.Record{}, fmt.Errorf("unknown stored record kind %d", r.kind)
	}
	return rec, nil
}
