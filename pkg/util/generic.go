// pkg/util/generic.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"encoding/json"
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

// OneOf holds a value that may be decoded as either an A or a B,
// depending on which one the source JSON actually matches (e.g. a
// value that is either an integer or a keyword). It works on JSON
// only; the AIXM XML reader parses its altitude fields directly.
type OneOf[A, B any] struct {
	A *A
	B *B
}

func (o OneOf[A, B]) MarshalJSON() ([]byte, error) {
	if o.A != nil {
		return json.Marshal(*o.A)
	} else if o.B != nil {
		return json.Marshal(*o.B)
	}
	return []byte("null"), nil
}

func (o *OneOf[A, B]) UnmarshalJSON(j []byte) error {
	o.A = nil
	o.B = nil
	if string(j) == "null" {
		return nil
	}

	var a A
	if err := json.Unmarshal(j, &a); err == nil {
		o.A = &a
		return nil
	}
	var b B
	err := json.Unmarshal(j, &b)
	if err == nil {
		o.B = &b
	}
	return err
}

// Select returns a if sel is true, otherwise b.
func Select[T any](sel bool, a, b T) T {
	if sel {
		return a
	}
	return b
}

// SortedMapKeys returns the keys of the given map, sorted from low to high.
func SortedMapKeys[K constraints.Ordered, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
