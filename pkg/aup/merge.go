// pkg/aup/merge.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aup

// MergeAvailabilities folds incoming into existing under the CDR merge
// rule: two Availabilities merge iff they share (altrange, direction),
// in which case the existing one's host_airspaces and cdr_num are
// replaced by incoming's. Availabilities with no matching band are
// appended unchanged.
func MergeAvailabilities(existing []Availability, incoming []Availability) []Availability {
	out := make([]Availability, len(existing))
	copy(out, existing)

	for _, in := range incoming {
		merged := false
		for i, ex := range out {
			if ex.sameBand(in) {
				out[i].HostAirspaces = in.HostAirspaces
				out[i].CDRNum = in.CDRNum
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, in)
		}
	}
	return out
}
