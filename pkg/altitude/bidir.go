// pkg/altitude/bidir.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package altitude

import "github.com/mmp/adrcore/pkg/interval"

// Direction names one of a CDR availability's two independently-gated
// travel directions.
type Direction int

const (
	Forward Direction = iota
	Backward
)

// BidirRange pairs a forward and backward altitude IntervalSet; the set
// algebra is applied componentwise to each direction.
type BidirRange struct {
	Forward, Backward interval.Set[int32]
}

func (b BidirRange) Union(o BidirRange) BidirRange {
	return BidirRange{Forward: b.Forward.Union(o.Forward), Backward: b.Backward.Union(o.Backward)}
}

func (b BidirRange) Intersect(o BidirRange) BidirRange {
	return BidirRange{Forward: b.Forward.Intersect(o.Forward), Backward: b.Backward.Intersect(o.Backward)}
}

func (b BidirRange) Complement(full interval.Span[int32]) BidirRange {
	return BidirRange{Forward: b.Forward.Complement(full), Backward: b.Backward.Complement(full)}
}

// SwapDir exchanges the forward and backward sets.
func (b BidirRange) SwapDir() BidirRange {
	return BidirRange{Forward: b.Backward, Backward: b.Forward}
}

// Of returns the IntervalSet for the given direction.
func (b BidirRange) Of(dir Direction) interval.Set[int32] {
	if dir == Backward {
		return b.Backward
	}
	return b.Forward
}
