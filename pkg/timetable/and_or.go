// pkg/timetable/and_or.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package timetable

// TimeTableAnd is a conjunction of TimeTables. The zero value (no
// Tables, never=false) is the AND identity, "always"; the explicit
// never flag realizes the spec's "an inserted empty TimeTableAnd is
// the conventional encoding of never" — a deliberate convention (see
// the grounding ledger's timetable entry) rather than a structural
// accident, so evaluation and IsNever agree instead of contradicting
// each other the way a literal reading of an "empty AND is always-true
// but also means never" rule would.
type TimeTableAnd struct {
	Tables []TimeTable
	never  bool
}

// NeverAnd returns the canonical never-encoding TimeTableAnd.
func NeverAnd() TimeTableAnd { return TimeTableAnd{never: true} }

func (a TimeTableAnd) IsInside(tte *TimeTableEval, instant TimeInstant, haveInstant bool) bool {
	if a.never {
		return false
	}
	for _, t := range a.Tables {
		if !t.IsInside(tte, instant, haveInstant) {
			return false
		}
	}
	return true
}

func (a TimeTableAnd) IsAlways() bool {
	return !a.never && len(a.Tables) == 0
}

// IsNever reports whether a can never be inside: either the explicit
// never marker, or a constituent table that is itself the per-table
// never encoding (a negated vacuous truth).
func (a TimeTableAnd) IsNever() bool {
	if a.never {
		return true
	}
	for _, t := range a.Tables {
		if t.IsNever() {
			return true
		}
	}
	return false
}

func (a TimeTableAnd) simplify() TimeTableAnd {
	if a.never {
		return a
	}
	simplified := make([]TimeTable, len(a.Tables))
	for i, t := range a.Tables {
		simplified[i] = t.Simplify()
		if simplified[i].IsNever() {
			return NeverAnd()
		}
	}
	return TimeTableAnd{Tables: simplified}
}

// invert realizes De Morgan's law for one AND term: !Π_j t_j = Σ_j !t_j,
// returned as a TimeTableOr of singleton Ands (one per negated table).
func (a TimeTableAnd) invert() TimeTableOr {
	if a.never {
		return Always()
	}
	if len(a.Tables) == 0 {
		return Never()
	}
	var result TimeTableOr
	for _, t := range a.Tables {
		neg := t
		neg.Negate = !neg.Negate
		result.Ands = append(result.Ands, TimeTableAnd{Tables: []TimeTable{neg}})
	}
	return result
}

// TimeTableOr is a disjunction of TimeTableAnds. The zero value (no
// Ands) is the OR identity, "always" — the spec's convention that an
// absent timetable imposes no restriction, carried consistently down
// through TimeTable.IsAlways and TimeTableAnd.IsAlways above.
type TimeTableOr struct {
	Ands []TimeTableAnd
}

// Always returns the canonical always-true TimeTableOr (empty OR).
func Always() TimeTableOr { return TimeTableOr{} }

// Never returns the canonical never-true TimeTableOr (OR of one never
// And).
func Never() TimeTableOr { return TimeTableOr{Ands: []TimeTableAnd{NeverAnd()}} }

func (o TimeTableOr) IsInside(tte *TimeTableEval, instant TimeInstant, haveInstant bool) bool {
	if len(o.Ands) == 0 {
		return true
	}
	for _, a := range o.Ands {
		if a.IsInside(tte, instant, haveInstant) {
			return true
		}
	}
	return false
}

func (o TimeTableOr) IsAlways() bool {
	return len(o.Ands) == 0
}

// IsNever reports whether every And term is itself never — the
// canonical single-NeverAnd form produced by Never(), or any
// equivalent that simplification has not yet collapsed.
func (o TimeTableOr) IsNever() bool {
	if len(o.Ands) == 0 {
		return false
	}
	for _, a := range o.Ands {
		if !a.IsNever() {
			return false
		}
	}
	return true
}

// And implements conjunction via the Cartesian product of AND terms,
// dropping never-terms, per the spec's algebraic-laws section.
func (o TimeTableOr) And(other TimeTableOr) TimeTableOr {
	if o.IsNever() || other.IsNever() {
		return Never()
	}
	if o.IsAlways() {
		return other
	}
	if other.IsAlways() {
		return o
	}
	var result TimeTableOr
	for _, a := range o.Ands {
		if a.IsNever() {
			continue
		}
		for _, b := range other.Ands {
			if b.IsNever() {
				continue
			}
			merged := TimeTableAnd{Tables: append(append([]TimeTable{}, a.Tables...), b.Tables...)}
			result.Ands = append(result.Ands, merged)
		}
	}
	if len(result.Ands) == 0 {
		return Never()
	}
	return result
}

// Or implements disjunction via concatenation, short-circuiting when
// either side is "always" or "never".
func (o TimeTableOr) Or(other TimeTableOr) TimeTableOr {
	if o.IsAlways() || other.IsAlways() {
		return Always()
	}
	if o.IsNever() {
		return other
	}
	if other.IsNever() {
		return o
	}
	return TimeTableOr{Ands: append(append([]TimeTableAnd{}, o.Ands...), other.Ands...)}
}

// Invert realizes the full De Morgan expansion:
// !(Σ_i Π_j t_ij) = Π_i Σ_j !t_ij, folding the AND across each
// inverted-And term with TimeTableOr.And so the result stays in
// canonical sum-of-products (OR-of-AND) form.
func (o TimeTableOr) Invert() TimeTableOr {
	if o.IsAlways() {
		return Never()
	}
	if o.IsNever() {
		return Always()
	}
	result := Always()
	for _, a := range o.Ands {
		result = result.And(a.invert())
	}
	return result
}

// Simplify drops never-Ands and simplifies the survivors' constituent
// Tables' elements. An empty result denotes "always" only when o was
// already empty going in; if every And was dropped as never, the
// canonical never encoding (one empty And) is reinstated instead, so
// simplification can't flip a never into an always.
func (o TimeTableOr) Simplify() TimeTableOr {
	if len(o.Ands) == 0 {
		return Always()
	}
	var kept []TimeTableAnd
	for _, a := range o.Ands {
		sa := a.simplify()
		if sa.IsNever() {
			continue
		}
		kept = append(kept, sa)
	}
	if len(kept) == 0 {
		return Never()
	}
	return TimeTableOr{Ands: kept}
}
