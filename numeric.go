package subtype

import (
	"context"
	"math/big"
)

// NumberConstraints is the Number/Integer payload of a CTS (spec §3,
// §4.4): an interval with explicit exclusivity flags plus an exact
// multipleOf, all stored as big.Rat so 0.1/0.2-style decimals compare
// exactly rather than drifting under binary-float arithmetic.
type NumberConstraints struct {
	Min      *big.Rat // nil => -∞
	Max      *big.Rat // nil => +∞
	ExclMin  bool
	ExclMax  bool
	Multiple *big.Rat // nil => no constraint
}

// numericMeet intersects two Number/Integer constraint sets: tightest
// bound wins, exclusivity ORs when bounds are equal, and multipleOf
// constraints combine via LCM (spec §4.4 "Meet").
func numericMeet(a, b *NumberConstraints) (*NumberConstraints, bool) {
	out := &NumberConstraints{}

	out.Min, out.ExclMin = tighterMin(a.Min, a.ExclMin, b.Min, b.ExclMin)
	out.Max, out.ExclMax = tighterMax(a.Max, a.ExclMax, b.Max, b.ExclMax)

	switch {
	case a.Multiple == nil:
		out.Multiple = b.Multiple
	case b.Multiple == nil:
		out.Multiple = a.Multiple
	default:
		out.Multiple = ratLCM(a.Multiple, b.Multiple)
	}

	if numericIsEmpty(out) {
		return out, false
	}
	return out, true
}

func tighterMin(aMin *big.Rat, aExcl bool, bMin *big.Rat, bExcl bool) (*big.Rat, bool) {
	if aMin == nil {
		return bMin, bExcl
	}
	if bMin == nil {
		return aMin, aExcl
	}
	switch aMin.Cmp(bMin) {
	case 1:
		return aMin, aExcl
	case -1:
		return bMin, bExcl
	default:
		return aMin, aExcl || bExcl
	}
}

func tighterMax(aMax *big.Rat, aExcl bool, bMax *big.Rat, bExcl bool) (*big.Rat, bool) {
	if aMax == nil {
		return bMax, bExcl
	}
	if bMax == nil {
		return aMax, aExcl
	}
	switch aMax.Cmp(bMax) {
	case -1:
		return aMax, aExcl
	case 1:
		return bMax, bExcl
	default:
		return aMax, aExcl || bExcl
	}
}

// numericIsEmpty reports whether an interval collapses to ⊥: min > max, or
// min == max with either bound exclusive (spec §3 invariant).
func numericIsEmpty(c *NumberConstraints) bool {
	if c.Min == nil || c.Max == nil {
		return false
	}
	cmp := c.Min.Cmp(c.Max)
	if cmp > 0 {
		return true
	}
	if cmp == 0 && (c.ExclMin || c.ExclMax) {
		return true
	}
	return false
}

// numericContains decides c1 <: c2 for two same-kind (Number or Integer)
// constraint sets (spec §4.4, points 2–3). Kind relation (point 1) is
// handled by the caller, which also intersects enum-sets (point 4).
func numericContains(ctx context.Context, c1, c2 *NumberConstraints) bool {
	ok := true

	if !minContains(c2.Min, c2.ExclMin, c1.Min, c1.ExclMin) {
		addReason(ctx, "num__01", "minimum constraint not contained")
		ok = false
	}
	if !maxContains(c2.Max, c2.ExclMax, c1.Max, c1.ExclMax) {
		addReason(ctx, "num__02", "maximum constraint not contained")
		ok = false
	}
	if c2.Multiple != nil {
		if c1.Multiple == nil || !ratDivides(c1.Multiple, c2.Multiple) {
			addReason(ctx, "num__03", "multipleOf constraint not contained")
			ok = false
		}
	}

	return ok
}

// minContains reports whether [outerMin,...) contains [innerMin,...),
// i.e. outerMin <= innerMin, treating exclusivity correctly at equality.
func minContains(outerMin *big.Rat, outerExcl bool, innerMin *big.Rat, innerExcl bool) bool {
	if outerMin == nil {
		return true // outer is unbounded below
	}
	if innerMin == nil {
		return false // inner unbounded below, outer bounded: can't contain
	}
	cmp := innerMin.Cmp(outerMin)
	if cmp > 0 {
		return true
	}
	if cmp < 0 {
		return false
	}
	// equal bounds: inner must be at least as exclusive as outer
	return innerExcl || !outerExcl
}

func maxContains(outerMax *big.Rat, outerExcl bool, innerMax *big.Rat, innerExcl bool) bool {
	if outerMax == nil {
		return true
	}
	if innerMax == nil {
		return false
	}
	cmp := innerMax.Cmp(outerMax)
	if cmp < 0 {
		return true
	}
	if cmp > 0 {
		return false
	}
	return innerExcl || !outerExcl
}

// numericNegate computes ¬c as a union of at most two intervals (spec
// §4.8): the complement of [min,max] is (-∞,min) ∪ (max,∞), with
// exclusivity flipped at each former bound. multipleOf is dropped, since
// negation over ℝ does not constrain divisibility.
func numericNegate(c *NumberConstraints) []*NumberConstraints {
	var out []*NumberConstraints
	if c.Min != nil {
		out = append(out, &NumberConstraints{Max: c.Min, ExclMax: !c.ExclMin})
	}
	if c.Max != nil {
		out = append(out, &NumberConstraints{Min: c.Max, ExclMin: !c.ExclMax})
	}
	if len(out) == 0 {
		// Negating an unconstrained number/integer yields ⊥ at this kind
		// (every number was accepted, so none remain).
		return nil
	}
	return out
}
