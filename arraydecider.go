package subtype

import (
	"context"
	"strconv"
)

// ArrayConstraints is the Array payload of a CTS (spec §3, §4.6). Tuple
// mode and list mode are unified: Prefix holds the per-index schemas (nil
// in pure list mode) and Tail holds the schema every index at or beyond
// len(Prefix) must satisfy — the "items" schema in list mode, or the
// canonicalized "additionalItems" in tuple mode. additionalItems:false
// canonicalizes like any other false schema, to Bottom(), so Tail==⊥
// already means "no items allowed past the prefix" without special
// casing here.
type ArrayConstraints struct {
	Prefix      []CSchema
	Tail        CSchema
	MinItems    int
	MaxItems    *int // nil => ∞
	UniqueItems bool
}

// effectiveAt returns the schema an array schema applies at index i.
func (c *ArrayConstraints) effectiveAt(i int) CSchema {
	if i < len(c.Prefix) {
		return c.Prefix[i]
	}
	return c.Tail
}

func maxLen(a, b *ArrayConstraints) int {
	n := len(a.Prefix)
	if len(b.Prefix) > n {
		n = len(b.Prefix)
	}
	return n
}

// arrayMeet intersects two Array constraint sets index-wise up to the
// longer prefix, meeting tails and cardinality bounds as well.
func arrayMeet(ctx context.Context, a, b *ArrayConstraints) (*ArrayConstraints, bool) {
	out := &ArrayConstraints{}
	out.MinItems = a.MinItems
	if b.MinItems > out.MinItems {
		out.MinItems = b.MinItems
	}
	out.MaxItems = tighterIntMax(a.MaxItems, b.MaxItems)
	out.UniqueItems = a.UniqueItems || b.UniqueItems

	n := maxLen(a, b)
	ok := true
	out.Prefix = make([]CSchema, n)
	for i := 0; i < n; i++ {
		m := meet(a.effectiveAt(i), b.effectiveAt(i))
		if isBottom(m) {
			ok = false
		}
		out.Prefix[i] = m
	}
	out.Tail = meet(a.Tail, b.Tail)

	if out.MaxItems != nil && out.MinItems > *out.MaxItems {
		ok = false
	}
	return out, ok
}

// arrayContains decides c1 <: c2 for two Array constraint sets (spec
// §4.6): cardinality bounds must be at least as tight, uniqueItems may
// only be added, never dropped, and every index c2 constrains must be
// individually contained by the corresponding effective schema in c1.
func arrayContains(ctx context.Context, c1, c2 *ArrayConstraints) bool {
	ok := true

	if c1.MinItems < c2.MinItems {
		addReason(ctx, "arr__01", "minItems constraint not contained")
		ok = false
	}
	if c2.MaxItems != nil && (c1.MaxItems == nil || *c1.MaxItems > *c2.MaxItems) {
		addReason(ctx, "arr__02", "maxItems constraint not contained")
		ok = false
	}
	if c2.UniqueItems && !c1.UniqueItems {
		addReason(ctx, "arr__03", "uniqueItems constraint not contained")
		ok = false
	}

	n := maxLen(c1, c2)
	for i := 0; i < n; i++ {
		pop := pushPath(ctx, indexSegment(i))
		if !isSubtype(ctx, c1.effectiveAt(i), c2.effectiveAt(i)) {
			addReason(ctx, "arr__04", "item schema not contained at index")
			ok = false
		}
		pop()
	}

	// Indices past both prefixes fall to the two tails; they only matter if
	// c1 can actually be longer than the prefixes.
	if c1.MaxItems == nil || *c1.MaxItems > n {
		pop := pushPath(ctx, indexSegment(n))
		if !isSubtype(ctx, c1.Tail, c2.Tail) {
			addReason(ctx, "arr__04", "item schema not contained at index")
			ok = false
		}
		pop()
	}

	return ok
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// arrayNegate computes ¬c for an Array CTS (spec §4.8). Only the
// unconstrained array schema (no prefix, Tail == ⊤, no cardinality or
// uniqueItems restriction) can be negated within this lattice: its
// complement at Array kind is simply ⊥ (every array is rejected, since
// every array was previously accepted). Anything more constrained would
// require expressing "NOT every item matches T", which this engine does
// not attempt (spec §4.8, §10 Non-goals).
func arrayNegate(c *ArrayConstraints) (*ArrayConstraints, error) {
	if len(c.Prefix) == 0 && isUnconstrainedItemSchema(c.Tail) &&
		c.MinItems == 0 && c.MaxItems == nil && !c.UniqueItems {
		return nil, nil // ⊥ at Array kind
	}
	return nil, ErrUnsupportedNegatedArray
}

// isUnconstrainedItemSchema approximates "c == Top()": Top() always
// canonicalizes to a Union with one default, permissive CTS per kind.
func isUnconstrainedItemSchema(c CSchema) bool {
	u, ok := c.(Union)
	return ok && len(u) == len(AllKinds)
}
