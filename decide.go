package subtype

import (
	"context"
	"math/big"
)

// isSubtype decides c1 <: c2 over the full canonical lattice (spec §9):
// a Union is a subtype of a target iff every one of its members is
// (since the Union's instance space is the sum of its members'), and ⊥
// is a subtype of everything, vacuously.
func isSubtype(ctx context.Context, c1, c2 CSchema) bool {
	if ctx.Err() != nil {
		// A deadline (DeadlineOption) has already expired: stop recursing
		// rather than grind through the rest of the lattice. The top-level
		// caller in subtype.go turns this into ErrDecisionTimeout.
		return false
	}
	if isBottom(c1) {
		return true
	}
	if isBottom(c2) {
		addReason(ctx, "top__01", "left side accepts instances but right side accepts none")
		return false
	}
	ok := true
	for _, m := range members(c1) {
		if isBottom(m) {
			continue
		}
		if !containsMember(ctx, m, c2) {
			ok = false
		}
	}
	return ok
}

// containsMember decides whether a single-kind CTS is a subtype of a
// (possibly multi-kind) target. Integer always bridges to a target's
// Number member as well as its own Integer member, since every integer is
// also a number (spec §9, "Integer <: Number always"). Number bridges to
// a target's Integer member only when its own multipleOf already forces
// every accepted value to be an integer (spec §4.4 point 1) — otherwise
// that candidate is refused with num__04 rather than silently dropped,
// since a bare Number schema is not narrower than Integer in general.
func containsMember(ctx context.Context, c1 *CTS, target CSchema) bool {
	var candidates []*CTS
	if m := byKind(target, c1.Kind); m != nil {
		candidates = append(candidates, m)
	}
	if c1.Kind == KindInteger {
		if m := byKind(target, KindNumber); m != nil {
			candidates = append(candidates, m)
		}
	}
	if c1.Kind == KindNumber {
		if m := byKind(target, KindInteger); m != nil {
			if isIntegerValuedMultiple(c1.Number) {
				candidates = append(candidates, m)
			} else {
				addReason(ctx, "num__04", "type narrowing to integer violated: multipleOf is not a positive integer")
			}
		}
	}

	if len(candidates) == 0 {
		addReason(ctx, "kind__01", "right side does not accept kind "+c1.Kind.String())
		return false
	}

	for _, m := range candidates {
		if containsCTS(ctx, c1, m) {
			return true
		}
	}
	addReason(ctx, "kind__02", "no matching right-side branch contains this "+c1.Kind.String()+" schema")
	return false
}

// isIntegerValuedMultiple reports whether every value satisfying n's
// multipleOf constraint is necessarily an integer, i.e. multipleOf is set
// to a positive whole number.
func isIntegerValuedMultiple(n *NumberConstraints) bool {
	return n.Multiple != nil && n.Multiple.IsInt() && n.Multiple.Sign() > 0
}

// effectiveNumber returns c1's Number payload with an implicit multipleOf
// 1 when c1.Kind is Integer and it carries no explicit multipleOf: every
// integer is, by definition, a multiple of 1, and numericContains needs
// that fact made explicit to decide an Integer <: Number(multipleOf: N)
// comparison correctly.
func effectiveNumber(c1 *CTS) *NumberConstraints {
	n := c1.Number
	if c1.Kind == KindInteger && n.Multiple == nil {
		cp := *n
		cp.Multiple = big.NewRat(1, 1)
		return &cp
	}
	return n
}

// containsCTS decides containment between two same-payload-kind CTSs
// (c1.Kind and c2.Kind may differ only in the Integer/Number bridging
// case, since both carry a *NumberConstraints payload).
func containsCTS(ctx context.Context, c1, c2 *CTS) bool {
	if c1.Enum != nil {
		ok := true
		code := "enum__01"
		if c1.Kind == KindNumber || c1.Kind == KindInteger {
			code = "num__05"
		}
		for _, v := range c1.Enum {
			if !literalSatisfiesCTS(v, c2) {
				addReason(ctx, code, "enum literal not accepted by right side")
				ok = false
			}
		}
		return ok
	}

	if c2.Reject {
		addReason(ctx, "kind__03", "right side rejects this kind entirely")
		return false
	}

	if c2.Enum != nil {
		return finiteKindSubsetOfEnum(c1.Kind, c2.Enum)
	}

	switch c1.Kind {
	case KindNull, KindBoolean:
		return true
	case KindString:
		return stringContains(ctx, c1.String, c2.String)
	case KindNumber, KindInteger:
		return numericContains(ctx, effectiveNumber(c1), c2.Number)
	case KindArray:
		return arrayContains(ctx, c1.Array, c2.Array)
	case KindObject:
		return objectContains(ctx, c1.Object, c2.Object)
	}
	return false
}

// literalSatisfiesCTS reports whether a concrete literal value would be
// accepted by a CTS's payload constraints, used to check enum/const
// literals on the left against a non-enum right side.
func literalSatisfiesCTS(v any, c *CTS) bool {
	if c.Reject {
		return false
	}
	if c.Enum != nil {
		for _, ev := range c.Enum {
			if literalEqual(v, ev) {
				return true
			}
		}
		return false
	}
	switch c.Kind {
	case KindNull, KindBoolean:
		return true
	case KindString:
		s, ok := v.(string)
		if !ok {
			return false
		}
		return literalStringSatisfies(s, c.String)
	case KindNumber, KindInteger:
		r := literalToRat(v)
		if r == nil {
			return false
		}
		return literalNumberSatisfies(r, c.Number)
	}
	return false
}

func literalStringSatisfies(s string, c *StringConstraints) bool {
	n := len([]rune(s))
	if n < c.MinLength {
		return false
	}
	if c.MaxLength != nil && n > *c.MaxLength {
		return false
	}
	if c.Pattern != nil {
		matched, err := regexMatches(*c.Pattern, s)
		if err != nil || !matched {
			return false
		}
	}
	return true
}

func literalNumberSatisfies(r *big.Rat, c *NumberConstraints) bool {
	if c.Min != nil {
		cmp := r.Cmp(c.Min)
		if cmp < 0 || (cmp == 0 && c.ExclMin) {
			return false
		}
	}
	if c.Max != nil {
		cmp := r.Cmp(c.Max)
		if cmp > 0 || (cmp == 0 && c.ExclMax) {
			return false
		}
	}
	if c.Multiple != nil && !ratDivides(r, c.Multiple) {
		return false
	}
	return true
}

// finiteKindSubsetOfEnum reports whether every instance of a kind that
// carries no further constraints is already listed in a target enum.
// Only Null (one value) and Boolean (two values) have a small enough
// universe for this to ever hold; every other unconstrained kind is
// infinite, so it conservatively fails (spec §4.2 enum handling).
func finiteKindSubsetOfEnum(k Kind, enum []any) bool {
	switch k {
	case KindNull:
		return enumContainsLiteral(enum, nil)
	case KindBoolean:
		return enumContainsLiteral(enum, true) && enumContainsLiteral(enum, false)
	default:
		return false
	}
}

func enumContainsLiteral(enum []any, v any) bool {
	for _, e := range enum {
		if literalEqual(e, v) {
			return true
		}
	}
	return false
}
