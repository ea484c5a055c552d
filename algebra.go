package subtype

import "context"

// meet computes the greatest lower bound of two canonical schemas: the
// schema accepting exactly the instances both accept (spec §4.3). Union
// meet distributes kind-wise; only same-kind CTS pairs can intersect to
// anything but ⊥.
func meet(a, b CSchema) CSchema {
	ctx := context.Background()
	var out Union
	for _, ka := range members(a) {
		for _, kb := range members(b) {
			if ka.Kind != kb.Kind {
				continue
			}
			m := meetCTS(ctx, ka, kb)
			if !isBottom(m) {
				out = append(out, m)
			}
		}
	}
	return simplify(mergeSameKind(out))
}

// meetCTS intersects two same-kind CTSs, including enum narrowing. spec
// §4.3: Integer meets Number by keeping the Integer kind (every Integer
// is a Number, so the intersection of "is an Integer" and "is a Number
// in [a,b]" is representable as an Integer CTS with that bound).
func meetCTS(ctx context.Context, a, b *CTS) *CTS {
	out := &CTS{Kind: a.Kind}

	if a.Enum != nil || b.Enum != nil {
		out.Enum = intersectEnums(a, b)
		if len(out.Enum) == 0 {
			out.Reject = true
		}
		return out
	}

	switch a.Kind {
	case KindNull, KindBoolean:
		// no payload: if both accept this kind unconditionally, so does
		// the meet.
	case KindString:
		s, ok := stringMeet(ctx, a.String, b.String)
		out.String = s
		out.Reject = !ok
	case KindNumber, KindInteger:
		n, ok := numericMeet(a.Number, b.Number)
		out.Number = n
		out.Reject = !ok
	case KindArray:
		arr, ok := arrayMeet(ctx, a.Array, b.Array)
		out.Array = arr
		out.Reject = !ok
	case KindObject:
		obj, ok := objectMeet(ctx, a.Object, b.Object)
		out.Object = obj
		out.Reject = !ok
	}
	return out
}

func intersectEnums(a, b *CTS) []any {
	aEnum := a.Enum
	if aEnum == nil {
		return b.Enum
	}
	bEnum := b.Enum
	if bEnum == nil {
		return aEnum
	}
	var out []any
	for _, av := range aEnum {
		for _, bv := range bEnum {
			if literalEqual(av, bv) {
				out = append(out, av)
				break
			}
		}
	}
	return out
}

func literalEqual(a, b any) bool {
	ra, rb := literalToRat(a), literalToRat(b)
	if ra != nil && rb != nil {
		return ra.Cmp(rb) == 0
	}
	return a == b
}

// join computes the least upper bound of two canonical schemas: the
// schema accepting every instance either accepts. Same-kind CTS members
// fold into one CTS per kind via mergeSameKind; distinct kinds just
// accumulate into the resulting Union unchanged.
func join(a, b CSchema) CSchema {
	var out Union
	out = append(out, members(a)...)
	out = append(out, members(b)...)
	return simplify(mergeSameKind(out))
}

// mergeSameKind folds a Union's members so at most one CTS per kind
// remains, joining duplicates by accumulating their enums (when both
// sides are enum-only) and otherwise replacing them with the kind's
// default, unconstrained CTS. That replacement is an upper bound of
// both operands, not their exact join: the merged schema can accept
// instances neither operand accepts. join feeds the anyOf and oneOf
// canonicalization in canonical.go.
func mergeSameKind(u Union) Union {
	byK := map[Kind]*CTS{}
	var order []Kind
	for _, m := range u {
		if isBottom(m) {
			continue
		}
		if existing, ok := byK[m.Kind]; ok {
			byK[m.Kind] = widenCTS(existing, m)
		} else {
			byK[m.Kind] = m
			order = append(order, m.Kind)
		}
	}
	out := make(Union, 0, len(order))
	for _, k := range order {
		out = append(out, byK[k])
	}
	return out
}

func widenCTS(a, b *CTS) *CTS {
	if a.Enum != nil && b.Enum != nil {
		return &CTS{Kind: a.Kind, Enum: unionEnums(a.Enum, b.Enum)}
	}
	// Fall back to the default, unconstrained CTS for this kind, which
	// contains both operands: the union of two constrained payloads of
	// the same kind is not computed here.
	return defaultCTS(a.Kind)
}

func unionEnums(a, b []any) []any {
	out := append([]any{}, a...)
	for _, bv := range b {
		found := false
		for _, av := range a {
			if literalEqual(av, bv) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, bv)
		}
	}
	return out
}
