package subtype

// negate computes ¬c over the full kind lattice (spec §4.8): De Morgan
// over a Union (¬(A∨B) = ¬A∧¬B, so negate cross-meets, kind by kind,
// every kind's complement across all member CTSs), with ⊤ negating to ⊥
// and vice versa.
func negate(c CSchema) (CSchema, error) {
	u := asUnion(c)
	if len(u) == 0 {
		return Top(), nil
	}

	// Start from ⊤ and, for every member CTS, remove the instances it
	// accepts: the running result is met with that CTS's own negation at
	// its kind, and kept as-is (still ⊤) at every other kind, since the
	// member said nothing about kinds it doesn't name.
	result := Top()
	for _, m := range u {
		negated, err := negateCTS(m)
		if err != nil {
			return nil, err
		}
		result = meet(result, negated)
	}
	return result, nil
}

// negateCTS negates a single CTS, producing a CSchema that accepts
// every instance of every kind except the ones this CTS accepted.
func negateCTS(c *CTS) (CSchema, error) {
	u := make(Union, 0, len(AllKinds))
	for _, k := range AllKinds {
		if k == c.Kind {
			continue
		}
		u = append(u, defaultCTS(k))
	}

	if c.Enum != nil {
		// Negating an enum at its own kind: reinterpret as "not one of
		// these literals" — representable as the default CTS at that
		// kind since this engine does not track excluded-literal sets
		// outside of Enum narrowing.
		u = append(u, defaultCTS(c.Kind))
		return simplify(u), nil
	}

	switch c.Kind {
	case KindNull, KindBoolean:
		// these kinds carry no payload; negating "is Null" rejects Null
		// entirely and accepts every other kind unconstrained, which u
		// already is.
	case KindString:
		neg, err := stringNegate(c.String)
		if err != nil {
			return nil, err
		}
		if neg != nil {
			u = append(u, &CTS{Kind: KindString, String: neg})
		}
	case KindNumber, KindInteger:
		for _, n := range numericNegate(c.Number) {
			u = append(u, &CTS{Kind: c.Kind, Number: n})
		}
	case KindArray:
		arr, err := arrayNegate(c.Array)
		if err != nil {
			return nil, err
		}
		if arr != nil {
			u = append(u, &CTS{Kind: KindArray, Array: arr})
		}
	case KindObject:
		obj, err := objectNegate(c.Object)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			u = append(u, &CTS{Kind: KindObject, Object: obj})
		}
	}

	return simplify(u), nil
}

// stringNegate mirrors arrayNegate/objectNegate: only the fully
// unconstrained string schema has a representable complement (⊥) within
// this lattice. A length- or pattern-constrained string schema's true
// complement is a union of cases this engine does not track, so it is
// refused rather than silently under- or over-approximated.
func stringNegate(c *StringConstraints) (*StringConstraints, error) {
	if c.MinLength == 0 && c.MaxLength == nil && c.Pattern == nil {
		return nil, nil
	}
	return nil, ErrUnsupportedNegatedString
}
