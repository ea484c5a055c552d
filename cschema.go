package subtype

// CSchema is either a *CTS (a single-kind canonical type schema) or a
// Union (a disjoint sum of CTSs, at most one per kind). It is the type
// every canonicalized schema is represented as.
type CSchema interface {
	isCSchema()
}

// CTS is a canonical type schema: a single JSON kind plus its
// kind-specific constraint payload, an optional enum-set narrowing it to a
// finite list of literals, and an all-reject flag representing ⊥ at that
// kind.
type CTS struct {
	Kind   Kind
	Reject bool // true => this CTS accepts nothing (⊥ at Kind)
	Enum   []any

	String *StringConstraints
	Number *NumberConstraints
	Array  *ArrayConstraints
	Object *ObjectConstraints
}

func (*CTS) isCSchema() {}

// Union is an ordered sequence of CTSs of distinct kinds, interpreted as a
// disjunction. The empty Union is ⊥. A Union containing one default CTS
// per kind is ⊤.
type Union []*CTS

func (Union) isCSchema() {}

// Bottom returns ⊥, the canonical form accepting no instances.
func Bottom() CSchema { return Union{} }

// Top returns ⊤, the canonical form accepting every instance: one default
// (unconstrained) CTS per kind.
func Top() CSchema {
	u := make(Union, 0, len(AllKinds))
	for _, k := range AllKinds {
		u = append(u, defaultCTS(k))
	}
	return u
}

func defaultCTS(k Kind) *CTS {
	cts := &CTS{Kind: k}
	switch k {
	case KindString:
		cts.String = &StringConstraints{MaxLength: nil}
	case KindNumber, KindInteger:
		cts.Number = &NumberConstraints{}
	case KindArray:
		cts.Array = &ArrayConstraints{Tail: Top()}
	case KindObject:
		cts.Object = &ObjectConstraints{AdditionalProperties: Top()}
	}
	return cts
}

// isBottom reports whether a CSchema accepts no instances at all.
func isBottom(c CSchema) bool {
	switch v := c.(type) {
	case *CTS:
		return v.Reject || (v.Enum != nil && len(v.Enum) == 0)
	case Union:
		for _, m := range v {
			if !isBottom(m) {
				return false
			}
		}
		return true
	}
	return false
}

// members returns the CTS members of a CSchema as a slice, regardless of
// whether it is a single CTS or a Union.
func members(c CSchema) []*CTS {
	switch v := c.(type) {
	case *CTS:
		return []*CTS{v}
	case Union:
		return []*CTS(v)
	}
	return nil
}

// byKind returns the member of the given kind in a CSchema, or nil.
func byKind(c CSchema, k Kind) *CTS {
	for _, m := range members(c) {
		if m.Kind == k {
			return m
		}
	}
	return nil
}

// asUnion normalizes any CSchema to Union form, dropping all-reject members
// (they contribute nothing to the disjunction).
func asUnion(c CSchema) Union {
	var u Union
	for _, m := range members(c) {
		if isBottom(m) {
			continue
		}
		u = append(u, m)
	}
	return u
}

// simplify collapses a Union of one non-reject member back to a bare CTS,
// and an empty/all-reject Union to Bottom(). This keeps single-kind results
// ergonomic without violating the canonical-union invariant.
func simplify(c CSchema) CSchema {
	u := asUnion(c)
	if len(u) == 0 {
		return Union{}
	}
	if len(u) == 1 {
		return u[0]
	}
	return u
}
