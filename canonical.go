package subtype

// Canonicalize converts a raw, reference-resolved Schema tree into its
// canonical form (spec §4.2): a Union of at most one CTS per kind, or a
// bare CTS. side names which half of a top-level comparison this call
// is canonicalizing ("LHS" or "RHS"), threaded through only to label
// UnsupportedRecursiveRef errors.
func Canonicalize(s *Schema, side string) (CSchema, error) {
	return canon(s, side, map[*Schema]CSchema{}, map[*Schema]bool{})
}

func canon(s *Schema, side string, cache map[*Schema]CSchema, visiting map[*Schema]bool) (CSchema, error) {
	if s == nil {
		return Top(), nil
	}
	if s.Boolean != nil {
		if *s.Boolean {
			return Top(), nil
		}
		return Bottom(), nil
	}
	if cached, ok := cache[s]; ok {
		return cached, nil
	}
	if visiting[s] {
		return nil, &RecursiveRefError{WhichSide: side, Ref: s.Ref}
	}
	visiting[s] = true
	defer delete(visiting, s)

	if s.Ref != "" {
		result, err := canon(s.ResolvedRef, side, cache, visiting)
		if err != nil {
			return nil, err
		}
		cache[s] = result
		return result, nil
	}

	result, err := canonCore(s, side, cache, visiting)
	if err != nil {
		return nil, err
	}
	cache[s] = result
	return result, nil
}

// canonCore combines a schema's own type/enum/keyword constraints with
// its boolean connectives (spec §4.2): allOf meets, anyOf joins, oneOf
// disjoint-ifies via negation, not negates. All combine by meet, since a
// schema means "an instance valid against every applicable keyword
// group simultaneously."
func canonCore(s *Schema, side string, cache map[*Schema]CSchema, visiting map[*Schema]bool) (CSchema, error) {
	result, err := ownKeywordCSchema(s, side, cache, visiting)
	if err != nil {
		return nil, err
	}

	for _, member := range s.AllOf {
		c, err := canon(member, side, cache, visiting)
		if err != nil {
			return nil, err
		}
		result = meet(result, c)
	}

	if len(s.AnyOf) > 0 {
		disj := CSchema(Bottom())
		for _, member := range s.AnyOf {
			c, err := canon(member, side, cache, visiting)
			if err != nil {
				return nil, err
			}
			disj = join(disj, c)
		}
		result = meet(result, disj)
	}

	if len(s.OneOf) > 0 {
		members := make([]CSchema, 0, len(s.OneOf))
		for _, member := range s.OneOf {
			c, err := canon(member, side, cache, visiting)
			if err != nil {
				return nil, err
			}
			members = append(members, c)
		}
		oneOf, err := canonicalizeOneOf(members)
		if err != nil {
			return nil, err
		}
		result = meet(result, oneOf)
	}

	if s.Not != nil {
		notC, err := canon(s.Not, side, cache, visiting)
		if err != nil {
			return nil, err
		}
		negated, err := negate(notC)
		if err != nil {
			return nil, err
		}
		result = meet(result, negated)
	}

	return result, nil
}

// canonicalizeOneOf expands oneOf(s1,...,sn) into pairwise-disjoint
// terms via negation — s_i ∧ ¬(s_1 ∨ ... ∨ s_{i-1} ∨ s_{i+1} ∨ ... ∨
// s_n) for each i, joined together — so that, unlike a plain anyOf, an
// instance satisfying two or more members is correctly excluded. This
// requires negating a join of the other members, which fails when that
// join carries a constrained string, array or object payload (see
// negate.go); a oneOf whose members carry such payloads surfaces that
// failure rather than silently mis-deciding it.
func canonicalizeOneOf(members []CSchema) (CSchema, error) {
	result := CSchema(Bottom())
	for i, m := range members {
		others := CSchema(Bottom())
		for j, other := range members {
			if j == i {
				continue
			}
			others = join(others, other)
		}
		negOthers, err := negate(others)
		if err != nil {
			return nil, err
		}
		result = join(result, meet(m, negOthers))
	}
	return result, nil
}

// ownKeywordCSchema builds the CSchema contributed directly by a
// schema's type/enum/const and per-kind keyword groups, independent of
// its allOf/anyOf/oneOf/not connectives.
func ownKeywordCSchema(s *Schema, side string, cache map[*Schema]CSchema, visiting map[*Schema]bool) (CSchema, error) {
	kinds, err := kindsForType(s.Type)
	if err != nil {
		return nil, err
	}

	var out Union
	for _, k := range kinds {
		cts := &CTS{Kind: k}
		switch k {
		case KindString:
			cts.String = extractStringConstraints(s)
		case KindNumber, KindInteger:
			cts.Number = extractNumberConstraints(s)
		case KindArray:
			arr, err := extractArrayConstraints(s, side, cache, visiting)
			if err != nil {
				return nil, err
			}
			cts.Array = arr
		case KindObject:
			obj, err := extractObjectConstraints(s, side, cache, visiting)
			if err != nil {
				return nil, err
			}
			cts.Object = obj
		}
		out = append(out, cts)
	}
	result := simplify(out)

	if len(s.Enum) > 0 || (s.Const != nil && s.Const.IsSet) {
		literals := s.Enum
		if s.Const != nil && s.Const.IsSet {
			literals = []any{s.Const.Value}
		}
		byKind, err := groupLiteralsByKind(literals)
		if err != nil {
			return nil, err
		}
		result = meet(result, buildEnumUnion(byKind, kinds))
	}

	return result, nil
}

func kindsForType(t SchemaType) ([]Kind, error) {
	if len(t) == 0 {
		return AllKinds[:], nil
	}
	seen := map[Kind]bool{}
	var out []Kind
	for _, name := range t {
		k, ok := kindFromName(name)
		if !ok {
			return nil, ErrMalformedSchema
		}
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out, nil
}

func extractStringConstraints(s *Schema) *StringConstraints {
	out := &StringConstraints{Pattern: s.Pattern}
	if s.MinLength != nil {
		out.MinLength = int(*s.MinLength)
	}
	if s.MaxLength != nil {
		v := int(*s.MaxLength)
		out.MaxLength = &v
	}
	return out
}

func extractNumberConstraints(s *Schema) *NumberConstraints {
	out := &NumberConstraints{}
	if s.Minimum != nil {
		out.Min = s.Minimum.Rat
	}
	if s.Maximum != nil {
		out.Max = s.Maximum.Rat
	}
	out.ExclMin = s.ExclusiveMinimum != nil && *s.ExclusiveMinimum
	out.ExclMax = s.ExclusiveMaximum != nil && *s.ExclusiveMaximum
	if s.MultipleOf != nil {
		out.Multiple = s.MultipleOf.Rat
	}
	return out
}

func extractArrayConstraints(s *Schema, side string, cache map[*Schema]CSchema, visiting map[*Schema]bool) (*ArrayConstraints, error) {
	out := &ArrayConstraints{}

	if len(s.PrefixItems) > 0 {
		for _, item := range s.PrefixItems {
			c, err := canon(item, side, cache, visiting)
			if err != nil {
				return nil, err
			}
			out.Prefix = append(out.Prefix, c)
		}
		tail, err := canon(s.AdditionalItems, side, cache, visiting)
		if err != nil {
			return nil, err
		}
		out.Tail = tail
	} else {
		tail, err := canon(s.Items, side, cache, visiting)
		if err != nil {
			return nil, err
		}
		out.Tail = tail
	}

	if s.MinItems != nil {
		out.MinItems = int(*s.MinItems)
	}
	if s.MaxItems != nil {
		v := int(*s.MaxItems)
		out.MaxItems = &v
	}
	out.UniqueItems = s.UniqueItems != nil && *s.UniqueItems
	return out, nil
}

func extractObjectConstraints(s *Schema, side string, cache map[*Schema]CSchema, visiting map[*Schema]bool) (*ObjectConstraints, error) {
	out := &ObjectConstraints{
		Properties:        map[string]CSchema{},
		PatternProperties: map[string]CSchema{},
		Required:          map[string]bool{},
	}

	if s.Properties != nil {
		for name, sub := range *s.Properties {
			c, err := canon(sub, side, cache, visiting)
			if err != nil {
				return nil, err
			}
			out.Properties[name] = c
		}
	}
	if s.PatternProperties != nil {
		for pattern, sub := range *s.PatternProperties {
			c, err := canon(sub, side, cache, visiting)
			if err != nil {
				return nil, err
			}
			out.PatternProperties[pattern] = c
		}
	}

	addl, err := canon(s.AdditionalProperties, side, cache, visiting)
	if err != nil {
		return nil, err
	}
	out.AdditionalProperties = addl

	for _, name := range s.Required {
		out.Required[name] = true
	}
	if s.MinProperties != nil {
		out.MinProperties = int(*s.MinProperties)
	}
	if s.MaxProperties != nil {
		v := int(*s.MaxProperties)
		out.MaxProperties = &v
	}
	return out, nil
}

// groupLiteralsByKind buckets enum/const literals by JSON kind. Array-
// and object-typed literals are rejected outright: this engine does not
// attempt structural containment of literal arrays/objects against
// schema constraints (spec §4.2, §10 Non-goals).
func groupLiteralsByKind(literals []any) (map[Kind][]any, error) {
	out := map[Kind][]any{}
	for _, v := range literals {
		k := kindOfLiteral(v)
		if k == KindArray || k == KindObject {
			return nil, ErrUnsupportedEnumCanonicalization
		}
		out[k] = append(out[k], v)
	}
	return out, nil
}

func buildEnumUnion(byKind map[Kind][]any, allowedKinds []Kind) CSchema {
	allowed := map[Kind]bool{}
	for _, k := range allowedKinds {
		allowed[k] = true
	}
	var out Union
	for k, literals := range byKind {
		if !allowed[k] {
			continue
		}
		out = append(out, &CTS{Kind: k, Enum: literals})
	}
	return simplify(out)
}
