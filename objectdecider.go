package subtype

import (
	"context"
	"regexp"
	"sort"
)

// ObjectConstraints is the Object payload of a CTS (spec §3, §4.7).
// Properties and PatternProperties map names/patterns to the schema
// their matching values must satisfy. AdditionalProperties is the
// schema every other property's value must satisfy (⊥ when it is the
// literal "additionalProperties: false").
type ObjectConstraints struct {
	Properties           map[string]CSchema
	PatternProperties    map[string]CSchema
	AdditionalProperties CSchema
	Required             map[string]bool
	MinProperties        int
	MaxProperties        *int // nil => ∞
}

// effectiveFor returns the schema a property name must satisfy under c:
// the Properties entry if present, met with every PatternProperties
// entry whose pattern matches the name, met with AdditionalProperties
// when the name is not explicitly named in Properties. This mirrors
// Draft-4 validation semantics: a named property is exempt from
// AdditionalProperties, but not from a PatternProperties entry that
// happens to also match its name.
func (c *ObjectConstraints) effectiveFor(name string) CSchema {
	named, isNamed := c.Properties[name]
	var result CSchema
	if isNamed {
		result = named
	} else {
		result = c.AdditionalProperties
	}
	for pattern, schema := range c.PatternProperties {
		if patternMatchesName(pattern, name) {
			result = meet(result, schema)
		}
	}
	return result
}

// patternMatchesName reports whether a PatternProperties key matches a
// concrete property name. regexp.MatchString already searches rather
// than requiring a full match, matching Draft-4 pattern semantics.
func patternMatchesName(pattern, name string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(name)
}

// relevantNames returns every property name either side names, sorted,
// so containment and meet reasoning only need to examine finitely many
// representative keys instead of the infinite name space.
func relevantNames(a, b *ObjectConstraints) []string {
	set := map[string]bool{}
	for name := range a.Properties {
		set[name] = true
	}
	for name := range b.Properties {
		set[name] = true
	}
	for name := range a.Required {
		set[name] = true
	}
	for name := range b.Required {
		set[name] = true
	}
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// objectMeet intersects two Object constraint sets (spec §4.7 "Meet").
// Properties/PatternProperties unions carry both sides' entries, keyed
// entries present on both sides meet their value schemas, Required
// unions, AdditionalProperties meets, and MinProperties/MaxProperties
// tighten as usual.
func objectMeet(ctx context.Context, a, b *ObjectConstraints) (*ObjectConstraints, bool) {
	out := &ObjectConstraints{
		Properties:        map[string]CSchema{},
		PatternProperties: map[string]CSchema{},
		Required:          map[string]bool{},
	}
	ok := true

	for name, s := range a.Properties {
		out.Properties[name] = s
	}
	for name, s := range b.Properties {
		if existing, had := out.Properties[name]; had {
			m := meet(existing, s)
			if isBottom(m) {
				ok = false
			}
			out.Properties[name] = m
		} else {
			out.Properties[name] = s
		}
	}
	for pattern, s := range a.PatternProperties {
		out.PatternProperties[pattern] = s
	}
	for pattern, s := range b.PatternProperties {
		if existing, had := out.PatternProperties[pattern]; had {
			out.PatternProperties[pattern] = meet(existing, s)
		} else {
			out.PatternProperties[pattern] = s
		}
	}
	out.AdditionalProperties = meet(a.AdditionalProperties, b.AdditionalProperties)

	for name := range a.Required {
		out.Required[name] = true
	}
	for name := range b.Required {
		out.Required[name] = true
	}

	out.MinProperties = a.MinProperties
	if b.MinProperties > out.MinProperties {
		out.MinProperties = b.MinProperties
	}
	out.MaxProperties = tighterIntMax(a.MaxProperties, b.MaxProperties)
	if out.MaxProperties != nil && out.MinProperties > *out.MaxProperties {
		ok = false
	}

	return out, ok
}

// objectContains decides c1 <: c2 for two Object constraint sets (spec
// §4.7), the hardest single piece of the lattice. The approach:
//
//  1. Cardinality and Required must be at least as tight on c1.
//  2. For every property name either side lists in Properties or
//     Required, c1's effective schema at that name must be contained in
//     c2's effective schema at that name.
//  3. Whatever c1 allows beyond the names c2 explicitly constrains
//     (c1's own AdditionalProperties, and any PatternProperties entry
//     of c1 whose pattern is not provably covered by a c2 pattern) must
//     be contained in c2's AdditionalProperties.
//  4. Symmetrically, for every c2 PatternProperties entry, every name c1
//     could produce outside its own named Properties (its
//     AdditionalProperties, narrowed by any c1 PatternProperties entry
//     that isn't provably disjoint from c2's pattern) must be contained
//     in that c2 pattern's schema — otherwise c1 could hand back an
//     unnamed property c2's pattern would narrow further than c1 does.
//
// Points 3 and 4's "provably covered"/"provably disjoint" checks are
// conservative: when the regex adapter cannot establish the relation, this
// engine takes the safe assumption (covered=false, disjoint=false), which
// can reject valid subtype pairs a full fixpoint analysis would accept,
// but never accepts an invalid one (spec §4.7, "conservative
// approximation").
func objectContains(ctx context.Context, c1, c2 *ObjectConstraints) bool {
	ok := true

	if c1.MinProperties < c2.MinProperties {
		addReason(ctx, "obj__minProps", "minProperties constraint not contained")
		ok = false
	}
	if c2.MaxProperties != nil && (c1.MaxProperties == nil || *c1.MaxProperties > *c2.MaxProperties) {
		addReason(ctx, "obj__maxProps", "maxProperties constraint not contained")
		ok = false
	}
	for name := range c2.Required {
		if !c1.Required[name] {
			addReason(ctx, "obj__required", "required property not contained: "+name)
			ok = false
		}
	}

	names := relevantNames(c1, c2)
	for _, name := range names {
		pop := pushPath(ctx, "properties/"+name)
		if !isSubtype(ctx, c1.effectiveFor(name), c2.effectiveFor(name)) {
			addReason(ctx, "obj__prop", "property schema not contained: "+name)
			ok = false
		}
		pop()
	}

	for pattern, schema := range c1.PatternProperties {
		if coveredByRHSPatterns(ctx, pattern, c2) {
			continue
		}
		pop := pushPath(ctx, "patternProperties/"+pattern)
		if !isSubtype(ctx, schema, c2.AdditionalProperties) {
			addReason(ctx, "obj__pattern", "patternProperties schema not contained in additionalProperties: "+pattern)
			ok = false
		}
		pop()
	}

	for pattern, schema := range c2.PatternProperties {
		pop := pushPath(ctx, "patternProperties/"+pattern)
		if !isSubtype(ctx, genericSchemaFor(ctx, c1, pattern), schema) {
			addReason(ctx, "obj__patternRev", "right side patternProperties narrows a property left side's additionalProperties/patternProperties does not: "+pattern)
			ok = false
		}
		pop()
	}

	pop := pushPath(ctx, "additionalProperties")
	if !isSubtype(ctx, c1.AdditionalProperties, c2.AdditionalProperties) {
		addReason(ctx, "obj__addl", "additionalProperties constraint not contained")
		ok = false
	}
	pop()

	return ok
}

// genericSchemaFor returns the schema c1 guarantees for a property name
// that is not explicitly listed in c1.Properties but could match
// rhsPattern: c1.AdditionalProperties, met with every c1 PatternProperties
// entry whose pattern is not provably disjoint from rhsPattern (a name
// could satisfy both patterns at once, so its value must also satisfy
// that entry's schema). Explicit c1.Properties names are excluded here
// since they are already checked against c2's pattern via effectiveFor in
// the relevantNames loop above, regardless of whether the name itself
// happens to match rhsPattern.
func genericSchemaFor(ctx context.Context, c1 *ObjectConstraints, rhsPattern string) CSchema {
	result := c1.AdditionalProperties
	for pattern, schema := range c1.PatternProperties {
		_, empty, err := regexIntersection(ctx, pattern, rhsPattern)
		if err == nil && empty {
			continue
		}
		result = meet(result, schema)
	}
	return result
}

// coveredByRHSPatterns reports whether pattern's language is contained
// in a single one of c2's own PatternProperties patterns (coverage by
// several of them together is not detected) — i.e. every name
// pattern could match is already handled by a matching c2 pattern
// (via effectiveFor on the relevant names loop above), so this entry
// does not additionally need checking against c2.AdditionalProperties.
func coveredByRHSPatterns(ctx context.Context, pattern string, c2 *ObjectConstraints) bool {
	for rhsPattern := range c2.PatternProperties {
		contained, err := regexContains(ctx, pattern, rhsPattern)
		if err == nil && contained {
			return true
		}
	}
	return false
}

// objectNegate computes ¬c for an Object CTS (spec §4.8). As with
// arrays, only the fully unconstrained object schema has a
// representable negation at Object kind (⊥); any property/size
// constraint makes negation inexpressible in this lattice without
// losing soundness, so it is refused (spec §10 Non-goals).
func objectNegate(c *ObjectConstraints) (*ObjectConstraints, error) {
	if len(c.Properties) == 0 && len(c.PatternProperties) == 0 && len(c.Required) == 0 &&
		c.MinProperties == 0 && c.MaxProperties == nil && isUnconstrainedItemSchema(c.AdditionalProperties) {
		return nil, nil // ⊥ at Object kind
	}
	return nil, ErrUnsupportedNegatedObject
}
