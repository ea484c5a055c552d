package subtype

import (
	"fmt"

	"github.com/goccy/go-json"
)

// LoadSchema parses raw JSON bytes into a Schema tree and initializes its
// parent links, ready for reference resolution. It does not
// resolve $ref itself — that happens per comparison in resolveRefs, since
// the "LHS"/"RHS" distinction in UnsupportedRecursiveRef is only meaningful
// once we know which side of a comparison is being walked.
func LoadSchema(data []byte) (*Schema, error) {
	s := &Schema{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedJSON, err)
	}
	initParents(s, nil)
	return s, nil
}

// initParents wires up parent pointers across the whole tree. $ref
// resolution does not use them: resolvePointer always starts from the
// document root.
func initParents(s *Schema, parent *Schema) {
	if s == nil || s.Boolean != nil {
		return
	}
	s.parent = parent

	for _, child := range s.Definitions {
		initParents(child, s)
	}
	for _, child := range s.AllOf {
		initParents(child, s)
	}
	for _, child := range s.AnyOf {
		initParents(child, s)
	}
	for _, child := range s.OneOf {
		initParents(child, s)
	}
	initParents(s.Not, s)
	initParents(s.Items, s)
	for _, child := range s.PrefixItems {
		initParents(child, s)
	}
	initParents(s.AdditionalItems, s)
	initParents(s.AdditionalProperties, s)
	if s.Properties != nil {
		for _, child := range *s.Properties {
			initParents(child, s)
		}
	}
	if s.PatternProperties != nil {
		for _, child := range *s.PatternProperties {
			initParents(child, s)
		}
	}
}
