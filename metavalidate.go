package subtype

import (
	"fmt"
	"regexp/syntax"
)

// MetaValidate performs the minimal Draft-4 structural checks this
// engine relies on before canonicalizing: that multipleOf is positive,
// that length/size/items/properties bounds are non-negative and
// internally ordered where both ends are literal numbers, that every
// "type" name is recognized, and that every "pattern" compiles. It does
// not implement a general JSON Schema meta-schema validator — only the
// invariants canonicalization assumes hold (spec §6).
func MetaValidate(s *Schema) error {
	return metaValidateNode(s)
}

func metaValidateNode(s *Schema) error {
	if s == nil || s.Boolean != nil {
		return nil
	}

	for _, name := range s.Type {
		if _, ok := kindFromName(name); !ok {
			return fmt.Errorf("%w: unrecognized type %q", ErrMalformedSchema, name)
		}
	}

	if s.MultipleOf != nil && s.MultipleOf.Sign() <= 0 {
		return fmt.Errorf("%w: multipleOf must be positive", ErrMalformedSchema)
	}
	if s.Minimum != nil && s.Maximum != nil && s.Minimum.Cmp(s.Maximum.Rat) > 0 {
		return fmt.Errorf("%w: minimum exceeds maximum", ErrMalformedSchema)
	}

	if err := checkNonNegativeOrdered(s.MinLength, s.MaxLength, "minLength", "maxLength"); err != nil {
		return err
	}
	if err := checkNonNegativeOrdered(s.MinItems, s.MaxItems, "minItems", "maxItems"); err != nil {
		return err
	}
	if err := checkNonNegativeOrdered(s.MinProperties, s.MaxProperties, "minProperties", "maxProperties"); err != nil {
		return err
	}

	if s.Pattern != nil {
		if _, err := syntax.Parse(*s.Pattern, syntax.Perl); err != nil {
			return fmt.Errorf("%w: invalid pattern: %s", ErrMalformedSchema, err)
		}
	}
	for pattern := range collectPatternProperties(s) {
		if _, err := syntax.Parse(pattern, syntax.Perl); err != nil {
			return fmt.Errorf("%w: invalid patternProperties key: %s", ErrMalformedSchema, err)
		}
	}

	children := []*Schema{s.Not, s.Items, s.AdditionalItems, s.AdditionalProperties}
	children = append(children, s.AllOf...)
	children = append(children, s.AnyOf...)
	children = append(children, s.OneOf...)
	children = append(children, s.PrefixItems...)
	for _, def := range s.Definitions {
		children = append(children, def)
	}
	if s.Properties != nil {
		for _, v := range *s.Properties {
			children = append(children, v)
		}
	}
	if s.PatternProperties != nil {
		for _, v := range *s.PatternProperties {
			children = append(children, v)
		}
	}

	for _, child := range children {
		if err := metaValidateNode(child); err != nil {
			return err
		}
	}
	return nil
}

func checkNonNegativeOrdered(min, max *float64, minName, maxName string) error {
	if min != nil && *min < 0 {
		return fmt.Errorf("%w: %s must be non-negative", ErrMalformedSchema, minName)
	}
	if max != nil && *max < 0 {
		return fmt.Errorf("%w: %s must be non-negative", ErrMalformedSchema, maxName)
	}
	if min != nil && max != nil && *min > *max {
		return fmt.Errorf("%w: %s exceeds %s", ErrMalformedSchema, minName, maxName)
	}
	return nil
}

func collectPatternProperties(s *Schema) map[string]*Schema {
	if s.PatternProperties == nil {
		return nil
	}
	return map[string]*Schema(*s.PatternProperties)
}
