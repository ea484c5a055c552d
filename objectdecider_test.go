package subtype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectContainsRequired(t *testing.T) {
	ctx := context.Background()
	c1 := &ObjectConstraints{Required: map[string]bool{"id": true, "name": true}, AdditionalProperties: Top()}
	c2 := &ObjectConstraints{Required: map[string]bool{"id": true}, AdditionalProperties: Top()}
	assert.True(t, objectContains(ctx, c1, c2))
	assert.False(t, objectContains(ctx, c2, c1))
}

func TestObjectContainsPropertySchema(t *testing.T) {
	ctx := context.Background()
	c1 := &ObjectConstraints{
		Properties:           map[string]CSchema{"age": stringCTS(&StringConstraints{})},
		AdditionalProperties: Top(),
	}
	c1.Properties["age"] = &CTS{Kind: KindInteger, Number: &NumberConstraints{Min: rat("0")}}
	c2 := &ObjectConstraints{
		Properties:           map[string]CSchema{"age": &CTS{Kind: KindInteger, Number: &NumberConstraints{}}},
		AdditionalProperties: Top(),
	}
	assert.True(t, objectContains(ctx, c1, c2))
	assert.False(t, objectContains(ctx, c2, c1))
}

func TestObjectContainsAdditionalPropertiesFalse(t *testing.T) {
	ctx := context.Background()
	closed := &ObjectConstraints{AdditionalProperties: Bottom()}
	open := &ObjectConstraints{AdditionalProperties: Top()}
	assert.True(t, objectContains(ctx, closed, open))
	assert.False(t, objectContains(ctx, open, closed))
}

func TestObjectContainsCardinality(t *testing.T) {
	ctx := context.Background()
	c1 := &ObjectConstraints{MinProperties: 2, MaxProperties: intp(5), AdditionalProperties: Top()}
	c2 := &ObjectConstraints{MinProperties: 0, MaxProperties: intp(10), AdditionalProperties: Top()}
	assert.True(t, objectContains(ctx, c1, c2))
	assert.False(t, objectContains(ctx, c2, c1))
}

// Grounded in original_source/test/test_pattern_properties.py: a
// patternProperties entry whose language is a literal subset of an RHS
// pattern is covered without needing to also satisfy additionalProperties.
func TestObjectContainsPatternPropertiesCoveredSubset(t *testing.T) {
	ctx := context.Background()
	c1 := &ObjectConstraints{
		PatternProperties:    map[string]CSchema{"^foo[0-9]+$": Top()},
		AdditionalProperties: Bottom(),
	}
	c2 := &ObjectConstraints{
		PatternProperties:    map[string]CSchema{"^foo": Top()},
		AdditionalProperties: Bottom(),
	}
	assert.True(t, objectContains(ctx, c1, c2))
}

// When the LHS pattern is not provably covered by any RHS pattern, its
// value schema must satisfy RHS's additionalProperties directly.
func TestObjectContainsPatternPropertiesUncoveredFallsBackToAdditional(t *testing.T) {
	ctx := context.Background()
	c1 := &ObjectConstraints{
		PatternProperties:    map[string]CSchema{"^bar": Top()},
		AdditionalProperties: Bottom(),
	}
	c2 := &ObjectConstraints{
		PatternProperties:    map[string]CSchema{"^foo": Top()},
		AdditionalProperties: Bottom(),
	}
	assert.False(t, objectContains(ctx, c1, c2), "bar-pattern isn't covered by foo-pattern and additionalProperties is closed")
}

func TestObjectMeetPropertiesUnion(t *testing.T) {
	a := &ObjectConstraints{
		Properties:           map[string]CSchema{"id": Top()},
		Required:              map[string]bool{"id": true},
		AdditionalProperties: Top(),
	}
	b := &ObjectConstraints{
		Properties:           map[string]CSchema{"name": Top()},
		Required:              map[string]bool{"name": true},
		AdditionalProperties: Top(),
	}
	out, ok := objectMeet(context.Background(), a, b)
	require.True(t, ok)
	assert.Contains(t, out.Properties, "id")
	assert.Contains(t, out.Properties, "name")
	assert.True(t, out.Required["id"])
	assert.True(t, out.Required["name"])
}

func TestObjectMeetIncompatibleCardinalityIsEmpty(t *testing.T) {
	a := &ObjectConstraints{MinProperties: 5, AdditionalProperties: Top()}
	b := &ObjectConstraints{MaxProperties: intp(2), AdditionalProperties: Top()}
	_, ok := objectMeet(context.Background(), a, b)
	assert.False(t, ok)
}

func TestObjectNegateUnconstrainedOnly(t *testing.T) {
	_, err := objectNegate(&ObjectConstraints{AdditionalProperties: Top()})
	assert.NoError(t, err)

	_, err = objectNegate(&ObjectConstraints{AdditionalProperties: Top(), Required: map[string]bool{"id": true}})
	assert.ErrorIs(t, err, ErrUnsupportedNegatedObject)
}

func TestPatternMatchesName(t *testing.T) {
	assert.True(t, patternMatchesName("^foo", "foobar"))
	assert.False(t, patternMatchesName("^foo$", "foobar"))
}
