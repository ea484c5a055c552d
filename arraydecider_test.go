package subtype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stringCTS(c *StringConstraints) CSchema { return &CTS{Kind: KindString, String: c} }

func TestArrayContainsCardinality(t *testing.T) {
	ctx := context.Background()
	a := &ArrayConstraints{Tail: Top(), MinItems: 2, MaxItems: intp(5)}
	b := &ArrayConstraints{Tail: Top(), MinItems: 0, MaxItems: intp(10)}
	assert.True(t, arrayContains(ctx, a, b))
	assert.False(t, arrayContains(ctx, b, a))
}

func TestArrayContainsUniqueItems(t *testing.T) {
	ctx := context.Background()
	unique := &ArrayConstraints{Tail: Top(), UniqueItems: true}
	plain := &ArrayConstraints{Tail: Top()}
	assert.True(t, arrayContains(ctx, unique, plain))
	assert.False(t, arrayContains(ctx, plain, unique))
}

func TestArrayContainsItemSchema(t *testing.T) {
	ctx := context.Background()
	narrow := &ArrayConstraints{Tail: stringCTS(&StringConstraints{MinLength: 3})}
	wide := &ArrayConstraints{Tail: stringCTS(&StringConstraints{})}
	assert.True(t, arrayContains(ctx, narrow, wide))
	assert.False(t, arrayContains(ctx, wide, narrow))
}

func TestArrayContainsTuplePrefix(t *testing.T) {
	ctx := context.Background()
	c1 := &ArrayConstraints{
		Prefix: []CSchema{stringCTS(&StringConstraints{MinLength: 5})},
		Tail:   Bottom(),
	}
	c2 := &ArrayConstraints{
		Prefix: []CSchema{stringCTS(&StringConstraints{})},
		Tail:   Top(),
	}
	assert.True(t, arrayContains(ctx, c1, c2))
}

func TestArrayContainsAdditionalItemsFalse(t *testing.T) {
	ctx := context.Background()
	// c1 allows a third item, c2 forbids one: not contained.
	c1 := &ArrayConstraints{Prefix: []CSchema{Top(), Top()}, Tail: Top()}
	c2 := &ArrayConstraints{Prefix: []CSchema{Top(), Top()}, Tail: Bottom()}
	assert.False(t, arrayContains(ctx, c1, c2))

	// the reverse holds: forbidding extra items is contained in allowing them.
	assert.True(t, arrayContains(ctx, c2, c1))
}

func TestArrayMeetPrefixAndTail(t *testing.T) {
	ctx := context.Background()
	a := &ArrayConstraints{Tail: stringCTS(&StringConstraints{MinLength: 2})}
	b := &ArrayConstraints{Tail: stringCTS(&StringConstraints{MaxLength: intp(10)})}
	out, ok := arrayMeet(ctx, a, b)
	assert.True(t, ok)
	assert.NotNil(t, out.Tail)
}

func TestArrayNegateUnconstrainedOnly(t *testing.T) {
	_, err := arrayNegate(&ArrayConstraints{Tail: Top()})
	assert.NoError(t, err)

	_, err = arrayNegate(&ArrayConstraints{Tail: Top(), MinItems: 1})
	assert.ErrorIs(t, err, ErrUnsupportedNegatedArray)
}
