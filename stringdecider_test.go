package subtype

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func strp(s string) *string { return &s }
func intp(i int) *int       { return &i }

func TestStringContainsLength(t *testing.T) {
	ctx := context.Background()
	assert.True(t, stringContains(ctx, &StringConstraints{MinLength: 2, MaxLength: intp(5)}, &StringConstraints{MinLength: 0, MaxLength: intp(10)}))
	assert.False(t, stringContains(ctx, &StringConstraints{MinLength: 0}, &StringConstraints{MinLength: 2}))
	assert.False(t, stringContains(ctx, &StringConstraints{MaxLength: intp(20)}, &StringConstraints{MaxLength: intp(10)}))
}

func TestStringContainsPattern(t *testing.T) {
	ctx := context.Background()
	// every string matching ^foo[0-9]+$ also matches ^foo
	assert.True(t, stringContains(ctx, &StringConstraints{Pattern: strp("^foo[0-9]+$")}, &StringConstraints{Pattern: strp("^foo")}))
	// not every string matching ^foo also matches ^foo[0-9]+$
	assert.False(t, stringContains(ctx, &StringConstraints{Pattern: strp("^foo")}, &StringConstraints{Pattern: strp("^foo[0-9]+$")}))
}

func TestStringContainsNoPatternOnRightAlwaysHolds(t *testing.T) {
	ctx := context.Background()
	assert.True(t, stringContains(ctx, &StringConstraints{Pattern: strp("anything")}, &StringConstraints{}))
}

func TestStringContainsMissingPatternOnLeftFails(t *testing.T) {
	ctx := context.Background()
	assert.False(t, stringContains(ctx, &StringConstraints{}, &StringConstraints{Pattern: strp("^x$")}))
}

func TestStringMeetLength(t *testing.T) {
	out, ok := stringMeet(context.Background(), &StringConstraints{MinLength: 1, MaxLength: intp(10)}, &StringConstraints{MinLength: 5, MaxLength: intp(8)})
	assert := assert.New(t)
	assert.True(ok)
	assert.Equal(5, out.MinLength)
	assert.Equal(8, *out.MaxLength)
}

func TestStringMeetEmptyLengthRange(t *testing.T) {
	_, ok := stringMeet(context.Background(), &StringConstraints{MinLength: 10}, &StringConstraints{MaxLength: intp(5)})
	assert.False(t, ok)
}
