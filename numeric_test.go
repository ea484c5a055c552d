package subtype

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rat(s string) *big.Rat {
	r := new(big.Rat)
	_, ok := r.SetString(s)
	if !ok {
		panic("bad rat literal: " + s)
	}
	return r
}

func TestNumericContainsIntervals(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		c1   *NumberConstraints
		c2   *NumberConstraints
		want bool
	}{
		{"tighter within looser", &NumberConstraints{Min: rat("1"), Max: rat("5")}, &NumberConstraints{Min: rat("0"), Max: rat("10")}, true},
		{"looser not within tighter", &NumberConstraints{Min: rat("0"), Max: rat("10")}, &NumberConstraints{Min: rat("1"), Max: rat("5")}, false},
		{"equal bounds, left exclusive is tighter", &NumberConstraints{Min: rat("1"), ExclMin: true}, &NumberConstraints{Min: rat("1")}, true},
		{"equal bounds, right exclusive is not looser", &NumberConstraints{Min: rat("1")}, &NumberConstraints{Min: rat("1"), ExclMin: true}, false},
		{"unbounded left not contained in bounded", &NumberConstraints{}, &NumberConstraints{Min: rat("0")}, false},
		{"bounded contained in unbounded", &NumberConstraints{Min: rat("0")}, &NumberConstraints{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := numericContains(ctx, tt.c1, tt.c2)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumericContainsMultipleOf(t *testing.T) {
	ctx := context.Background()

	c1 := &NumberConstraints{Multiple: rat("4")}
	c2 := &NumberConstraints{Multiple: rat("2")}
	assert.True(t, numericContains(ctx, c1, c2), "multiples of 4 are multiples of 2")

	assert.False(t, numericContains(ctx, c2, c1), "multiples of 2 are not all multiples of 4")
}

func TestNumericContainsDecimalMultipleOfIsExact(t *testing.T) {
	ctx := context.Background()
	c1 := &NumberConstraints{Multiple: rat("0.2")}
	c2 := &NumberConstraints{Multiple: rat("0.1")}
	assert.True(t, numericContains(ctx, c1, c2), "0.2 must be an exact multiple of 0.1, not a float-drifted near-miss")
}

func TestNumericMeetEmptyInterval(t *testing.T) {
	a := &NumberConstraints{Min: rat("5")}
	b := &NumberConstraints{Max: rat("1")}
	_, ok := numericMeet(a, b)
	assert.False(t, ok)
}

func TestNumericMeetLCM(t *testing.T) {
	a := &NumberConstraints{Multiple: rat("2")}
	b := &NumberConstraints{Multiple: rat("3")}
	out, ok := numericMeet(a, b)
	require.True(t, ok)
	assert.Equal(t, 0, out.Multiple.Cmp(rat("6")))
}

func TestNumericNegateUnconstrainedYieldsEmpty(t *testing.T) {
	assert.Nil(t, numericNegate(&NumberConstraints{}))
}

func TestNumericNegateComplementInterval(t *testing.T) {
	parts := numericNegate(&NumberConstraints{Min: rat("0"), Max: rat("10")})
	require.Len(t, parts, 2)
	assert.Equal(t, 0, parts[0].Max.Cmp(rat("0")))
	assert.True(t, parts[0].ExclMax)
	assert.Equal(t, 0, parts[1].Min.Cmp(rat("10")))
	assert.True(t, parts[1].ExclMin)
}
