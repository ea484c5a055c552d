package subtype

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/goccy/go-json"
)

// Rat wraps a big.Rat so numeric constraints (minimum, maximum, multipleOf)
// are compared with exact rational arithmetic instead of binary floats.
// Decimal literals such as 0.1 or 0.2 are parsed from their decimal string
// form, so 0.2 / 0.1 reduces to exactly 2 rather than drifting under
// naive float division.
type Rat struct {
	*big.Rat
}

// UnmarshalJSON implements json.Unmarshaler for Rat.
func (r *Rat) UnmarshalJSON(data []byte) error {
	var tmp any
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&tmp); err != nil {
		return err
	}

	converted, err := convertToBigRat(tmp)
	if err != nil {
		return err
	}

	r.Rat = converted
	return nil
}

// MarshalJSON implements json.Marshaler for Rat.
func (r *Rat) MarshalJSON() ([]byte, error) {
	formattedValue := FormatRat(r)
	if strings.Contains(formattedValue, "/") {
		return json.Marshal(formattedValue)
	}
	return []byte(formattedValue), nil
}

// convertToBigRat converts a decoded JSON literal (json.Number, float64,
// or a decimal string) into an exact big.Rat.
func convertToBigRat(data any) (*big.Rat, error) {
	var str string
	switch v := data.(type) {
	case json.Number:
		str = v.String()
	case float64, float32, int, int64, int32, int16, int8, uint, uint64, uint32, uint16, uint8:
		str = fmt.Sprint(v)
	case string:
		str = v
	default:
		return nil, ErrUnsupportedTypeForRat
	}

	numRat := new(big.Rat)
	if _, ok := numRat.SetString(str); !ok {
		return nil, ErrFailedToConvertToRat
	}
	return numRat, nil
}

// literalToRat converts a raw decoded JSON value to a Rat, or nil if it is
// not a numeric literal.
func literalToRat(v any) *big.Rat {
	if _, isString := v.(string); isString {
		return nil
	}
	r, err := convertToBigRat(v)
	if err != nil {
		return nil
	}
	return r
}

// NewRat creates a Rat from a Go value (number, json.Number, or decimal string).
func NewRat(value any) *Rat {
	converted, err := convertToBigRat(value)
	if err != nil {
		return nil
	}
	return &Rat{converted}
}

// FormatRat formats a Rat as a decimal string, trimming trailing zeros.
func FormatRat(r *Rat) string {
	if r == nil {
		return "null"
	}
	if r.IsInt() {
		return r.Num().String()
	}

	dec := r.FloatString(10)
	trimmedDec := strings.TrimRight(dec, "0")
	trimmedDec = strings.TrimRight(trimmedDec, ".")
	if trimmedDec == "" {
		return "0"
	}
	return trimmedDec
}

// ratDivides reports whether divisor evenly divides value, i.e.
// value/divisor is a positive integer — the rule behind multipleOf
// containment (spec §4.4 point 3): c2.multipleOf must divide c1.multipleOf.
func ratDivides(value, divisor *big.Rat) bool {
	if divisor == nil || divisor.Sign() == 0 {
		return false
	}
	q := new(big.Rat).Quo(value, divisor)
	return q.IsInt() && q.Sign() > 0
}

// ratLCM returns the least common multiple of two positive rationals a/b in
// lowest terms, used when meeting two multipleOf constraints: the combined
// constraint must be a multiple of both.
func ratLCM(x, y *big.Rat) *big.Rat {
	// lcm(p1/q1, p2/q2) = lcm(p1*q2, p2*q1) / (q1*q2) reduced, computed via
	// the standard numerator/denominator cross multiplication.
	n1, d1 := x.Num(), x.Denom()
	n2, d2 := y.Num(), y.Denom()

	crossN1 := new(big.Int).Mul(n1, d2)
	crossN2 := new(big.Int).Mul(n2, d1)
	denom := new(big.Int).Mul(d1, d2)

	g := new(big.Int).GCD(nil, nil, new(big.Int).Abs(crossN1), new(big.Int).Abs(crossN2))
	if g.Sign() == 0 {
		g = big.NewInt(1)
	}
	lcmNum := new(big.Int).Mul(crossN1, crossN2)
	lcmNum.Abs(lcmNum)
	lcmNum.Div(lcmNum, g)

	return new(big.Rat).SetFrac(lcmNum, denom)
}
