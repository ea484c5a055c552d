package subtype

import "errors"

// === Input Parsing Related Errors ===
var (
	// ErrMalformedJSON is returned when input bytes do not parse as JSON.
	ErrMalformedJSON = errors.New("malformed json")

	// ErrMalformedSchema is returned when meta-validation of a schema fails
	// (e.g. multipleOf <= 0, minItems > maxItems, type naming an unknown
	// kind).
	ErrMalformedSchema = errors.New("malformed schema")
)

// === Reference Resolution Related Errors ===
var (
	// ErrUnresolvedRef is returned when a $ref target is missing and no
	// loader resolves it.
	ErrUnresolvedRef = errors.New("unresolved reference")

	// ErrUnsupportedRecursiveRef is returned when a $ref cycle is detected
	// on either side of the comparison.
	ErrUnsupportedRecursiveRef = errors.New("unsupported recursive reference")
)

// === Canonicalization Related Errors ===
var (
	// ErrUnsupportedEnumCanonicalization is returned when an enum contains
	// array- or object-typed literals, which this engine does not attempt
	// to canonicalize.
	ErrUnsupportedEnumCanonicalization = errors.New("unsupported enum canonicalization")

	// ErrUnsupportedNegatedArray is returned when negating an array schema
	// that carries item/size/unique constraints.
	ErrUnsupportedNegatedArray = errors.New("unsupported negated array schema")

	// ErrUnsupportedNegatedObject is returned when negating an object
	// schema that carries property/size constraints.
	ErrUnsupportedNegatedObject = errors.New("unsupported negated object schema")

	// ErrUnsupportedNegatedString is returned when negating a string
	// schema that carries length or pattern constraints.
	ErrUnsupportedNegatedString = errors.New("unsupported negated string schema")
)

// === Regex Adapter Related Errors ===
var (
	// ErrRegexUnsupported is returned when a regex feature exceeds the
	// adapter's capability or its automaton size cap.
	ErrRegexUnsupported = errors.New("regex feature unsupported")
)

// === Decision Related Errors ===
var (
	// ErrDecisionTimeout is returned when a decision's deadline is
	// exceeded before a containment check resolves.
	ErrDecisionTimeout = errors.New("decision deadline exceeded")
)

// === Type Conversion Related Errors ===
var (
	// ErrUnsupportedTypeForRat is returned when a JSON literal cannot be
	// interpreted as a number for Rat conversion.
	ErrUnsupportedTypeForRat = errors.New("unsupported type for rat conversion")

	// ErrFailedToConvertToRat is returned when a numeric literal's decimal
	// string form cannot be parsed into a big.Rat.
	ErrFailedToConvertToRat = errors.New("failed to convert value to rat")
)

// RecursiveRefError carries which side of the comparison (LHS/RHS) a
// recursive $ref cycle was found on.
type RecursiveRefError struct {
	WhichSide string // "LHS" or "RHS"
	Ref       string
}

func (e *RecursiveRefError) Error() string {
	return "unsupported recursive reference on " + e.WhichSide + ": " + e.Ref
}

func (e *RecursiveRefError) Unwrap() error {
	return ErrUnsupportedRecursiveRef
}

// RegexPatternError carries the offending pattern and its location when the
// regex adapter cannot service a request.
type RegexPatternError struct {
	Pattern  string
	Location string
	Err      error
}

func (e *RegexPatternError) Error() string {
	msg := "regex unsupported for pattern " + e.Pattern
	if e.Location != "" {
		msg += " (at " + e.Location + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RegexPatternError) Unwrap() error {
	return ErrRegexUnsupported
}
