package subtype

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSubschemaBasicNumericInterval(t *testing.T) {
	ok, err := IsSubschema(
		[]byte(`{"type": "integer", "minimum": 1, "maximum": 5}`),
		[]byte(`{"type": "integer", "minimum": 0, "maximum": 10}`),
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubschemaIntegerIsSubtypeOfNumber(t *testing.T) {
	ok, err := IsSubschema(
		[]byte(`{"type": "integer"}`),
		[]byte(`{"type": "number"}`),
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubschemaNumberIsNotSubtypeOfInteger(t *testing.T) {
	ok, err := IsSubschema(
		[]byte(`{"type": "number"}`),
		[]byte(`{"type": "integer"}`),
	)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsSubschemaReflexivity(t *testing.T) {
	schemas := [][]byte{
		[]byte(`{"type": "string", "minLength": 2, "pattern": "^foo"}`),
		[]byte(`{"type": "array", "items": {"type": "integer"}, "minItems": 1}`),
		[]byte(`{"type": "object", "required": ["id"], "properties": {"id": {"type": "string"}}}`),
		[]byte(`{"anyOf": [{"type": "string"}, {"type": "integer"}]}`),
	}
	for _, s := range schemas {
		ok, err := IsSubschema(s, s)
		require.NoError(t, err)
		assert.True(t, ok, "schema should be a subtype of itself: %s", s)
	}
}

func TestIsSubschemaEmptySchemaIsTop(t *testing.T) {
	ok, err := IsSubschema([]byte(`{"type": "string"}`), []byte(`{}`))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubschemaFalseIsBottom(t *testing.T) {
	ok, err := IsSubschema([]byte(`false`), []byte(`{"type": "string", "minLength": 100}`))
	require.NoError(t, err)
	assert.True(t, ok, "the empty type is a subtype of everything")
}

func TestIsSubschemaObjectProperties(t *testing.T) {
	ok, err := IsSubschema(
		[]byte(`{"type": "object", "properties": {"age": {"type": "integer", "minimum": 0}}, "required": ["age"]}`),
		[]byte(`{"type": "object", "properties": {"age": {"type": "integer"}}}`),
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubschemaObjectMissingRequiredFails(t *testing.T) {
	ok, err := IsSubschema(
		[]byte(`{"type": "object"}`),
		[]byte(`{"type": "object", "required": ["id"]}`),
	)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsSubschemaWithReasonExplainsFailure(t *testing.T) {
	result, err := IsSubschemaWithReason(
		[]byte(`{"type": "string", "minLength": 1}`),
		[]byte(`{"type": "string", "minLength": 5}`),
	)
	require.NoError(t, err)
	assert.False(t, result.IsSubtype)
	assert.NotEmpty(t, result.Reasons)
}

func TestIsSubschemaMalformedJSON(t *testing.T) {
	_, err := IsSubschema([]byte(`{not json`), []byte(`{}`))
	assert.ErrorIs(t, err, ErrMalformedJSON)
}

func TestIsSubschemaUnresolvedRef(t *testing.T) {
	_, err := IsSubschema([]byte(`{"$ref": "#/definitions/missing"}`), []byte(`{}`))
	assert.Error(t, err)
}

func TestIsSubschemaDeadlineOption(t *testing.T) {
	result, err := IsSubschemaWithReason(
		[]byte(`{"type": "string"}`),
		[]byte(`{"type": "string"}`),
		DeadlineOption(time.Second),
	)
	require.NoError(t, err)
	assert.True(t, result.IsSubtype)
}

func TestIsSubschemaAllOfNarrowing(t *testing.T) {
	ok, err := IsSubschema(
		[]byte(`{"allOf": [{"type": "integer", "minimum": 0}, {"type": "integer", "maximum": 100}]}`),
		[]byte(`{"type": "integer", "minimum": -10, "maximum": 200}`),
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubschemaOneOfExclusivity(t *testing.T) {
	// oneOf excludes values satisfying two branches; over two disjoint
	// kinds nothing overlaps, so oneOf(string, integer) is contained in
	// anyOf(string, integer).
	ok, err := IsSubschema(
		[]byte(`{"oneOf": [{"type": "string"}, {"type": "integer"}]}`),
		[]byte(`{"anyOf": [{"type": "string"}, {"type": "integer"}]}`),
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubschemaArrayTupleMode(t *testing.T) {
	ok, err := IsSubschema(
		[]byte(`{"type": "array", "items": [{"type": "string"}, {"type": "integer"}], "additionalItems": false}`),
		[]byte(`{"type": "array", "items": [{"type": "string"}, {"type": "number"}]}`),
	)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsSubschemaWarnsOnUnknownKeyword(t *testing.T) {
	result, err := IsSubschemaWithReason(
		[]byte(`{"type": "string", "format": "email"}`),
		[]byte(`{"type": "string"}`),
	)
	require.NoError(t, err)
	assert.True(t, result.IsSubtype)
	found := false
	for _, r := range result.Reasons {
		if r == "[warn__extra] LHS: unknown keyword ignored: format (at /)" {
			found = true
		}
	}
	assert.True(t, found, "unknown keywords should surface as a warning reason: %v", result.Reasons)
}

func TestIsSubschemaPatternContainment(t *testing.T) {
	ok, err := IsSubschema(
		[]byte(`{"type": "string", "pattern": "^[0-9]+$"}`),
		[]byte(`{"type": "string", "pattern": "^[0-9a-f]+$"}`),
	)
	require.NoError(t, err)
	assert.True(t, ok)
}
