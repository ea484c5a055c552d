package subtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canonicalize(t *testing.T, raw string) CSchema {
	t.Helper()
	s, err := LoadSchema([]byte(raw))
	require.NoError(t, err)
	require.NoError(t, resolveRefs(s, "LHS"))
	c, err := Canonicalize(s, "LHS")
	require.NoError(t, err)
	return c
}

func TestCanonicalizeTypeRestriction(t *testing.T) {
	c := canonicalize(t, `{"type": "string", "minLength": 3}`)
	u := asUnion(c)
	require.Len(t, u, 1)
	assert.Equal(t, KindString, u[0].Kind)
	assert.Equal(t, 3, u[0].String.MinLength)
}

func TestCanonicalizeAllOfIsMeet(t *testing.T) {
	c := canonicalize(t, `{"allOf": [{"type": "integer", "minimum": 1}, {"type": "integer", "maximum": 10}]}`)
	u := asUnion(c)
	require.Len(t, u, 1)
	assert.Equal(t, KindInteger, u[0].Kind)
	assert.Equal(t, 0, u[0].Number.Min.Cmp(rat("1")))
	assert.Equal(t, 0, u[0].Number.Max.Cmp(rat("10")))
}

func TestCanonicalizeAnyOfIsJoin(t *testing.T) {
	c := canonicalize(t, `{"anyOf": [{"type": "string"}, {"type": "integer"}]}`)
	u := asUnion(c)
	kinds := map[Kind]bool{}
	for _, m := range u {
		kinds[m.Kind] = true
	}
	assert.True(t, kinds[KindString])
	assert.True(t, kinds[KindInteger])
}

func TestCanonicalizeNotNegatesUnconstrainedType(t *testing.T) {
	c := canonicalize(t, `{"not": {"type": "string"}}`)
	u := asUnion(c)
	for _, m := range u {
		assert.NotEqual(t, KindString, m.Kind)
	}
}

func TestCanonicalizeOneOfDisjointTypes(t *testing.T) {
	c := canonicalize(t, `{"oneOf": [{"type": "string"}, {"type": "integer"}]}`)
	u := asUnion(c)
	kinds := map[Kind]bool{}
	for _, m := range u {
		kinds[m.Kind] = true
	}
	assert.True(t, kinds[KindString])
	assert.True(t, kinds[KindInteger])
}

func TestCanonicalizeEnumGroupedByKind(t *testing.T) {
	c := canonicalize(t, `{"enum": ["a", 1, true]}`)
	u := asUnion(c)
	kinds := map[Kind]bool{}
	for _, m := range u {
		kinds[m.Kind] = true
		assert.NotEmpty(t, m.Enum)
	}
	assert.True(t, kinds[KindString])
	assert.True(t, kinds[KindInteger])
	assert.True(t, kinds[KindBoolean])
}

func TestCanonicalizeBooleanSchemaShorthand(t *testing.T) {
	assert.True(t, isBottom(canonicalize(t, `false`)))
	assert.False(t, isBottom(canonicalize(t, `true`)))
}

func TestCanonicalizeRefToDefinitions(t *testing.T) {
	c := canonicalize(t, `{
		"definitions": {"pos": {"type": "integer", "minimum": 0}},
		"$ref": "#/definitions/pos"
	}`)
	u := asUnion(c)
	require.Len(t, u, 1)
	assert.Equal(t, KindInteger, u[0].Kind)
	assert.Equal(t, 0, u[0].Number.Min.Cmp(rat("0")))
}

func TestCanonicalizeRecursiveRefErrors(t *testing.T) {
	s, err := LoadSchema([]byte(`{
		"definitions": {"node": {"type": "object", "properties": {"next": {"$ref": "#/definitions/node"}}}},
		"$ref": "#/definitions/node"
	}`))
	require.NoError(t, err)
	require.NoError(t, resolveRefs(s, "LHS"))
	_, err = Canonicalize(s, "LHS")
	assert.Error(t, err)
}

func TestCanonicalizeUnknownTypeNameErrors(t *testing.T) {
	_, err := LoadSchema([]byte(`{"type": "bogus"}`))
	if err != nil {
		// a malformed type name may already be rejected at unmarshal time
		// depending on SchemaType's decoding strictness.
		assert.ErrorIs(t, err, ErrMalformedJSON)
		return
	}
	s, _ := LoadSchema([]byte(`{"type": "bogus"}`))
	require.NoError(t, resolveRefs(s, "LHS"))
	_, err = Canonicalize(s, "LHS")
	assert.ErrorIs(t, err, ErrMalformedSchema)
}
