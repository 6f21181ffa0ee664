package document

import (
	"testing"

	"github.com/hupe1980/benchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	data := []byte(`{"metadata": {"dimension": 3, "scalar_kind": "double", "raw_dump_version": 2},
		"A":{ "rows":3, "cols":3, "nnz":1, "triplets":[[0, 0, "0x1.8p+0"]]},
		"b":["0x1p+0", "-0x1p-1"], "big": 18446744073709551615, "f": 1e3, "n": null, "t": true,
		"esc": "a\"b\\cé"}`)

	doc, err := ParseJSON(data)
	require.NoError(t, err)

	dim, ok := doc.Lookup("metadata", "dimension")
	require.True(t, ok)
	assert.Equal(t, KindInt, dim.Kind())

	triplets, ok := doc.Lookup("A", "triplets")
	require.True(t, ok)
	require.Equal(t, 1, triplets.Len())
	hex, ok := triplets.Index(0).Index(2).AsString()
	require.True(t, ok)
	assert.Equal(t, "0x1.8p+0", hex)

	big, _ := doc.Get("big")
	assert.Equal(t, KindUint, big.Kind())

	f, _ := doc.Get("f")
	assert.Equal(t, KindFloat, f.Kind())

	n, _ := doc.Get("n")
	assert.True(t, n.IsNull())

	esc, _ := doc.Get("esc")
	s, _ := esc.AsString()
	assert.Equal(t, "a\"b\\cé", s)
}

func TestParseJSON_Empty(t *testing.T) {
	doc, err := ParseJSON([]byte(` [] `))
	require.NoError(t, err)
	assert.Equal(t, KindArray, doc.Kind())
	assert.Zero(t, doc.Len())

	doc, err = ParseJSON([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, KindMap, doc.Kind())
}

func TestParseJSON_Malformed(t *testing.T) {
	for _, input := range []string{
		``,
		`{"a": }`,
		`[1, 2`,
		`{"a": 1} trailing`,
		`"unterminated`,
	} {
		_, err := ParseJSON([]byte(input))
		assert.ErrorIs(t, err, benchy.ErrBadFormat, "input %q", input)
	}
}

func TestMarshalJSON(t *testing.T) {
	doc := Map(map[string]Value{
		"b": Array(Int(1), Float(0.5)),
		"a": String("x"),
	})
	b, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":[1,0.5]}`, string(b))

	back, err := ParseJSON(b)
	require.NoError(t, err)
	assert.True(t, doc.Equal(back))
}
