package codec

import (
	"testing"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	for _, name := range []string{"msgpack", "json", "go-json"} {
		c, ok := ByName(name)
		require.True(t, ok, name)
		assert.Equal(t, name, c.Name())
	}

	_, ok := ByName("cbor")
	assert.False(t, ok)
}

func TestMsgPack_Document(t *testing.T) {
	doc := document.Map(map[string]document.Value{
		"metadata": document.Map(map[string]document.Value{"version_number": document.Int(2)}),
		"b":        document.Floats([]float64{1, 2.5}),
	})

	b, err := MsgPack{}.Marshal(doc)
	require.NoError(t, err)

	var got document.Value
	require.NoError(t, MsgPack{}.Unmarshal(b, &got))
	assert.True(t, doc.Equal(got))
}

func TestMsgPack_TrailingBytes(t *testing.T) {
	b := MustMarshal(MsgPack{}, document.Int(1))
	b = append(b, 0xc0)

	var got document.Value
	err := MsgPack{}.Unmarshal(b, &got)
	assert.ErrorIs(t, err, benchy.ErrBadFormat)
}

func TestMsgPack_PlainMapsSorted(t *testing.T) {
	want := []byte{0x82, 0xa1, 'a', 0x01, 0xa1, 'b', 0x02}
	for _, v := range []any{
		map[string]int{"b": 2, "a": 1},
		map[string]any{"b": 2, "a": 1},
		map[string]uint8{"b": 2, "a": 1},
	} {
		for i := 0; i < 10; i++ {
			b, err := MsgPack{}.Marshal(v)
			require.NoError(t, err)
			assert.Equal(t, want, b, "%T", v)
		}
	}

	doc := document.MustFromAny(map[string]any{"a": 1, "b": 2})
	b, err := MsgPack{}.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, want, b)
}

func TestMsgPack_Structs(t *testing.T) {
	type entry struct {
		Name string `msgpack:"name"`
		NNZ  int    `msgpack:"nnz"`
	}
	b, err := MsgPack{}.Marshal(entry{Name: "a", NNZ: 3})
	require.NoError(t, err)

	var got entry
	require.NoError(t, MsgPack{}.Unmarshal(b, &got))
	assert.Equal(t, entry{Name: "a", NNZ: 3}, got)
}

func TestJSONCodecsAgree(t *testing.T) {
	v := map[string]any{"dataset_name": "SuiteSparse", "nnz": 7}
	a := MustMarshal(JSON{}, v)
	b := MustMarshal(GoJSON{}, v)
	assert.JSONEq(t, string(a), string(b))
	assert.Equal(t, Default.Name(), "go-json")
}
