package document

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAccessors(t *testing.T) {
	doc := Map(map[string]Value{
		"n":    Int(3),
		"f":    Float(2.0),
		"half": Float(0.5),
		"s":    String("x"),
		"arr":  Array(Int(1), Int(2)),
		"meta": Map(map[string]Value{"dataset_name": String("SuiteSparse")}),
	})

	n, ok := doc.Index(0).AsInt()
	assert.False(t, ok)
	assert.Zero(t, n)

	v, ok := doc.Get("n")
	require.True(t, ok)
	n, ok = v.AsInt()
	require.True(t, ok)
	assert.Equal(t, int64(3), n)

	v, _ = doc.Get("f")
	n, ok = v.AsInt()
	require.True(t, ok, "integral floats convert")
	assert.Equal(t, int64(2), n)

	v, _ = doc.Get("half")
	_, ok = v.AsInt()
	assert.False(t, ok)

	name, ok := doc.Lookup("meta", "dataset_name")
	require.True(t, ok)
	s, ok := name.AsString()
	require.True(t, ok)
	assert.Equal(t, "SuiteSparse", s)

	_, ok = doc.Lookup("meta", "missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"arr", "f", "half", "meta", "n", "s"}, doc.Keys())
	assert.Equal(t, 6, doc.Len())
	assert.Nil(t, doc.Items())
}

func TestValueSetDelete(t *testing.T) {
	doc := NewMap()
	doc.Set("lhs", Int(1))
	assert.True(t, doc.Has("lhs"))

	alias := doc
	alias.Set("rhs", Int(2))
	assert.True(t, doc.Has("rhs"), "copies share map storage")

	doc.Delete("lhs")
	assert.False(t, doc.Has("lhs"))

	assert.Panics(t, func() { Int(1).Set("x", Null()) })
	assert.NotPanics(t, func() { Int(1).Delete("x") })
}

func TestUintNormalization(t *testing.T) {
	assert.Equal(t, KindInt, Uint(42).Kind())
	assert.Equal(t, KindUint, Uint(math.MaxUint64).Kind())
	assert.True(t, Uint(42).Equal(Int(42)))
}

func TestEqual(t *testing.T) {
	a := MustFromAny(map[string]any{
		"x": []any{1, 2.5, "s", nil, true},
		"y": map[string]any{"z": math.NaN()},
	})
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Set("x", Array())
	assert.False(t, a.Equal(b))
	assert.False(t, Int(1).Equal(Float(1)), "kinds differ")
}

func TestClone(t *testing.T) {
	a := Map(map[string]Value{"arr": Array(Int(1))})
	b := a.Clone()
	b.Set("arr", Array(Int(2)))

	v, _ := a.Get("arr")
	assert.True(t, v.Equal(Array(Int(1))))
}

func TestFromAnyUnsupported(t *testing.T) {
	_, err := FromAny(struct{}{})
	assert.Error(t, err)

	_, err = FromAny(map[int]string{1: "a"})
	assert.Error(t, err)

	_, err = FromAny(map[string]any{"a": []any{struct{}{}}})
	assert.Error(t, err)
}

func TestFromAnyTyped(t *testing.T) {
	v, err := FromAny(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.True(t, v.Equal(Map(map[string]Value{"a": Int(1), "b": Int(2)})))

	v, err = FromAny(map[string][]int64{"x": {3, 4}})
	require.NoError(t, err)
	assert.True(t, v.Equal(Map(map[string]Value{"x": Array(Int(3), Int(4))})))

	v, err = FromAny([]uint16{7})
	require.NoError(t, err)
	assert.True(t, v.Equal(Array(Uint(7))))

	v, err = FromAny([2]float32{0.5, 1})
	require.NoError(t, err)
	assert.True(t, v.Equal(Array(Float(0.5), Float(1))))
}

func TestToAny(t *testing.T) {
	v := Map(map[string]Value{
		"a": Array(Int(1), Float(0.5), Null()),
		"b": Bool(true),
	})
	assert.Equal(t, map[string]any{
		"a": []any{int64(1), 0.5, nil},
		"b": true,
	}, v.ToAny())
}
