package matrix

import (
	"math"
	"testing"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"
)

func TestEncodeDense(t *testing.T) {
	t.Run("matrix", func(t *testing.T) {
		v := EncodeDense(mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
		assert.Equal(t, `[[1,2],[3,4]]`, v.String())
	})

	t.Run("column", func(t *testing.T) {
		v := EncodeDense(mat.NewVecDense(3, []float64{1, 2, 3}))
		assert.Equal(t, `[1,2,3]`, v.String())
	})

	t.Run("empty", func(t *testing.T) {
		v := EncodeDense(&mat.Dense{})
		assert.Equal(t, document.KindArray, v.Kind())
		assert.Zero(t, v.Len())
	})
}

func TestDenseRoundTrip(t *testing.T) {
	for _, m := range []*mat.Dense{
		mat.NewDense(2, 3, []float64{1, 0.1, -3, math.Inf(1), 5, 1e-310}),
		mat.NewDense(3, 1, []float64{1, 2, 3}),
		mat.NewDense(1, 4, []float64{1, 2, 3, 4}),
	} {
		b, err := msgpack.Marshal(EncodeDense(m))
		require.NoError(t, err)
		var v document.Value
		require.NoError(t, msgpack.Unmarshal(b, &v))

		got, err := DecodeDense(v)
		require.NoError(t, err)
		assert.True(t, mat.Equal(m, got))
	}
}

func TestDecodeDense(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		d, err := DecodeDense(document.Array())
		require.NoError(t, err)
		assert.True(t, d.IsEmpty())
	})

	t.Run("flat", func(t *testing.T) {
		d, err := DecodeDense(document.MustFromAny([]any{1, 2.5}))
		require.NoError(t, err)
		r, c := d.Dims()
		assert.Equal(t, 2, r)
		assert.Equal(t, 1, c)
		assert.Equal(t, 2.5, d.At(1, 0))
	})

	t.Run("ragged", func(t *testing.T) {
		_, err := DecodeDense(document.MustFromAny([]any{[]any{1, 2}, []any{3}}))
		assert.ErrorIs(t, err, benchy.ErrShapeMismatch)
	})

	t.Run("mixed", func(t *testing.T) {
		_, err := DecodeDense(document.MustFromAny([]any{1, []any{3}}))
		assert.ErrorIs(t, err, benchy.ErrShapeMismatch)
	})

	t.Run("rows without columns", func(t *testing.T) {
		_, err := DecodeDense(document.MustFromAny([]any{[]any{}, []any{}}))
		assert.ErrorIs(t, err, benchy.ErrBadFormat)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := DecodeDense(document.MustFromAny([]any{"1"}))
		assert.ErrorIs(t, err, benchy.ErrBadFormat)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := DecodeDense(document.Int(1))
		assert.ErrorIs(t, err, benchy.ErrBadFormat)
	})
}

func TestDecodeVector(t *testing.T) {
	x, err := DecodeVector(EncodeVector([]float64{1, 2, 3}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, x)

	x, err = DecodeVector(document.Array())
	require.NoError(t, err)
	assert.Empty(t, x)

	_, err = DecodeVector(EncodeDense(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	assert.ErrorIs(t, err, benchy.ErrShapeMismatch)
}

func TestEncodeSparse(t *testing.T) {
	s, err := NewSparse(3, 3, []Triplet{{2, 2, 3.5}, {0, 0, 1.5}, {1, 1, 2.5}})
	require.NoError(t, err)

	v := EncodeSparse(s)
	assert.Equal(t, `[3,3,[0,1,2],[0,1,2],[1.5,2.5,3.5]]`, v.String())

	got, err := DecodeSparse(v)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}

func TestSparseRoundTrip_Msgpack(t *testing.T) {
	s, err := NewSparse(4, 2, []Triplet{{3, 1, 0.1}, {0, 0, -2}, {1, 1, 1e300}})
	require.NoError(t, err)

	b, err := msgpack.Marshal(EncodeSparse(s))
	require.NoError(t, err)
	var v document.Value
	require.NoError(t, msgpack.Unmarshal(b, &v))

	got, err := DecodeSparse(v)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}

func TestDecodeSparse_Duplicates(t *testing.T) {
	v := document.MustFromAny([]any{2, 2, []any{0, 0}, []any{1, 1}, []any{1.5, 2.5}})
	s, err := DecodeSparse(v)
	require.NoError(t, err)
	assert.Equal(t, 1, s.NNZ())
	assert.Equal(t, 4.0, s.At(0, 1))
}

func TestDecodeSparse_Rejects(t *testing.T) {
	tests := map[string]any{
		"four-tuple":       []any{2, 2, []any{}, []any{}},
		"six-tuple":        []any{2, 2, []any{}, []any{}, []any{}, 0},
		"not an array":     map[string]any{"rows": 2},
		"negative rows":    []any{-1, 2, []any{}, []any{}, []any{}},
		"length mismatch":  []any{2, 2, []any{0, 1}, []any{0}, []any{1}},
		"index out of dim": []any{2, 2, []any{5}, []any{0}, []any{1}},
		"string value":     []any{2, 2, []any{0}, []any{0}, []any{"1"}},
		"fractional index": []any{2, 2, []any{0.5}, []any{0}, []any{1}},
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeSparse(document.MustFromAny(in))
			assert.ErrorIs(t, err, benchy.ErrBadFormat)
		})
	}
}
