package matrix

import (
	"math"
	"testing"

	"github.com/hupe1980/benchy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHex(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1.5, "0x1.8p+0"},
		{1, "0x1p+0"},
		{-0.125, "-0x1p-3"},
		{0, "0x0p+0"},
		{1024, "0x1p+10"},
		{math.Inf(1), "inf"},
		{math.Inf(-1), "-inf"},
		{math.NaN(), "nan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHex(tt.in), "FormatHex(%v)", tt.in)
	}
}

func TestHexRoundTrip(t *testing.T) {
	values := []float64{
		0.1, -1e-300, math.MaxFloat64, math.SmallestNonzeroFloat64,
		math.Pi, 123456789.123456789, math.Copysign(0, -1),
	}
	for _, v := range values {
		got, err := ParseHex(FormatHex(v), Float64)
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(v), math.Float64bits(got), "value %v", v)
	}

	got, err := ParseHex("nan", Float64)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(got))

	got, err = ParseHex("-inf", Float64)
	require.NoError(t, err)
	assert.True(t, math.IsInf(got, -1))
}

func TestParseHex_Float32(t *testing.T) {
	v := float64(float32(0.1))
	got, err := ParseHex(FormatHex(v), Float32)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	got, err = ParseHex(FormatHex(0.1), Float32)
	require.NoError(t, err)
	assert.Equal(t, float64(float32(0.1)), got, "rounded to single precision")

	_, err = ParseHex(FormatHex(1e300), Float32)
	assert.ErrorIs(t, err, benchy.ErrBadFormat, "out of float range")
}

func TestParseHex_Malformed(t *testing.T) {
	for _, s := range []string{"", "0x1.8", "abc", "1.5.5"} {
		_, err := ParseHex(s, Float64)
		assert.ErrorIs(t, err, benchy.ErrBadFormat, "input %q", s)
	}
}

func TestScalarKind(t *testing.T) {
	assert.Equal(t, Float64, ParseScalarKind("double"))
	assert.Equal(t, Float32, ParseScalarKind("float"))
	assert.Equal(t, Float32, ParseScalarKind(""))
	assert.Equal(t, "double", Float64.String())
	assert.Equal(t, "float", Float32.String())
	assert.Equal(t, 32, Float32.BitSize())
}
