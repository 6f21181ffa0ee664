package problem

import (
	"errors"
	"math"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/document"
	"github.com/hupe1980/benchy/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProblem(t *testing.T, kind matrix.ScalarKind) *Problem {
	t.Helper()
	a, err := matrix.NewSparse(3, 3, []matrix.Triplet{
		{Row: 0, Col: 0, Value: 4},
		{Row: 1, Col: 0, Value: -1},
		{Row: 0, Col: 1, Value: -1},
		{Row: 1, Col: 1, Value: 4},
		{Row: 2, Col: 2, Value: math.Pi},
	})
	require.NoError(t, err)
	return &Problem{
		A:            a,
		B:            []float64{1, 0.1, -2.5e-300},
		Scalar:       kind,
		IsSPD:        Bool(true),
		IsSequence:   Bool(false),
		Dimension:    2,
		Description:  `Poisson "2D" \ test`,
		DatasetName:  "poisson",
		ProjectURL:   "https://example.com/poisson",
		ContactEmail: "dev@example.com",
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, newProblem(t, matrix.Float64).Validate())

	err := (&Problem{Scalar: matrix.ScalarKind(7)}).Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, benchy.ErrInvalidProblem)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))

	var fields []string
	for _, e := range merr.Errors {
		var verr *benchy.ValidationError
		require.True(t, errors.As(e, &verr))
		fields = append(fields, verr.Field)
	}
	assert.ElementsMatch(t, []string{
		KeyA, KeyB, KeyScalarKind, KeyIsSPD, KeyIsSequence, KeyDimension,
		KeyDescription, KeyDatasetName, KeyProjectURL, KeyContactEmail,
	}, fields)
}

func TestValidate_RHSLength(t *testing.T) {
	p := newProblem(t, matrix.Float64)
	p.B = p.B[:2]

	var merr *multierror.Error
	require.True(t, errors.As(p.Validate(), &merr))
	require.Len(t, merr.Errors, 1)

	var verr *benchy.ValidationError
	require.True(t, errors.As(merr.Errors[0], &verr))
	assert.Equal(t, KeyB, verr.Field)
}

func TestDocumentDecode(t *testing.T) {
	p := newProblem(t, matrix.Float64)

	got, err := Decode(p.Document())
	require.NoError(t, err)

	p.Version = RawDumpVersion
	assert.True(t, p.A.Equal(got.A))
	got.A = p.A
	assert.Equal(t, p, got)
}

func TestDecode_LegacyKeys(t *testing.T) {
	doc := document.MustFromAny(map[string]any{
		"metadata": map[string]any{
			"is_symmetric_positive_definite": 0,
			"scalar_type":                    "double",
			"dataset_name":                   "legacy",
		},
		"lhs": []any{1, 1, []any{0}, []any{0}, []any{2.0}},
		"rhs": []any{1.0},
	})

	p, err := Decode(doc)
	require.NoError(t, err)
	assert.Equal(t, matrix.Float64, p.Scalar)
	require.NotNil(t, p.IsSPD)
	assert.False(t, *p.IsSPD)
	assert.Nil(t, p.IsSequence)
	assert.Equal(t, "legacy", p.DatasetName)
	assert.Equal(t, []float64{1}, p.B)
	assert.Equal(t, 2.0, p.A.At(0, 0))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  any
	}{
		{"not a map", []any{1}},
		{"missing A", map[string]any{"b": []any{1.0}}},
		{"missing b", map[string]any{"A": []any{1, 1, []any{}, []any{}, []any{}}}},
		{"bad flag", map[string]any{
			"A":        []any{1, 1, []any{}, []any{}, []any{}},
			"b":        []any{1.0},
			"metadata": map[string]any{"is_spd": 5},
		}},
		{"bad dimension", map[string]any{
			"A":        []any{1, 1, []any{}, []any{}, []any{}},
			"b":        []any{1.0},
			"metadata": map[string]any{"dimension": "three"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(document.MustFromAny(tt.doc))
			assert.ErrorIs(t, err, benchy.ErrBadFormat)
		})
	}
}
