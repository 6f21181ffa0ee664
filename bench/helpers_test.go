package bench

import (
	"context"
	"testing"

	"github.com/hupe1980/benchy/archive"
	"github.com/hupe1980/benchy/blobstore"
	"github.com/hupe1980/benchy/matrix"
	"github.com/hupe1980/benchy/problem"
	"github.com/stretchr/testify/require"
)

// laplacianProblem returns the SPD n x n 1D Laplacian with b = A * ones.
func laplacianProblem(t *testing.T, n int, dataset string) *problem.Problem {
	t.Helper()
	var triplets []matrix.Triplet
	for i := 0; i < n; i++ {
		triplets = append(triplets, matrix.Triplet{Row: i, Col: i, Value: 2})
		if i > 0 {
			triplets = append(triplets,
				matrix.Triplet{Row: i, Col: i - 1, Value: -1},
				matrix.Triplet{Row: i - 1, Col: i, Value: -1})
		}
	}
	a, err := matrix.NewSparse(n, n, triplets)
	require.NoError(t, err)

	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	return &problem.Problem{
		A:            a,
		B:            a.MulVec(ones),
		Scalar:       matrix.Float64,
		IsSPD:        problem.Bool(true),
		IsSequence:   problem.Bool(false),
		Dimension:    1,
		Description:  "1D Laplacian",
		DatasetName:  dataset,
		ProjectURL:   "https://example.com",
		ContactEmail: "dev@example.com",
	}
}

func putProblem(t *testing.T, store blobstore.BlobStore, name string, p *problem.Problem) {
	t.Helper()
	require.NoError(t, archive.SaveBlob(context.Background(), store, name, p.Document()))
}
