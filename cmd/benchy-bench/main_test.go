package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/benchy"
	"github.com/hupe1980/benchy/archive"
	"github.com/hupe1980/benchy/bench"
	"github.com/hupe1980/benchy/matrix"
	"github.com/hupe1980/benchy/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saveDiagonal(t *testing.T, root, name string, n int) {
	t.Helper()
	triplets := make([]matrix.Triplet, n)
	b := make([]float64, n)
	for i := range triplets {
		triplets[i] = matrix.Triplet{Row: i, Col: i, Value: float64(i + 1)}
		b[i] = 1
	}
	a, err := matrix.NewSparse(n, n, triplets)
	require.NoError(t, err)

	p := &problem.Problem{
		A:            a,
		B:            b,
		Scalar:       matrix.Float64,
		IsSPD:        problem.Bool(true),
		IsSequence:   problem.Bool(false),
		Dimension:    1,
		Description:  "diagonal",
		DatasetName:  "unit",
		ProjectURL:   "https://example.com",
		ContactEmail: "dev@example.com",
	}
	path := filepath.Join(root, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, archive.Save(path, p.Document()))
}

func TestRun(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "reports")
	saveDiagonal(t, input, "sym/d3.zst", 3)
	saveDiagonal(t, input, "sym/d5.zst", 5)
	saveDiagonal(t, input, "test/fixture.zst", 2)

	report, err := run(context.Background(), benchy.NoopLogger(), Options{
		Input:   input,
		Regex:   bench.DefaultPattern,
		Output:  output,
		Solvers: []string{"dense-lu"},
		Cache:   1 << 20,
		Store:   StoreOptions{Kind: "local"},
	})
	require.NoError(t, err)
	assert.Equal(t, output, filepath.Dir(report))

	f, err := os.Open(report)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	// Header plus three phases for two experiments.
	require.Len(t, rows, 1+3*2)
	assert.Equal(t, "Group", rows[0][0])
	for _, row := range rows[1:] {
		assert.Equal(t, "dense-lu", row[1])
		assert.Contains(t, []string{"sym/d3.zst", "sym/d5.zst"}, row[11])
		assert.Equal(t, "unit", row[12])
	}
}

func TestRun_NoMatch(t *testing.T) {
	input := t.TempDir()
	saveDiagonal(t, input, "sym/d3.zst", 3)

	_, err := run(context.Background(), benchy.NoopLogger(), Options{
		Input:  input,
		Regex:  `unsym/.*`,
		Output: t.TempDir(),
		Store:  StoreOptions{Kind: "local"},
	})
	assert.ErrorIs(t, err, bench.ErrNoMatch)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("samples: 7\nworkers: 2\nsolvers: [cg]\n"), 0o644))

	cfg, err := loadConfig(Options{Config: path, Workers: 4})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Samples)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"cg"}, cfg.Solvers)

	cfg, err = loadConfig(Options{Solvers: []string{"dense-qr"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"dense-qr"}, cfg.Solvers)
	assert.Equal(t, bench.DefaultConfig().Samples, cfg.Samples)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	_, err := openStore(ctx, StoreOptions{Kind: "minio"}, ".")
	assert.Error(t, err)
	_, err = openStore(ctx, StoreOptions{Kind: "s3"}, ".")
	assert.Error(t, err)
	_, err = openStore(ctx, StoreOptions{Kind: "ftp"}, ".")
	assert.Error(t, err)

	store, err := openStore(ctx, StoreOptions{Kind: "local"}, t.TempDir())
	require.NoError(t, err)
	assert.NotNil(t, store)

	assert.Equal(t, "", remotePrefix("."))
	assert.Equal(t, "problems", remotePrefix("problems"))
}
