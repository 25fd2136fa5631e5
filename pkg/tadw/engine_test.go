package tadw

import (
	"context"
	"math"
	"testing"

	"github.com/james-bowman/sparse"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gilchrisn/tadw-embedding/pkg/graph"
	"github.com/gilchrisn/tadw-embedding/pkg/matrix"
)

func testConfig() *Config {
	cfg := NewConfig()
	cfg.Set("model.dimensions", 2)
	cfg.Set("model.iterations", 10)
	return cfg
}

// pathTarget builds the order-2 target matrix for the 5-node path graph
// 0-1, 1-2, 2-3, 3-4.
func pathTarget(t *testing.T) *sparse.CSR {
	t.Helper()
	g := graph.NewGraph(5)
	for i := 0; i < 4; i++ {
		require.NoError(t, g.AddEdge(i, i+1))
	}
	a, err := matrix.NormalizedAdjacency(g)
	require.NoError(t, err)
	m, err := matrix.TargetMatrix(a, 2, zerolog.Nop())
	require.NoError(t, err)
	return m
}

// pathFeatures builds the binary indicator matrix for the feature mapping
// {"0":[0], "1":[1], "2":[0,1], "3":[1], "4":[0]}.
func pathFeatures(t *testing.T) *sparse.CSR {
	t.Helper()
	dok := sparse.NewDOK(2, 5)
	dok.Set(0, 0, 1.0)
	dok.Set(1, 1, 1.0)
	dok.Set(0, 2, 1.0)
	dok.Set(1, 2, 1.0)
	dok.Set(1, 3, 1.0)
	dok.Set(0, 4, 1.0)
	return dok.ToCSR()
}

func TestRunEmbeddingShape(t *testing.T) {
	engine := NewEngine(pathTarget(t), pathFeatures(t), testConfig(), zerolog.Nop())

	result, err := engine.Run(context.Background())
	require.NoError(t, err)

	rows, cols := result.Embedding.Dims()
	assert.Equal(t, 5, rows, "one row per node")
	assert.Equal(t, 2, cols, "one column per dimension")

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := result.Embedding.At(i, j)
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "entry (%d,%d)", i, j)
		}
	}
	assert.Equal(t, 10, result.Statistics.Iterations)
}

func TestRunReproducible(t *testing.T) {
	cfg := testConfig()
	first, err := NewEngine(pathTarget(t), pathFeatures(t), cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)
	second, err := NewEngine(pathTarget(t), pathFeatures(t), cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.True(t, mat.Equal(first.Embedding, second.Embedding), "same seed must reproduce the embedding")
}

func TestRunSeedChangesEmbedding(t *testing.T) {
	cfg := testConfig()
	first, err := NewEngine(pathTarget(t), pathFeatures(t), cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	cfg.Set("model.random_seed", int64(7))
	second, err := NewEngine(pathTarget(t), pathFeatures(t), cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.False(t, mat.Equal(first.Embedding, second.Embedding))
}

func TestRunLossDecreases(t *testing.T) {
	result, err := NewEngine(pathTarget(t), pathFeatures(t), testConfig(), zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	assert.Less(t, result.Statistics.FinalLoss, result.Statistics.InitialLoss)
}

func TestRunDenseFeaturesMatchSparse(t *testing.T) {
	cfg := testConfig()
	sparseFeats := pathFeatures(t)
	denseFeats := mat.DenseCopyOf(sparseFeats)

	fromSparse, err := NewEngine(pathTarget(t), sparseFeats, cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)
	fromDense, err := NewEngine(pathTarget(t), denseFeats, cfg, zerolog.Nop()).Run(context.Background())
	require.NoError(t, err)

	rows, cols := fromSparse.Embedding.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			assert.InDelta(t, fromSparse.Embedding.At(i, j), fromDense.Embedding.At(i, j), 1e-9)
		}
	}
}

func TestRunDimensionMismatch(t *testing.T) {
	undersized := sparse.NewDOK(2, 4).ToCSR()
	_, err := NewEngine(pathTarget(t), undersized, testConfig(), zerolog.Nop()).Run(context.Background())
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRunTargetNotSquare(t *testing.T) {
	target := mat.NewDense(2, 3, nil)
	_, err := NewEngine(target, pathFeatures(t), testConfig(), zerolog.Nop()).Run(context.Background())
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(pathTarget(t), pathFeatures(t), testConfig(), zerolog.Nop()).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFloorClamp(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1.0, 0.0, -0.5, 1e-20})
	floorClamp(m, 1e-15)

	assert.Equal(t, 1.0, m.At(0, 0))
	assert.Equal(t, 1e-15, m.At(0, 1))
	assert.Equal(t, 1e-15, m.At(1, 0))
	assert.Equal(t, 1e-15, m.At(1, 1))
}

func TestCheckFinite(t *testing.T) {
	clean := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	assert.NoError(t, checkFinite(clean))

	withNaN := mat.NewDense(2, 2, []float64{1, math.NaN(), 3, 4})
	require.ErrorIs(t, checkFinite(withNaN), ErrNotFinite)

	withInf := mat.NewDense(2, 2, []float64{1, 2, math.Inf(1), 4})
	require.ErrorIs(t, checkFinite(withInf), ErrNotFinite)
}
