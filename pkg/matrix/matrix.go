// Package matrix builds the proximity target matrix factorized by the TADW
// engine: a degree-normalized sparse adjacency matrix and its power series.
package matrix

import (
	"errors"
	"fmt"

	"github.com/james-bowman/sparse"
	"github.com/rs/zerolog"

	"github.com/gilchrisn/tadw-embedding/pkg/graph"
)

// ErrInvalidOrder indicates a target matrix order below one.
var ErrInvalidOrder = errors.New("matrix: approximation order must be at least 1")

// NormalizedAdjacency builds the degree-normalized sparse adjacency matrix
// A = A_raw * D^-1, so entry (i,j) is 1/degree(j) when an edge i-j exists.
// Fails on graphs with isolated nodes rather than dividing by zero.
func NormalizedAdjacency(g *graph.Graph) (*sparse.CSR, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	n := g.NumNodes
	dok := sparse.NewDOK(n, n)
	for u := 0; u < n; u++ {
		for _, v := range g.Adjacency[u] {
			// A self-loop cell carries both of its endpoints' raw weight, so
			// every column of A_raw still sums to the node's degree.
			weight := 1.0
			if u == v {
				weight = 2.0
			}
			dok.Set(u, v, weight/float64(g.Degrees[v]))
		}
	}
	return dok.ToCSR(), nil
}

// TargetMatrix accumulates the exact power series A + A^2 + ... + A^order via
// repeated sparse multiplication. The sparsity pattern generally densifies
// with higher orders; NNZ per step is reported through the logger.
func TargetMatrix(a *sparse.CSR, order int, logger zerolog.Logger) (*sparse.CSR, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, order)
	}
	if order == 1 {
		return a, nil
	}

	powered := a
	accumulated := a
	for step := 2; step <= order; step++ {
		next := &sparse.CSR{}
		next.Mul(powered, a)

		sum := &sparse.CSR{}
		sum.Add(accumulated, next)

		powered, accumulated = next, sum
		logger.Info().
			Int("order", step).
			Int("nnz", accumulated.NNZ()).
			Msg("Accumulated adjacency power")
	}
	return accumulated, nil
}
