// Package tadw implements Text-Associated DeepWalk: regularized alternating
// factorization of a multi-hop proximity matrix guided by node features.
package tadw

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"
)

// Result represents the engine output
type Result struct {
	Embedding  *mat.Dense `json:"-"` // node_count x dimensions, rows in node ID order
	Statistics Statistics `json:"statistics"`
}

// Statistics contains optimization performance metrics
type Statistics struct {
	Iterations  int     `json:"iterations"`
	InitialLoss float64 `json:"initial_loss"`
	FinalLoss   float64 `json:"final_loss"`
	RuntimeMS   int64   `json:"runtime_ms"`
}

// Engine factorizes a target proximity matrix M into low-rank factors W and H
// such that (W*T)' * H approximates M, where T is the node feature matrix.
// W (dimensions x feature_count) spans the feature space, H (dimensions x
// node_count) holds the per-node factors that become the embedding.
//
// Both updates are gradient steps on the regularized reconstruction error
//
//	||M - (W*T)'*H||^2 + lambda*(||W||^2 + ||H||^2)
//
// with every factor entry floored at the configured lower control value
// after each step to keep later divisions and products away from zero.
// The engine owns W and H for the duration of the run.
type Engine struct {
	target mat.Matrix // M, node_count x node_count
	feats  mat.Matrix // T, feature_count x node_count, dense or sparse
	cfg    *Config
	logger zerolog.Logger

	w *mat.Dense
	h *mat.Dense
}

// NewEngine creates a factorization engine over the given target and feature
// matrices. The feature matrix may be dense or sparse; both go through the
// same gonum mat.Matrix operations.
func NewEngine(target, feats mat.Matrix, cfg *Config, logger zerolog.Logger) *Engine {
	return &Engine{
		target: target,
		feats:  feats,
		cfg:    cfg,
		logger: logger,
	}
}

// Run executes the fixed iteration budget and returns the learned embedding.
// There is no convergence-based early stopping.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()

	rows, cols := e.target.Dims()
	if rows != cols {
		return nil, fmt.Errorf("%w: target matrix is %dx%d, want square", ErrDimensionMismatch, rows, cols)
	}
	featureCount, nodeCols := e.feats.Dims()
	if nodeCols != rows {
		return nil, fmt.Errorf("%w: feature matrix covers %d nodes, target matrix %d", ErrDimensionMismatch, nodeCols, rows)
	}

	e.initFactors(featureCount, rows)

	initialLoss := e.loss()
	e.logger.Info().
		Int("nodes", rows).
		Int("features", featureCount).
		Int("dimensions", e.cfg.Dimensions()).
		Float64("loss", initialLoss).
		Msg("Factorization started")

	interval := e.cfg.ProgressInterval()
	iterations := e.cfg.Iterations()
	for iter := 1; iter <= iterations; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e.updateW()
		e.updateH()

		if interval > 0 && iter%interval == 0 {
			e.logger.Info().
				Int("iteration", iter).
				Float64("loss", e.loss()).
				Msg("Optimization progress")
		}
	}

	embedding := mat.DenseCopyOf(e.h.T())
	if err := checkFinite(embedding); err != nil {
		return nil, err
	}

	result := &Result{
		Embedding: embedding,
		Statistics: Statistics{
			Iterations:  iterations,
			InitialLoss: initialLoss,
			FinalLoss:   e.loss(),
			RuntimeMS:   time.Since(startTime).Milliseconds(),
		},
	}

	e.logger.Info().
		Float64("loss", result.Statistics.FinalLoss).
		Int64("runtime_ms", result.Statistics.RuntimeMS).
		Msg("Factorization complete")

	return result, nil
}

// initFactors draws W and H from Uniform[0,1) with the configured seed.
func (e *Engine) initFactors(featureCount, nodeCount int) {
	rng := rand.New(rand.NewSource(e.cfg.RandomSeed()))
	dims := e.cfg.Dimensions()

	e.w = mat.NewDense(dims, featureCount, nil)
	fillUniform(e.w, rng)
	e.h = mat.NewDense(dims, nodeCount, nil)
	fillUniform(e.h, rng)
}

// projection computes P = W*T, the factor basis projected into node space.
func (e *Engine) projection() *mat.Dense {
	var p mat.Dense
	p.Mul(e.w, e.feats)
	return &p
}

// residual computes M - P'*H, the current reconstruction error.
func (e *Engine) residual(p *mat.Dense) *mat.Dense {
	var recon mat.Dense
	recon.Mul(p.T(), e.h)

	var res mat.Dense
	res.Sub(e.target, &recon)
	return &res
}

// updateW performs one gradient step on W holding H fixed.
func (e *Engine) updateW() {
	p := e.projection()
	res := e.residual(p)

	var he mat.Dense
	he.Mul(e.h, res.T())
	var descent mat.Dense
	descent.Mul(&he, e.feats.T())

	e.step(e.w, &descent)
}

// updateH performs one gradient step on H holding W fixed.
func (e *Engine) updateH() {
	p := e.projection()
	res := e.residual(p)

	var descent mat.Dense
	descent.Mul(p, res)

	e.step(e.h, &descent)
}

// step applies factor -= alpha * (lambda*factor - descent) and floors the
// result at the lower control value.
func (e *Engine) step(factor, descent *mat.Dense) {
	var grad mat.Dense
	grad.Scale(e.cfg.Lambda(), factor)
	grad.Sub(&grad, descent)
	grad.Scale(e.cfg.Alpha(), &grad)

	factor.Sub(factor, &grad)
	floorClamp(factor, e.cfg.LowerControl())
}

// loss evaluates the regularized objective on the current factors.
func (e *Engine) loss() float64 {
	res := e.residual(e.projection())
	reconstruction := mat.Norm(res, 2)
	wNorm := mat.Norm(e.w, 2)
	hNorm := mat.Norm(e.h, 2)
	return reconstruction*reconstruction + e.cfg.Lambda()*(wNorm*wNorm+hNorm*hNorm)
}

func fillUniform(m *mat.Dense, rng *rand.Rand) {
	raw := m.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j := range row {
			row[j] = rng.Float64()
		}
	}
}

// floorClamp raises every entry below eps to eps.
func floorClamp(m *mat.Dense, eps float64) {
	raw := m.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j, v := range row {
			if v < eps {
				row[j] = eps
			}
		}
	}
}

// checkFinite rejects matrices containing NaN or Inf values so a diverged
// run fails instead of silently exporting garbage.
func checkFinite(m *mat.Dense) error {
	raw := m.RawMatrix()
	for i := 0; i < raw.Rows; i++ {
		row := raw.Data[i*raw.Stride : i*raw.Stride+raw.Cols]
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: entry (%d,%d) = %v", ErrNotFinite, i, j, v)
			}
		}
	}
	return nil
}
