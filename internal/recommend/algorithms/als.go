// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// ErrEmptyMatrix is returned when there is nothing to factorize.
var ErrEmptyMatrix = errors.New("interaction matrix is empty")

// ALSConfig contains configuration for the ALS algorithm.
type ALSConfig struct {
	// NumFactors is the dimension of the latent factor vectors.
	NumFactors int

	// NumIterations is the number of alternating sweeps.
	NumIterations int

	// Regularization is the L2 penalty.
	Regularization float64

	// Alpha scales the confidence transformation c = 1 + alpha * r, where r
	// is the summed interaction rating of a cell.
	Alpha float64

	// NumWorkers is the number of parallel solvers per sweep.
	// If <= 0, defaults to 4.
	NumWorkers int

	// Seed makes factor initialization reproducible.
	Seed int64
}

// DefaultALSConfig returns default ALS configuration.
func DefaultALSConfig() ALSConfig {
	return ALSConfig{
		NumFactors:     32,
		NumIterations:  15,
		Regularization: 0.1,
		Alpha:          40.0,
		NumWorkers:     4,
		Seed:           42,
	}
}

// ALS implements Alternating Least Squares for implicit feedback
// (Hu, Koren, Volinsky, 2008). It factorizes the user x item matrix into
// user factors X and item factors Y, minimizing
//
//	sum_{u,i} c_ui * (p_ui - x_u' * y_i)^2 + lambda * (||x_u||^2 + ||y_i||^2)
//
// where p_ui = 1 for observed cells and c_ui = 1 + alpha * r_ui.
//
// Matrix row and column indices are the dense indices of the interaction
// index, so Predict takes those indices directly.
type ALS struct {
	BaseAlgorithm
	config ALSConfig

	// X is the user factor matrix (numUsers x numFactors)
	X [][]float64

	// Y is the item factor matrix (numItems x numFactors)
	Y [][]float64
}

// NewALS creates a new ALS trainer with the given configuration.
func NewALS(cfg ALSConfig) *ALS {
	def := DefaultALSConfig()
	if cfg.NumFactors <= 0 {
		cfg.NumFactors = def.NumFactors
	}
	if cfg.NumIterations <= 0 {
		cfg.NumIterations = def.NumIterations
	}
	if cfg.Regularization <= 0 {
		cfg.Regularization = def.Regularization
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = def.Alpha
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = def.NumWorkers
	}
	return &ALS{
		BaseAlgorithm: NewBaseAlgorithm("als"),
		config:        cfg,
	}
}

// Train fits the factors and returns the model itself as the predictor.
func (a *ALS) Train(ctx context.Context, m *recommend.SparseMatrix) (recommend.Predictor, error) {
	a.acquireTrainLock()
	defer a.releaseTrainLock()

	numUsers, numItems := m.Dims()
	if numUsers == 0 || numItems == 0 || m.NNZ() == 0 {
		return nil, ErrEmptyMatrix
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	userItems := m
	itemUsers := m.Transpose()

	rng := rand.New(rand.NewSource(a.config.Seed)) //nolint:gosec // factor initialization, not security
	a.X = randomFactors(rng, numUsers, a.config.NumFactors)
	a.Y = randomFactors(rng, numItems, a.config.NumFactors)

	for iter := 0; iter < a.config.NumIterations; iter++ {
		// fix Y, solve for X
		if err := a.sweep(ctx, userItems, a.X, a.Y); err != nil {
			return nil, err
		}
		// fix X, solve for Y
		if err := a.sweep(ctx, itemUsers, a.Y, a.X); err != nil {
			return nil, err
		}
	}

	a.markTrained()
	return a, nil
}

func randomFactors(rng *rand.Rand, rows, factors int) [][]float64 {
	out := make([][]float64, rows)
	for r := range out {
		out[r] = make([]float64, factors)
		for f := range out[r] {
			out[r][f] = 0.1 * (rng.Float64() - 0.5)
		}
	}
	return out
}

// sweep solves every row of target against the fixed factors. Rows are split
// into contiguous chunks, one per worker; each worker writes only its rows.
func (a *ALS) sweep(ctx context.Context, m *recommend.SparseMatrix, target, fixed [][]float64) error {
	numFactors := a.config.NumFactors
	gram := gramMatrix(fixed, numFactors)

	rows := len(target)
	chunkSize := (rows + a.config.NumWorkers - 1) / a.config.NumWorkers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < rows; start += chunkSize {
		start := start
		end := min(start+chunkSize, rows)
		g.Go(func() error {
			for r := start; r < end; r++ {
				if ContextCancelled(gctx) {
					return gctx.Err()
				}
				cols, vals := m.Row(r)
				target[r] = a.solveRow(cols, vals, fixed, gram)
			}
			return nil
		})
	}
	return g.Wait()
}

// gramMatrix computes F'F.
func gramMatrix(f [][]float64, numFactors int) [][]float64 {
	g := make([][]float64, numFactors)
	for i := range g {
		g[i] = make([]float64, numFactors)
	}
	for _, row := range f {
		for f1 := 0; f1 < numFactors; f1++ {
			for f2 := f1; f2 < numFactors; f2++ {
				g[f1][f2] += row[f1] * row[f2]
			}
		}
	}
	for f1 := 0; f1 < numFactors; f1++ {
		for f2 := 0; f2 < f1; f2++ {
			g[f1][f2] = g[f2][f1]
		}
	}
	return g
}

// solveRow computes x = (F'F + F'(C-I)F + lambda*I)^-1 F'Cp for one row.
//
//nolint:gocritic // A follows standard linear algebra notation
func (a *ALS) solveRow(cols []int, vals []float64, fixed, gram [][]float64) []float64 {
	numFactors := a.config.NumFactors

	A := make([][]float64, numFactors)
	for f := range A {
		A[f] = make([]float64, numFactors)
		copy(A[f], gram[f])
		A[f][f] += a.config.Regularization
	}

	b := make([]float64, numFactors)
	for k, c := range cols {
		conf := 1.0 + a.config.Alpha*vals[k]
		y := fixed[c]
		cMinus1 := conf - 1.0
		for f1 := 0; f1 < numFactors; f1++ {
			for f2 := f1; f2 < numFactors; f2++ {
				delta := cMinus1 * y[f1] * y[f2]
				A[f1][f2] += delta
				if f1 != f2 {
					A[f2][f1] += delta
				}
			}
			b[f1] += conf * y[f1]
		}
	}
	return solveLinearSystem(A, b)
}

// solveLinearSystem solves A*x = b using Cholesky decomposition.
//
//nolint:gocritic // A, L follow standard linear algebra notation
func solveLinearSystem(A [][]float64, b []float64) []float64 {
	n := len(b)

	L := make([][]float64, n)
	for i := range L {
		L[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			sum := A[i][j]
			for k := 0; k < j; k++ {
				sum -= L[i][k] * L[j][k]
			}
			if i == j {
				if sum <= 0 {
					sum = 1e-10
				}
				L[i][j] = math.Sqrt(sum)
			} else if L[j][j] != 0 {
				L[i][j] = sum / L[j][j]
			}
		}
	}

	// forward substitution: L z = b
	z := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := b[i]
		for j := 0; j < i; j++ {
			sum -= L[i][j] * z[j]
		}
		if L[i][i] != 0 {
			z[i] = sum / L[i][i]
		}
	}

	// back substitution: L' x = z
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := z[i]
		for j := i + 1; j < n; j++ {
			sum -= L[j][i] * x[j]
		}
		if L[i][i] != 0 {
			x[i] = sum / L[i][i]
		}
	}
	return x
}

// Predict returns x_u' * y_i for each requested item. Unknown users or
// items score 0.
func (a *ALS) Predict(userIndex int, itemIndices []int) []float64 {
	a.acquirePredictLock()
	defer a.releasePredictLock()

	scores := make([]float64, len(itemIndices))
	if !a.trained || userIndex < 0 || userIndex >= len(a.X) {
		return scores
	}
	userVec := a.X[userIndex]
	for k, item := range itemIndices {
		if item < 0 || item >= len(a.Y) {
			continue
		}
		var score float64
		for f := range userVec {
			score += userVec[f] * a.Y[item][f]
		}
		scores[k] = score
	}
	return scores
}
