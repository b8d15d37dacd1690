// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// ErrTooManyItems is returned when the item-item system would not fit the
// configured bound.
var ErrTooManyItems = errors.New("too many items for dense item-item model")

// EASEConfig contains configuration for the EASE algorithm.
type EASEConfig struct {
	// L2Regularization is the L2 regularization parameter (lambda).
	// Higher values produce more conservative recommendations.
	// Typical range: 100-1000.
	L2Regularization float64

	// MaxItems bounds the catalog size. Training is cubic in the number of
	// items and holds two dense items x items matrices.
	MaxItems int
}

// DefaultEASEConfig returns default EASE configuration.
func DefaultEASEConfig() EASEConfig {
	return EASEConfig{
		L2Regularization: 500.0,
		MaxItems:         5000,
	}
}

// EASE implements Embarrassingly Shallow Autoencoders (Steck, 2019), a linear
// item-item model with a closed-form solution:
//
//	P = (X'X + lambda*I)^-1
//	B[i][j] = -P[i][j] / P[j][j],  B[j][j] = 0
//
// X is the binary user x item matrix; any non-empty cell is a 1. A user's
// score for item j is the sum of B[i][j] over the items i they interacted
// with.
type EASE struct {
	BaseAlgorithm
	config EASEConfig

	// B is the item-item weight matrix.
	B [][]float64

	// m is kept for the users' interacted columns.
	m *recommend.SparseMatrix
}

// NewEASE creates a new EASE trainer with the given configuration.
func NewEASE(cfg EASEConfig) *EASE {
	def := DefaultEASEConfig()
	if cfg.L2Regularization <= 0 {
		cfg.L2Regularization = def.L2Regularization
	}
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = def.MaxItems
	}
	return &EASE{
		BaseAlgorithm: NewBaseAlgorithm("ease"),
		config:        cfg,
	}
}

// Train computes the weight matrix and returns the model as the predictor.
func (e *EASE) Train(ctx context.Context, m *recommend.SparseMatrix) (recommend.Predictor, error) {
	e.acquireTrainLock()
	defer e.releaseTrainLock()

	numUsers, numItems := m.Dims()
	if numUsers == 0 || numItems == 0 || m.NNZ() == 0 {
		return nil, ErrEmptyMatrix
	}
	if numItems > e.config.MaxItems {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyItems, numItems, e.config.MaxItems)
	}

	// G = X'X + lambda*I
	G := make([][]float64, numItems)
	for i := range G {
		G[i] = make([]float64, numItems)
		G[i][i] = e.config.L2Regularization
	}
	for u := 0; u < numUsers; u++ {
		cols, _ := m.Row(u)
		for a, i := range cols {
			for _, j := range cols[a:] {
				G[i][j]++
				if i != j {
					G[j][i]++
				}
			}
		}
		if u%1024 == 0 && ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
	}

	L, err := choleskyDecomposition(G)
	if err != nil {
		return nil, fmt.Errorf("ease: %w", err)
	}
	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}
	P := choleskyInverse(L)

	B := make([][]float64, numItems)
	for i := range B {
		B[i] = make([]float64, numItems)
		for j := 0; j < numItems; j++ {
			if i != j {
				B[i][j] = -P[i][j] / P[j][j]
			}
		}
	}

	e.B = B
	e.m = m
	e.markTrained()
	return e, nil
}

// Predict returns the score of each item in itemIndices for the user.
func (e *EASE) Predict(userIndex int, itemIndices []int) []float64 {
	e.acquirePredictLock()
	defer e.releasePredictLock()

	scores := make([]float64, len(itemIndices))
	if !e.trained || e.m == nil {
		return scores
	}
	numUsers, numItems := e.m.Dims()
	if userIndex < 0 || userIndex >= numUsers {
		return scores
	}

	cols, _ := e.m.Row(userIndex)
	for k, item := range itemIndices {
		if item < 0 || item >= numItems {
			scores[k] = math.Inf(-1)
			continue
		}
		var s float64
		for _, i := range cols {
			s += e.B[i][item]
		}
		scores[k] = s
	}
	return scores
}

// choleskyDecomposition computes L with A = L * L' for a symmetric
// positive-definite A.
//
//nolint:gocritic // A, L follow standard linear algebra notation
func choleskyDecomposition(A [][]float64) ([][]float64, error) {
	n := len(A)
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
					return nil, fmt.Errorf("matrix is not positive definite")
				}
				L[i][j] = math.Sqrt(sum)
			} else {
				L[i][j] = sum / L[j][j]
			}
		}
	}
	return L, nil
}

// choleskyInverse computes A^-1 = L^-T * L^-1 from the Cholesky factor of A.
//
//nolint:gocritic // L follows standard linear algebra notation
func choleskyInverse(L [][]float64) [][]float64 {
	n := len(L)

	Linv := make([][]float64, n)
	for i := range Linv {
		Linv[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		Linv[i][i] = 1.0 / L[i][i]
		for j := i + 1; j < n; j++ {
			var sum float64
			for k := i; k < j; k++ {
				sum -= L[j][k] * Linv[k][i]
			}
			Linv[j][i] = sum / L[j][j]
		}
	}

	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			var sum float64
			for k := i; k < n; k++ {
				sum += Linv[k][i] * Linv[k][j]
			}
			inv[i][j] = sum
			inv[j][i] = sum
		}
	}
	return inv
}
