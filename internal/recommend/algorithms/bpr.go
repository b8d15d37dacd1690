// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"context"
	"math"
	"math/rand"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// BPRConfig contains configuration for the BPR algorithm.
type BPRConfig struct {
	// NumFactors is the dimension of the latent factor vectors.
	NumFactors int

	// LearningRate is the SGD step size.
	LearningRate float64

	// Regularization is the L2 penalty.
	Regularization float64

	// NumIterations is the number of epochs over all positive cells.
	NumIterations int

	// NumNegativeSamples is how many unseen items are sampled per positive.
	NumNegativeSamples int

	// Seed for reproducible training.
	Seed int64
}

// DefaultBPRConfig returns default BPR configuration.
func DefaultBPRConfig() BPRConfig {
	return BPRConfig{
		NumFactors:         32,
		LearningRate:       0.05,
		Regularization:     0.01,
		NumIterations:      30,
		NumNegativeSamples: 5,
		Seed:               42,
	}
}

// BPR implements Bayesian Personalized Ranking (Rendle et al., 2009), a
// pairwise ranking objective over matrix factorization:
//
//	maximize sum_{u,i,j} ln(sigmoid(x_ui - x_uj)) - lambda*||theta||^2
//
// where i is an observed item and j an unobserved one for user u. Unlike ALS
// it ignores interaction magnitude: any non-empty cell is a positive.
type BPR struct {
	BaseAlgorithm
	config BPRConfig

	userFactors [][]float64
	itemFactors [][]float64
}

// NewBPR creates a new BPR trainer with the given configuration.
func NewBPR(cfg BPRConfig) *BPR {
	def := DefaultBPRConfig()
	if cfg.NumFactors <= 0 {
		cfg.NumFactors = def.NumFactors
	}
	if cfg.LearningRate <= 0 {
		cfg.LearningRate = def.LearningRate
	}
	if cfg.Regularization <= 0 {
		cfg.Regularization = def.Regularization
	}
	if cfg.NumIterations <= 0 {
		cfg.NumIterations = def.NumIterations
	}
	if cfg.NumNegativeSamples <= 0 {
		cfg.NumNegativeSamples = def.NumNegativeSamples
	}
	return &BPR{
		BaseAlgorithm: NewBaseAlgorithm("bpr"),
		config:        cfg,
	}
}

// Train fits the factors with stochastic gradient descent and returns the
// model itself as the predictor.
//
//nolint:gocyclo // SGD training loop
func (b *BPR) Train(ctx context.Context, m *recommend.SparseMatrix) (recommend.Predictor, error) {
	b.acquireTrainLock()
	defer b.releaseTrainLock()

	numUsers, numItems := m.Dims()
	if numUsers == 0 || numItems == 0 || m.NNZ() == 0 {
		return nil, ErrEmptyMatrix
	}

	type pair struct{ u, i int }
	positives := make([]pair, 0, m.NNZ())
	for u := 0; u < numUsers; u++ {
		cols, _ := m.Row(u)
		for _, i := range cols {
			positives = append(positives, pair{u, i})
		}
	}

	rng := rand.New(rand.NewSource(b.config.Seed)) //nolint:gosec // factor initialization, not security
	numFactors := b.config.NumFactors
	b.userFactors = randomFactors(rng, numUsers, numFactors)
	b.itemFactors = randomFactors(rng, numItems, numFactors)

	lr := b.config.LearningRate
	reg := b.config.Regularization

	for epoch := 0; epoch < b.config.NumIterations; epoch++ {
		if ContextCancelled(ctx) {
			return nil, ctx.Err()
		}
		rng.Shuffle(len(positives), func(x, y int) {
			positives[x], positives[y] = positives[y], positives[x]
		})

		for _, p := range positives {
			u, i := p.u, p.i
			for ns := 0; ns < b.config.NumNegativeSamples; ns++ {
				j, ok := sampleNegative(rng, m, u, numItems)
				if !ok {
					break
				}

				var xui, xuj float64
				for f := 0; f < numFactors; f++ {
					xui += b.userFactors[u][f] * b.itemFactors[i][f]
					xuj += b.userFactors[u][f] * b.itemFactors[j][f]
				}
				// d/dx ln(sigmoid(x)) = 1 / (1 + e^x)
				grad := 1.0 / (1.0 + math.Exp(xui-xuj))
				if grad < 1e-10 {
					continue
				}

				for f := 0; f < numFactors; f++ {
					wuf := b.userFactors[u][f]
					hif := b.itemFactors[i][f]
					hjf := b.itemFactors[j][f]
					b.userFactors[u][f] += lr * (grad*(hif-hjf) - reg*wuf)
					b.itemFactors[i][f] += lr * (grad*wuf - reg*hif)
					b.itemFactors[j][f] += lr * (-grad*wuf - reg*hjf)
				}
			}
		}

		if epoch > 0 && epoch%10 == 0 {
			lr *= 0.95
		}
	}

	b.markTrained()
	return b, nil
}

// sampleNegative draws an item user u has no cell for. It gives up after a
// bounded number of tries, which only happens for users who saw nearly
// everything.
func sampleNegative(rng *rand.Rand, m *recommend.SparseMatrix, u, numItems int) (int, bool) {
	for tries := 0; tries < 100; tries++ {
		j := rng.Intn(numItems)
		if m.At(u, j) == 0 {
			return j, true
		}
	}
	return 0, false
}

// Predict returns user_factors[u] . item_factors[i] for each requested item.
func (b *BPR) Predict(userIndex int, itemIndices []int) []float64 {
	b.acquirePredictLock()
	defer b.releasePredictLock()

	scores := make([]float64, len(itemIndices))
	if !b.trained || userIndex < 0 || userIndex >= len(b.userFactors) {
		return scores
	}
	userVec := b.userFactors[userIndex]
	for k, item := range itemIndices {
		if item < 0 || item >= len(b.itemFactors) {
			continue
		}
		itemVec := b.itemFactors[item]
		var score float64
		for f := range userVec {
			score += userVec[f] * itemVec[f]
		}
		scores[k] = score
	}
	return scores
}
