// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// BaseAlgorithm tracks training state shared by trainable models.
type BaseAlgorithm struct {
	name          string
	trained       bool
	version       int
	lastTrainedAt time.Time
	mu            sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{name: name}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// IsTrained returns whether the model has been trained.
func (b *BaseAlgorithm) IsTrained() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trained
}

// Version returns how many times the model has been trained.
func (b *BaseAlgorithm) Version() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// LastTrainedAt returns when the model was last trained.
func (b *BaseAlgorithm) LastTrainedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastTrainedAt
}

// markTrained must be called with the training lock held.
func (b *BaseAlgorithm) markTrained() {
	b.trained = true
	b.version++
	b.lastTrainedAt = time.Now()
}

func (b *BaseAlgorithm) acquireTrainLock()   { b.mu.Lock() }
func (b *BaseAlgorithm) releaseTrainLock()   { b.mu.Unlock() }
func (b *BaseAlgorithm) acquirePredictLock() { b.mu.RLock() }
func (b *BaseAlgorithm) releasePredictLock() { b.mu.RUnlock() }

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Strategies returns the batch ranker constructors for recommend.NewEngine.
func Strategies() recommend.Strategies {
	return recommend.Strategies{
		Collaborative: func(p recommend.Predictor, idx *recommend.InteractionIndex) recommend.Ranker {
			return NewCollaborativeRanker(p, idx)
		},
		Popularity: func(idx *recommend.InteractionIndex) recommend.Ranker {
			return NewPopularityRanker(idx)
		},
	}
}

// Ensure interface compliance.
var (
	_ recommend.ContentScorer = (*ContentRanker)(nil)
	_ recommend.Ranker        = (*CollaborativeRanker)(nil)
	_ recommend.Ranker        = (*PopularityRanker)(nil)
	_ recommend.Trainer       = (*ALS)(nil)
	_ recommend.Predictor     = (*ALS)(nil)
	_ recommend.Trainer       = (*BPR)(nil)
	_ recommend.Predictor     = (*BPR)(nil)
	_ recommend.Trainer       = (*EASE)(nil)
	_ recommend.Predictor     = (*EASE)(nil)
)
