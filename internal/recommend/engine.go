// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package recommend

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNoInteractions is returned when a batch run has nothing to index.
var ErrNoInteractions = errors.New("no interactions to rank")

// FallbackReason explains why the popularity ranker was chosen.
type FallbackReason string

const (
	// FallbackNone means the collaborative ranker was used.
	FallbackNone FallbackReason = ""
	// FallbackInferOnly means training was skipped on request.
	FallbackInferOnly FallbackReason = "infer_only"
	// FallbackNoTrainer means no latent-factor trainer is configured.
	FallbackNoTrainer FallbackReason = "no_trainer"
	// FallbackTrainFailed means the trainer returned an error.
	FallbackTrainFailed FallbackReason = "train_failed"
)

// Strategies constructs the batch rankers over an interaction index.
type Strategies struct {
	Collaborative func(p Predictor, idx *InteractionIndex) Ranker
	Popularity    func(idx *InteractionIndex) Ranker
}

// Selection records which batch ranker a run uses and why.
type Selection struct {
	Ranker   Ranker
	Reason   FallbackReason
	TrainErr error
	Duration time.Duration
}

// Fallback reports whether the popularity ranker was substituted.
func (s Selection) Fallback() bool { return s.Reason != FallbackNone }

// BatchInput is everything one batch run needs, already loaded.
type BatchInput struct {
	Reviews   []Review
	Likes     []LikedItems
	Catalog   *Catalog
	InferOnly bool
}

// Engine runs both ranking paths. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	config     *Config
	logger     zerolog.Logger
	strategies Strategies
	trainer    Trainer
}

// NewEngine creates a ranking engine. A nil trainer makes every batch run use
// the popularity ranker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, strategies Strategies, trainer Trainer, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if strategies.Collaborative == nil || strategies.Popularity == nil {
		return nil, fmt.Errorf("both batch strategies are required")
	}
	return &Engine{
		config:     cfg.Clone(),
		logger:     logger.With().Str("component", "recommend").Logger(),
		strategies: strategies,
		trainer:    trainer,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Model returns the trainer name, or "" when none is configured.
func (e *Engine) Model() string {
	if e.trainer == nil {
		return ""
	}
	return e.trainer.Name()
}

// workers returns the effective parallelism.
func (e *Engine) workers() int {
	if e.config.Workers > 0 {
		return e.config.Workers
	}
	return runtime.NumCPU()
}

// SelectRanker picks the batch ranker once for the whole run. Training
// problems never fail the run; they select the popularity ranker instead.
func (e *Engine) SelectRanker(ctx context.Context, idx *InteractionIndex, inferOnly bool) Selection {
	start := time.Now()
	sel := Selection{}

	switch {
	case inferOnly:
		sel.Reason = FallbackInferOnly
	case e.trainer == nil:
		sel.Reason = FallbackNoTrainer
	default:
		predictor, err := e.trainer.Train(ctx, idx.Matrix())
		if err == nil && predictor == nil {
			err = errors.New("trainer returned no predictor")
		}
		if err != nil {
			sel.Reason = FallbackTrainFailed
			sel.TrainErr = err
		} else {
			sel.Ranker = e.strategies.Collaborative(predictor, idx)
		}
	}

	if sel.Ranker == nil {
		sel.Ranker = e.strategies.Popularity(idx)
	}
	sel.Duration = time.Since(start)

	logger := e.logger.With().Str("strategy", sel.Ranker.Name()).Dur("select_duration", sel.Duration).Logger()
	switch sel.Reason {
	case FallbackNone:
		logger.Info().Msg("Using collaborative ranker")
	case FallbackInferOnly:
		logger.Info().Msg("Infer-only mode: skipping training, using popularity ranker")
	case FallbackNoTrainer:
		logger.Warn().Msg("Latent-factor predictor unavailable, substituting popularity ranker")
	case FallbackTrainFailed:
		logger.Warn().Err(sel.TrainErr).Msg("Training failed, substituting popularity ranker")
	}
	return sel
}

// RunBatch ranks unseen items for every user appearing in the interactions.
func (e *Engine) RunBatch(ctx context.Context, in BatchInput) (*BatchResult, error) {
	interactions := BuildInteractions(in.Reviews, in.Likes, e.config.LikeRating)
	if len(interactions) == 0 {
		return nil, ErrNoInteractions
	}
	idx := NewInteractionIndex(interactions)

	e.logger.Info().
		Int("interactions", idx.Len()).
		Int("users", idx.NumUsers()).
		Int("items", idx.NumItems()).
		Msg("Built interaction index")

	sel := e.SelectRanker(ctx, idx, in.InferOnly)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := e.RankAll(ctx, idx, sel.Ranker, in.Catalog)
	if err != nil {
		return nil, err
	}
	result.Fallback = sel.Reason
	result.SelectDuration = sel.Duration
	return result, nil
}

// RankAll runs ranker for every user in idx and attaches catalog metadata.
// Users are ranked in parallel; output keeps user index order.
func (e *Engine) RankAll(ctx context.Context, idx *InteractionIndex, ranker Ranker, catalog *Catalog) (*BatchResult, error) {
	lists := make([][]Recommendation, idx.NumUsers())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers())
	for u := 0; u < idx.NumUsers(); u++ {
		u := u
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lists[u] = e.assemble(idx, ranker.RankUser(u, e.config.NRec), catalog)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("rank users: %w", err)
	}

	entries := make([]UserRecommendations, len(lists))
	for u, list := range lists {
		entries[u] = UserRecommendations{UserID: idx.UserID(u), Items: list}
	}
	return NewBatchResult(ranker.Name(), entries), nil
}

// assemble converts scored indices into ranked recommendations.
func (e *Engine) assemble(idx *InteractionIndex, scored []ScoredItem, catalog *Catalog) []Recommendation {
	out := make([]Recommendation, len(scored))
	for i, s := range scored {
		out[i] = Recommendation{
			Rank:  i + 1,
			ASIN:  idx.ItemID(s.ItemIndex),
			Score: s.Score,
		}
		catalog.Attach(&out[i])
	}
	return out
}

// RecommendContent runs the content scorer for one user and attaches
// metadata. A topN of zero uses the configured default.
func (e *Engine) RecommendContent(ctx context.Context, scorer ContentScorer, catalog *Catalog, userID string, topN int) (ContentResult, error) {
	if topN <= 0 {
		topN = e.config.TopN
	}
	result, err := scorer.Recommend(ctx, userID, topN)
	if err != nil {
		return ContentResult{}, fmt.Errorf("content scoring: %w", err)
	}
	if result.Recommendations == nil {
		result.Recommendations = []Recommendation{}
	}

	for i := range result.Recommendations {
		rec := &result.Recommendations[i]
		rec.Rank = i + 1
		catalog.Attach(rec)
	}

	logger := e.logger.With().Str("user_id", userID).Int("returned", len(result.Recommendations)).Logger()
	if result.Reason != "" {
		logger.Info().Str("reason", result.Reason).Msg("No content recommendations")
	} else {
		logger.Debug().Msg("Content recommendations ready")
	}
	return result, nil
}
