// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectrank/internal/config"
	"github.com/tomtom215/aspectrank/internal/dataset"
	"github.com/tomtom215/aspectrank/internal/likes"
	"github.com/tomtom215/aspectrank/internal/logging"
	"github.com/tomtom215/aspectrank/internal/metrics"
	"github.com/tomtom215/aspectrank/internal/recommend"
)

// ErrNoReviews is returned when the reviews file decodes to nothing.
var ErrNoReviews = errors.New("no reviews decoded")

// Metric label values.
const (
	modeBatch   = "batch"
	modeContent = "content"

	inputReviews  = "reviews"
	inputMetadata = "metadata"
	inputLikes    = "likes"
)

// BatchOptions locates the inputs and outputs of a batch run.
type BatchOptions struct {
	ReviewsPath  string
	MetadataPath string
	OutputPath   string

	// InferOnly skips training and ranks by popularity.
	InferOnly bool

	// TextfilePath receives the Prometheus metrics after each run when set.
	TextfilePath string
}

// Report summarizes one batch run. Fields are filled as far as the run got.
type Report struct {
	RunID           string
	Strategy        string
	Fallback        recommend.FallbackReason
	Users           int
	Recommendations int
	Reviews         *dataset.DecodeStats
	Metadata        *dataset.DecodeStats
	LikedUsers      int
	LikedItems      int
	OutputPath      string
	Duration        time.Duration
}

// Batch runs the collaborative/popularity pipeline. It holds no per-run
// state; Run may be called repeatedly.
type Batch struct {
	engine *recommend.Engine
	store  likes.Store
	opts   BatchOptions
	logger zerolog.Logger
}

// NewBatch creates a batch pipeline. A nil store makes every run abort with
// likes.ErrNotConfigured.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBatch(engine *recommend.Engine, store likes.Store, opts BatchOptions, logger zerolog.Logger) *Batch {
	return &Batch{
		engine: engine,
		store:  store,
		opts:   opts,
		logger: logger.With().Str("component", "pipeline").Str("mode", modeBatch).Logger(),
	}
}

// NewBatchFromConfig builds the engine, the store and the pipeline from cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBatchFromConfig(cfg *config.Config, logger zerolog.Logger) (*Batch, error) {
	engine, err := NewEngine(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return NewBatch(engine, NewLikesStore(cfg, logger), BatchOptions{
		ReviewsPath:  cfg.Data.ReviewsPath,
		MetadataPath: cfg.Data.MetadataPath,
		OutputPath:   cfg.Data.OutputPath,
		InferOnly:    cfg.Collaborative.InferOnly,
		TextfilePath: cfg.Metrics.TextfilePath,
	}, logger), nil
}

// Run executes one batch run. The returned report is never nil.
func (b *Batch) Run(ctx context.Context) (*Report, error) {
	ctx = logging.ContextWithLogger(logging.ContextWithNewRunID(ctx), b.logger)
	logger := logging.Ctx(ctx)
	report := &Report{RunID: logging.RunIDFromContext(ctx)}

	logger.Info().Bool("infer_only", b.opts.InferOnly).Msg("Starting batch run")
	start := time.Now()
	err := b.run(ctx, report)
	report.Duration = time.Since(start)

	metrics.RecordRun(modeBatch, report.Strategy, report.Duration, err)
	if err != nil {
		logger.Error().Err(err).Dur("duration", report.Duration).Msg("Batch run aborted")
	} else {
		logger.Info().
			Str("strategy", report.Strategy).
			Str("fallback", string(report.Fallback)).
			Int("users", report.Users).
			Int("recommendations", report.Recommendations).
			Str("output", report.OutputPath).
			Dur("duration", report.Duration).
			Msg("Batch run complete")
	}

	if b.opts.TextfilePath != "" {
		if werr := metrics.WriteTextfile(b.opts.TextfilePath); werr != nil {
			logger.Warn().Err(werr).Str("path", b.opts.TextfilePath).Msg("Failed to write metrics textfile")
		}
	}
	return report, err
}

func (b *Batch) run(ctx context.Context, report *Report) error {
	logger := logging.Ctx(ctx)

	if b.store == nil {
		return likes.ErrNotConfigured
	}
	if err := dataset.RequireFiles(b.opts.ReviewsPath, b.opts.MetadataPath); err != nil {
		return err
	}

	suffix := b.engine.Config().AspectSuffix
	reviews, reviewStats, err := dataset.LoadReviews(ctx, b.opts.ReviewsPath, suffix)
	if err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}
	report.Reviews = reviewStats
	recordInput(inputReviews, reviewStats)
	logStats(logger, inputReviews, reviewStats)
	if len(reviews) == 0 {
		return fmt.Errorf("%w: %s", ErrNoReviews, b.opts.ReviewsPath)
	}

	catalog, metaStats, err := dataset.LoadCatalog(ctx, b.opts.MetadataPath)
	if err != nil {
		return fmt.Errorf("load metadata: %w", err)
	}
	report.Metadata = metaStats
	recordInput(inputMetadata, metaStats)
	logStats(logger, inputMetadata, metaStats)

	liked, err := b.store.LikedItems(ctx)
	if err != nil {
		return fmt.Errorf("fetch liked items: %w", err)
	}
	report.LikedUsers = len(liked)
	report.LikedItems = likes.Count(liked)
	metrics.RecordInput(inputLikes, report.LikedItems, 0, 0, 0)
	logger.Info().Int("users", report.LikedUsers).Int("items", report.LikedItems).Msg("Fetched liked items")

	result, err := b.engine.RunBatch(ctx, recommend.BatchInput{
		Reviews:   reviews,
		Likes:     liked,
		Catalog:   catalog,
		InferOnly: b.opts.InferOnly,
	})
	if err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	report.Strategy = result.Strategy
	report.Fallback = result.Fallback
	report.Users = result.Len()
	report.Recommendations = result.TotalRecommendations()

	if trainingAttempted(result.Fallback) {
		metrics.RecordTraining(b.engine.Model(), result.SelectDuration)
	}

	if err := result.WriteFile(b.opts.OutputPath); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	report.OutputPath = b.opts.OutputPath
	metrics.RecordBatchResult(result.Strategy, string(result.Fallback), report.Users, report.Recommendations)
	return nil
}

// trainingAttempted reports whether the trainer ran for this fallback reason.
func trainingAttempted(reason recommend.FallbackReason) bool {
	return reason == recommend.FallbackNone || reason == recommend.FallbackTrainFailed
}

func recordInput(input string, stats *dataset.DecodeStats) {
	metrics.RecordInput(input, stats.Loaded, stats.Recovered, stats.Malformed, stats.Incomplete)
}

func logStats(logger *zerolog.Logger, input string, stats *dataset.DecodeStats) {
	level := zerolog.InfoLevel
	if stats.Dropped() > 0 {
		level = zerolog.WarnLevel
	}
	logger.WithLevel(level).
		Str("input", input).
		Str("path", stats.Path).
		Int("loaded", stats.Loaded).
		Int("recovered", stats.Recovered).
		Int("malformed", stats.Malformed).
		Int("incomplete", stats.Incomplete).
		Dur("duration", stats.Duration()).
		Msg("Loaded input")
}
