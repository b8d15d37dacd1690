// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectrank/internal/config"
	"github.com/tomtom215/aspectrank/internal/dataset"
	"github.com/tomtom215/aspectrank/internal/logging"
	"github.com/tomtom215/aspectrank/internal/metrics"
	"github.com/tomtom215/aspectrank/internal/recommend"
	"github.com/tomtom215/aspectrank/internal/recommend/algorithms"
)

// ContentOptions locates the inputs of the content path.
type ContentOptions struct {
	ReviewsPath  string
	MetadataPath string
}

// Content serves content-path requests. Inputs are reloaded per request.
type Content struct {
	engine *recommend.Engine
	opts   ContentOptions
	logger zerolog.Logger
}

// NewContent creates a content service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContent(engine *recommend.Engine, opts ContentOptions, logger zerolog.Logger) *Content {
	return &Content{
		engine: engine,
		opts:   opts,
		logger: logger.With().Str("component", "pipeline").Str("mode", modeContent).Logger(),
	}
}

// NewContentFromConfig builds the engine and the content service from cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContentFromConfig(cfg *config.Config, logger zerolog.Logger) (*Content, error) {
	engine, err := NewEngine(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return NewContent(engine, ContentOptions{
		ReviewsPath:  cfg.Data.ReviewsPath,
		MetadataPath: cfg.Data.MetadataPath,
	}, logger), nil
}

// Recommend returns up to topN content recommendations for userID. A topN
// of zero uses the configured default.
func (c *Content) Recommend(ctx context.Context, userID string, topN int) (recommend.ContentResult, error) {
	ctx = logging.ContextWithLogger(logging.ContextWithNewRunID(ctx), c.logger)

	start := time.Now()
	result, err := c.recommend(ctx, userID, topN)
	duration := time.Since(start)

	metrics.RecordRun(modeContent, modeContent, duration, err)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("user_id", userID).Msg("Content request failed")
		return recommend.ContentResult{}, err
	}
	metrics.RecordContentResult(result.Reason, len(result.Recommendations))
	return result, nil
}

func (c *Content) recommend(ctx context.Context, userID string, topN int) (recommend.ContentResult, error) {
	logger := logging.Ctx(ctx)

	if err := dataset.RequireFiles(c.opts.ReviewsPath, c.opts.MetadataPath); err != nil {
		return recommend.ContentResult{}, err
	}

	cfg := c.engine.Config()
	reviews, reviewStats, err := dataset.LoadReviews(ctx, c.opts.ReviewsPath, cfg.AspectSuffix)
	if err != nil {
		return recommend.ContentResult{}, fmt.Errorf("load reviews: %w", err)
	}
	recordInput(inputReviews, reviewStats)
	logStats(logger, inputReviews, reviewStats)

	catalog, metaStats, err := dataset.LoadCatalog(ctx, c.opts.MetadataPath)
	if err != nil {
		return recommend.ContentResult{}, fmt.Errorf("load metadata: %w", err)
	}
	recordInput(inputMetadata, metaStats)
	logStats(logger, inputMetadata, metaStats)

	aspects := recommend.DiscoverAspects(reviews, cfg.AspectSuffix)
	logger.Debug().Int("aspects", aspects.Len()).Msg("Discovered aspects")

	ranker := algorithms.NewContentRanker(reviews, aspects, cfg, c.logger)
	return c.engine.RecommendContent(ctx, ranker, catalog, userID, topN)
}
