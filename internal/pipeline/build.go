// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package pipeline

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectrank/internal/config"
	"github.com/tomtom215/aspectrank/internal/likes"
	"github.com/tomtom215/aspectrank/internal/recommend"
	"github.com/tomtom215/aspectrank/internal/recommend/algorithms"
)

// Collaborative model names accepted in collaborative.model.
const (
	ModelALS  = "als"
	ModelBPR  = "bpr"
	ModelEASE = "ease"
	ModelNone = "none"
)

// EngineConfig converts the loaded configuration into the engine's own.
// Content blend weights keep their defaults.
func EngineConfig(cfg *config.Config) *recommend.Config {
	rc := recommend.DefaultConfig()
	rc.TopN = cfg.Recommend.TopN
	rc.NRec = cfg.Recommend.NRec
	rc.AspectSuffix = cfg.Recommend.AspectSuffix
	rc.LikeRating = cfg.Recommend.LikeRating
	rc.Workers = cfg.Recommend.Workers
	rc.Content.TopAspects = cfg.Recommend.TopAspects
	return rc
}

// NewTrainer returns the latent-factor trainer named by cfg.Model. "none"
// returns a nil trainer, which makes every batch run use popularity.
func NewTrainer(cfg config.CollaborativeConfig) (recommend.Trainer, error) {
	switch cfg.Model {
	case ModelALS:
		return algorithms.NewALS(algorithms.ALSConfig{
			NumFactors:     cfg.Factors,
			NumIterations:  cfg.Iterations,
			Regularization: cfg.Regularization,
			Alpha:          cfg.Alpha,
			NumWorkers:     cfg.Workers,
			Seed:           cfg.Seed,
		}), nil
	case ModelBPR:
		return algorithms.NewBPR(algorithms.BPRConfig{
			NumFactors:         cfg.Factors,
			LearningRate:       cfg.LearningRate,
			Regularization:     cfg.Regularization,
			NumIterations:      cfg.Iterations,
			NumNegativeSamples: cfg.NegativeSamples,
			Seed:               cfg.Seed,
		}), nil
	case ModelEASE:
		return algorithms.NewEASE(algorithms.EASEConfig{
			L2Regularization: cfg.EASERegularization,
			MaxItems:         cfg.EASEMaxItems,
		}), nil
	case ModelNone, "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown collaborative model %q", cfg.Model)
	}
}

// NewEngine builds the ranking engine for cfg.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *config.Config, logger zerolog.Logger) (*recommend.Engine, error) {
	trainer, err := NewTrainer(cfg.Collaborative)
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(EngineConfig(cfg), algorithms.Strategies(), trainer, logger)
}

// NewLikesStore returns the breaker-guarded MongoDB store, or nil when no
// URI is configured.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLikesStore(cfg *config.Config, logger zerolog.Logger) likes.Store {
	if !cfg.HasLikesStore() {
		return nil
	}
	connector := likes.NewConnector(likes.MongoConfig{
		URI:        cfg.Mongo.URI,
		Database:   cfg.Mongo.Database,
		Collection: cfg.Mongo.Collection,
		Timeout:    cfg.Mongo.Timeout,
	}, logger)
	return likes.NewBreakerStore(connector, likes.BreakerConfig{
		Name:        "mongo-likes",
		MaxFailures: cfg.Mongo.BreakerMaxFailures,
		Timeout:     cfg.Mongo.BreakerTimeout,
	}, logger)
}
