// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

// Package config loads Aspectrank configuration from built-in defaults, an
// optional YAML file and environment variables, in that order of precedence.
//
// Example config.yaml:
//
//	data:
//	  reviews_path: data/reviews_with_aspects.jsonl
//	  metadata_path: data/meta.jsonl
//	  output_path: data/recommendations.json
//	mongo:
//	  uri: mongodb://localhost:27017
//	  database: shop
//	recommend:
//	  top_n: 10
//	  n_rec: 20
//	collaborative:
//	  model: als
//	  infer_only: false
//
// The recommendation core never reads the environment; cmd/aspectrank turns a
// loaded Config into recommend.Config and the store/service options.
package config

import (
	"time"
)

// Config is the root configuration.
type Config struct {
	Data          DataConfig          `koanf:"data"`
	Mongo         MongoConfig         `koanf:"mongo"`
	Recommend     RecommendConfig     `koanf:"recommend"`
	Collaborative CollaborativeConfig `koanf:"collaborative"`
	Schedule      ScheduleConfig      `koanf:"schedule"`
	Metrics       MetricsConfig       `koanf:"metrics"`
	Logging       LoggingConfig       `koanf:"logging"`
}

// DataConfig locates the input datasets and the batch output file.
type DataConfig struct {
	// ReviewsPath is the JSONL file of reviews carrying aspect scores.
	ReviewsPath string `koanf:"reviews_path" validate:"required"`

	// MetadataPath is the JSONL product metadata file.
	MetadataPath string `koanf:"metadata_path" validate:"required"`

	// OutputPath is where the batch job writes the per-user mapping.
	OutputPath string `koanf:"output_path" validate:"required"`
}

// MongoConfig configures the liked-items store.
type MongoConfig struct {
	// URI is the connection string. Empty means no store is configured,
	// which aborts the batch pipeline but not content ranking.
	URI string `koanf:"uri"`

	// Database overrides the database name. When empty the URI's default
	// database is used, then the first non-system database on the server.
	Database string `koanf:"database"`

	// Collection holds {user_id, likedProducts} documents.
	Collection string `koanf:"collection" validate:"required"`

	// Timeout bounds connect, ping and the liked-items fetch.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// BreakerMaxFailures is the number of consecutive failures that opens
	// the circuit breaker.
	BreakerMaxFailures uint32 `koanf:"breaker_max_failures" validate:"min=1"`

	// BreakerTimeout is how long the breaker stays open before probing.
	BreakerTimeout time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
}

// RecommendConfig tunes both ranking paths.
type RecommendConfig struct {
	// TopN is the default content-path list length.
	TopN int `koanf:"top_n" validate:"min=1,max=1000"`

	// NRec is the per-user list length for the batch path.
	NRec int `koanf:"n_rec" validate:"min=1,max=1000"`

	// AspectSuffix marks aspect score fields in review records.
	AspectSuffix string `koanf:"aspect_suffix" validate:"required"`

	// LikeRating is the synthetic rating carried by a like.
	LikeRating float64 `koanf:"like_rating" validate:"gt=0"`

	// Workers bounds parallel candidate scoring. 0 = runtime.NumCPU().
	Workers int `koanf:"workers" validate:"min=0,max=256"`

	// TopAspects is the explanation length.
	TopAspects int `koanf:"top_aspects" validate:"min=0,max=50"`
}

// CollaborativeConfig selects and tunes the latent-factor model.
type CollaborativeConfig struct {
	// Model is "als", "bpr", "ease" or "none". "none" always uses the
	// popularity ranker.
	Model string `koanf:"model" validate:"oneof=als bpr ease none"`

	// InferOnly skips training and uses the popularity ranker.
	InferOnly bool `koanf:"infer_only"`

	Factors        int     `koanf:"factors" validate:"min=1,max=512"`
	Iterations     int     `koanf:"iterations" validate:"min=1,max=200"`
	Regularization float64 `koanf:"regularization" validate:"gte=0"`
	Alpha          float64 `koanf:"alpha" validate:"gt=0"`

	// LearningRate and NegativeSamples apply to bpr only.
	LearningRate    float64 `koanf:"learning_rate" validate:"gt=0,lte=1"`
	NegativeSamples int     `koanf:"negative_samples" validate:"min=1,max=100"`

	// EASERegularization and EASEMaxItems apply to ease only.
	EASERegularization float64 `koanf:"ease_regularization" validate:"gt=0"`
	EASEMaxItems       int     `koanf:"ease_max_items" validate:"min=1"`

	Workers int   `koanf:"workers" validate:"min=0,max=256"`
	Seed    int64 `koanf:"seed"`
}

// ScheduleConfig drives the refresh service.
type ScheduleConfig struct {
	// Interval between batch runs.
	Interval time.Duration `koanf:"interval" validate:"gte=1m"`

	// RunOnStartup runs the batch pipeline as soon as the service starts.
	RunOnStartup bool `koanf:"run_on_startup"`

	// RunTimeout bounds a single scheduled run.
	RunTimeout time.Duration `koanf:"run_timeout" validate:"gt=0"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// TextfilePath is written after each batch run when non-empty, for the
	// node_exporter textfile collector.
	TextfilePath string `koanf:"textfile_path"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}
