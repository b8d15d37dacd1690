// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/aspectrank/config.yaml",
	"/etc/aspectrank/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default returns the built-in configuration before any file or environment
// layer is applied.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			ReviewsPath:  "data/reviews_with_aspects.jsonl",
			MetadataPath: "data/meta.jsonl",
			OutputPath:   "data/recommendations.json",
		},
		Mongo: MongoConfig{
			URI:                "",
			Database:           "",
			Collection:         "users",
			Timeout:            10 * time.Second,
			BreakerMaxFailures: 3,
			BreakerTimeout:     30 * time.Second,
		},
		Recommend: RecommendConfig{
			TopN:         10,
			NRec:         20,
			AspectSuffix: "_score",
			LikeRating:   4.0,
			Workers:      0,
			TopAspects:   3,
		},
		Collaborative: CollaborativeConfig{
			Model:              "als",
			InferOnly:          false,
			Factors:            32,
			Iterations:         15,
			Regularization:     0.1,
			Alpha:              40.0,
			LearningRate:       0.05,
			NegativeSamples:    5,
			EASERegularization: 500.0,
			EASEMaxItems:       5000,
			Workers:            0,
			Seed:               42,
		},
		Schedule: ScheduleConfig{
			Interval:     24 * time.Hour,
			RunOnStartup: true,
			RunTimeout:   30 * time.Minute,
		},
		Metrics: MetricsConfig{
			TextfilePath: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load builds the configuration from three layers:
//  1. built-in defaults
//  2. an optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. mapped environment variables
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	return load(findConfigFile())
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored.
var envMappings = map[string]string{
	// Inputs and output
	"reviews_path":  "data.reviews_path",
	"metadata_path": "data.metadata_path",
	"output_path":   "data.output_path",

	// Liked-items store
	"mongo_uri":                  "mongo.uri",
	"mongo_db":                   "mongo.database",
	"mongo_collection":           "mongo.collection",
	"mongo_timeout":              "mongo.timeout",
	"mongo_breaker_max_failures": "mongo.breaker_max_failures",
	"mongo_breaker_timeout":      "mongo.breaker_timeout",

	// Ranking
	"recommend_top_n":         "recommend.top_n",
	"recommend_n_rec":         "recommend.n_rec",
	"recommend_aspect_suffix": "recommend.aspect_suffix",
	"recommend_like_rating":   "recommend.like_rating",
	"recommend_workers":       "recommend.workers",
	"recommend_top_aspects":   "recommend.top_aspects",

	// Latent-factor model
	"recommend_model":               "collaborative.model",
	"recommend_infer_only":          "collaborative.infer_only",
	"recommend_factors":             "collaborative.factors",
	"recommend_iterations":          "collaborative.iterations",
	"recommend_regularization":      "collaborative.regularization",
	"recommend_alpha":               "collaborative.alpha",
	"recommend_learning_rate":       "collaborative.learning_rate",
	"recommend_negative_samples":    "collaborative.negative_samples",
	"recommend_ease_regularization": "collaborative.ease_regularization",
	"recommend_ease_max_items":      "collaborative.ease_max_items",
	"recommend_train_workers":       "collaborative.workers",
	"recommend_seed":                "collaborative.seed",

	// Refresh schedule
	"schedule_interval":       "schedule.interval",
	"schedule_run_on_startup": "schedule.run_on_startup",
	"schedule_run_timeout":    "schedule.run_timeout",

	"metrics_textfile_path": "metrics.textfile_path",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps MONGO_URI to mongo.uri and so on. Returning "" makes
// koanf skip the variable.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
