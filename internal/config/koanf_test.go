// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Recommend.TopN != 10 {
		t.Errorf("Recommend.TopN = %d, want 10", cfg.Recommend.TopN)
	}
	if cfg.Recommend.NRec != 20 {
		t.Errorf("Recommend.NRec = %d, want 20", cfg.Recommend.NRec)
	}
	if cfg.Recommend.AspectSuffix != "_score" {
		t.Errorf("Recommend.AspectSuffix = %q, want _score", cfg.Recommend.AspectSuffix)
	}
	if cfg.Recommend.LikeRating != 4.0 {
		t.Errorf("Recommend.LikeRating = %v, want 4.0", cfg.Recommend.LikeRating)
	}
	if cfg.Mongo.Collection != "users" {
		t.Errorf("Mongo.Collection = %q, want users", cfg.Mongo.Collection)
	}
	if cfg.Mongo.URI != "" {
		t.Errorf("Mongo.URI should be empty by default, got %q", cfg.Mongo.URI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_FileAndEnvLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlContent := `
data:
  reviews_path: /srv/reviews.jsonl
  output_path: /srv/out.json
recommend:
  top_n: 5
collaborative:
  model: none
schedule:
  interval: 6h
`
	if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MONGO_URI", "mongodb://localhost:27017/shop")
	t.Setenv("MONGO_DB", "catalog")
	t.Setenv("RECOMMEND_TOP_N", "7")
	t.Setenv("RECOMMEND_INFER_ONLY", "true")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if cfg.Data.ReviewsPath != "/srv/reviews.jsonl" {
		t.Errorf("ReviewsPath = %q, want file value", cfg.Data.ReviewsPath)
	}
	if cfg.Data.MetadataPath != "data/meta.jsonl" {
		t.Errorf("MetadataPath = %q, want default", cfg.Data.MetadataPath)
	}
	if cfg.Recommend.TopN != 7 {
		t.Errorf("TopN = %d, env should override file", cfg.Recommend.TopN)
	}
	if cfg.Collaborative.Model != "none" {
		t.Errorf("Model = %q, want none", cfg.Collaborative.Model)
	}
	if !cfg.Collaborative.InferOnly {
		t.Error("InferOnly should be true from env")
	}
	if cfg.Schedule.Interval != 6*time.Hour {
		t.Errorf("Schedule.Interval = %v, want 6h", cfg.Schedule.Interval)
	}
	if cfg.Mongo.Database != "catalog" {
		t.Errorf("Mongo.Database = %q, want catalog", cfg.Mongo.Database)
	}
	if !cfg.HasLikesStore() {
		t.Error("HasLikesStore() should be true when MONGO_URI is set")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{"MONGO_URI", "mongo.uri"},
		{"MONGO_DB", "mongo.database"},
		{"REVIEWS_PATH", "data.reviews_path"},
		{"LOG_LEVEL", "logging.level"},
		{"RECOMMEND_INFER_ONLY", "collaborative.infer_only"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.key); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero top_n", mutate: func(c *Config) { c.Recommend.TopN = 0 }, wantErr: "recommend.top_n"},
		{name: "unknown model", mutate: func(c *Config) { c.Collaborative.Model = "lightfm" }, wantErr: "collaborative.model"},
		{name: "bpr model", mutate: func(c *Config) { c.Collaborative.Model = "bpr" }},
		{name: "ease model", mutate: func(c *Config) { c.Collaborative.Model = "ease" }},
		{name: "zero ease max items", mutate: func(c *Config) { c.Collaborative.EASEMaxItems = 0 }, wantErr: "ease_max_items"},
		{name: "zero learning rate", mutate: func(c *Config) { c.Collaborative.LearningRate = 0 }, wantErr: "collaborative.learning_rate"},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "interval too short", mutate: func(c *Config) { c.Schedule.Interval = time.Second }, wantErr: "schedule.interval"},
		{name: "zero run timeout", mutate: func(c *Config) { c.Schedule.RunTimeout = 0 }, wantErr: "schedule.run_timeout"},
		{name: "http mongo uri", mutate: func(c *Config) { c.Mongo.URI = "http://localhost" }, wantErr: "MONGO_URI scheme"},
		{name: "valid mongo uri", mutate: func(c *Config) { c.Mongo.URI = "mongodb://db:27017" }},
		{name: "output overwrites input", mutate: func(c *Config) { c.Data.OutputPath = c.Data.ReviewsPath }, wantErr: "OUTPUT_PATH"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
