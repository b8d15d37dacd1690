// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package recommend

import (
	"fmt"
	"strings"
)

// Config contains all configuration for the ranking engine.
type Config struct {
	// TopN is the default content-path list length.
	TopN int `json:"top_n"`

	// NRec is the per-user list length on the batch path.
	NRec int `json:"n_rec"`

	// AspectSuffix marks aspect fields and is stripped from explanations.
	AspectSuffix string `json:"aspect_suffix"`

	// LikeRating is the synthetic rating given to liked items.
	LikeRating float64 `json:"like_rating"`

	// Workers bounds parallel scoring. Zero means runtime.NumCPU().
	Workers int `json:"workers"`

	// Content holds the content-path score blend.
	Content ContentConfig `json:"content"`
}

// ContentConfig is the content score blend:
//
//	score = SimilarityWeight*similarity
//	      + RatingWeight*(mean_rating/RatingScale)
//	      + PopularityWeight*ln(1+reviews)/PopularityDivisor
//	      + Offset
type ContentConfig struct {
	SimilarityWeight  float64 `json:"similarity_weight"`
	RatingWeight      float64 `json:"rating_weight"`
	PopularityWeight  float64 `json:"popularity_weight"`
	Offset            float64 `json:"offset"`
	RatingScale       float64 `json:"rating_scale"`
	PopularityDivisor float64 `json:"popularity_divisor"`

	// TopAspects is the number of aspect labels reported per item.
	TopAspects int `json:"top_aspects"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		TopN:         10,
		NRec:         20,
		AspectSuffix: "_score",
		LikeRating:   4.0,
		Workers:      0,
		Content: ContentConfig{
			SimilarityWeight:  0.7,
			RatingWeight:      0.2,
			PopularityWeight:  0.1,
			Offset:            0.2,
			RatingScale:       5.0,
			PopularityDivisor: 10.0,
			TopAspects:        3,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.NRec <= 0 {
		return fmt.Errorf("n_rec must be positive, got %d", c.NRec)
	}
	if strings.TrimSpace(c.AspectSuffix) == "" {
		return fmt.Errorf("aspect_suffix must not be empty")
	}
	if c.LikeRating <= 0 {
		return fmt.Errorf("like_rating must be positive, got %f", c.LikeRating)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Content.RatingScale <= 0 {
		return fmt.Errorf("content.rating_scale must be positive, got %f", c.Content.RatingScale)
	}
	if c.Content.PopularityDivisor <= 0 {
		return fmt.Errorf("content.popularity_divisor must be positive, got %f", c.Content.PopularityDivisor)
	}
	if c.Content.TopAspects < 0 {
		return fmt.Errorf("content.top_aspects must be non-negative, got %d", c.Content.TopAspects)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
