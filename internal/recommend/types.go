// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package recommend

import (
	"context"

	"github.com/goccy/go-json"
)

// Review is one user's review of one item.
type Review struct {
	// UserID identifies the reviewer.
	UserID string `json:"user_id"`

	// ASIN identifies the reviewed item.
	ASIN string `json:"asin"`

	// Rating is the star rating, nil when the record carried none.
	Rating *float64 `json:"rating,omitempty"`

	// Aspects maps aspect field names (suffix included, e.g. "battery_score")
	// to sentiment scores. Non-numeric source values are stored as 0.
	Aspects map[string]float64 `json:"aspects,omitempty"`
}

// ProductMetadata is one catalog record.
type ProductMetadata struct {
	ParentASIN    string          `json:"parent_asin,omitempty"`
	ASIN          string          `json:"asin,omitempty"`
	Title         string          `json:"title,omitempty"`
	Price         interface{}     `json:"price,omitempty"`
	Category      string          `json:"main_category,omitempty"`
	AverageRating *float64        `json:"average_rating,omitempty"`
	Images        json.RawMessage `json:"images,omitempty"`
}

// Key returns the catalog key for the record: parent identifier, else item
// identifier.
func (m *ProductMetadata) Key() string {
	if m.ParentASIN != "" {
		return m.ParentASIN
	}
	return m.ASIN
}

// LikedItems is one user's liked-items list from the external store.
type LikedItems struct {
	UserID string
	Items  []string
}

// Source tells where an interaction came from.
type Source string

const (
	// SourceReview marks an interaction derived from a review.
	SourceReview Source = "review"
	// SourceLike marks an interaction derived from a liked item.
	SourceLike Source = "like"
)

// Interaction is a single user-item association.
type Interaction struct {
	UserID string  `json:"user_id"`
	ItemID string  `json:"item_id"`
	Rating float64 `json:"rating"`
	Source Source  `json:"source"`
}

// ContentSignals are the components of a content-path score.
type ContentSignals struct {
	Similarity  float64  `json:"similarity"`
	MeanRating  float64  `json:"mean_rating"`
	ReviewCount int      `json:"review_count"`
	Popularity  float64  `json:"popularity"`
	TopAspects  []string `json:"top_aspects"`
}

// Recommendation is one ranked item. Content-path entries carry their score
// components; metadata fields are present only when the catalog had a match.
type Recommendation struct {
	Rank  int     `json:"rank"`
	ASIN  string  `json:"asin"`
	Score float64 `json:"score"`

	*ContentSignals

	Title         string          `json:"title,omitempty"`
	Price         interface{}     `json:"price,omitempty"`
	Category      string          `json:"category,omitempty"`
	AverageRating *float64        `json:"average_rating,omitempty"`
	Images        json.RawMessage `json:"images,omitempty"`
}

// Reasons reported with an empty content result.
const (
	ReasonNoAspectData = "no aspect data"
	ReasonUserNotFound = "user not found"
)

// ContentResult is the outcome of content ranking for one user. Reason is set
// when Recommendations is empty because of a reported condition.
type ContentResult struct {
	UserID          string           `json:"user_id"`
	Recommendations []Recommendation `json:"recommendations"`
	Reason          string           `json:"reason,omitempty"`
}

// ScoredItem is a ranker's output before metadata is attached.
type ScoredItem struct {
	ItemIndex int
	Score     float64
}

// Ranker produces the ordered batch-path list for one user. Implementations
// exclude items the user has already interacted with.
type Ranker interface {
	// Name returns the strategy identifier used in logs and metrics.
	Name() string

	// RankUser returns at most n items for the user at userIndex, best first.
	RankUser(userIndex, n int) []ScoredItem
}

// Predictor scores user-item affinity with a trained model. The result has
// the same length and order as itemIndices.
type Predictor interface {
	Predict(userIndex int, itemIndices []int) []float64
}

// Trainer fits a latent-factor model on an interaction matrix.
type Trainer interface {
	Name() string
	Train(ctx context.Context, m *SparseMatrix) (Predictor, error)
}

// ContentScorer ranks unreviewed items for a user by aspect similarity.
// Returned recommendations carry no metadata; Engine attaches it.
type ContentScorer interface {
	Recommend(ctx context.Context, userID string, topN int) (ContentResult, error)
}
