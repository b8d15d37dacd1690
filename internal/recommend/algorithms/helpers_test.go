// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"github.com/tomtom215/aspectrank/internal/recommend"
)

func ratingPtr(v float64) *float64 { return &v }

func makeReview(user, asin string, rating float64, aspects map[string]float64) recommend.Review {
	return recommend.Review{
		UserID:  user,
		ASIN:    asin,
		Rating:  ratingPtr(rating),
		Aspects: aspects,
	}
}

// reviewInteractions builds an index where each (user, item) pair is one
// review interaction with rating 1.
func reviewInteractions(pairs ...[2]string) *recommend.InteractionIndex {
	interactions := make([]recommend.Interaction, 0, len(pairs))
	for _, p := range pairs {
		interactions = append(interactions, recommend.Interaction{
			UserID: p[0],
			ItemID: p[1],
			Rating: 1,
			Source: recommend.SourceReview,
		})
	}
	return recommend.NewInteractionIndex(interactions)
}

// itemIDs maps scored items back to their identifiers.
func itemIDs(idx *recommend.InteractionIndex, items []recommend.ScoredItem) []string {
	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = idx.ItemID(it.ItemIndex)
	}
	return ids
}

// fixedPredictor scores items from a per-item table, ignoring the user.
type fixedPredictor struct {
	scores map[int]float64
}

func (f *fixedPredictor) Predict(_ int, items []int) []float64 {
	out := make([]float64, len(items))
	for k, i := range items {
		out[k] = f.scores[i]
	}
	return out
}
