// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"math"
	"sort"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// CollaborativeRanker orders each user's unseen items by the affinity a
// trained Predictor assigns them.
type CollaborativeRanker struct {
	predictor recommend.Predictor
	idx       *recommend.InteractionIndex
	allItems  []int
}

// NewCollaborativeRanker wraps a trained predictor.
func NewCollaborativeRanker(p recommend.Predictor, idx *recommend.InteractionIndex) *CollaborativeRanker {
	all := make([]int, idx.NumItems())
	for i := range all {
		all[i] = i
	}
	return &CollaborativeRanker{predictor: p, idx: idx, allItems: all}
}

// Name returns the strategy identifier.
func (c *CollaborativeRanker) Name() string { return "collaborative" }

// RankUser scores every item, drops seen ones and keeps the best n. Items
// with a non-finite score are skipped. Equal scores keep item index order.
func (c *CollaborativeRanker) RankUser(userIndex, n int) []recommend.ScoredItem {
	scores := c.predictor.Predict(userIndex, c.allItems)

	unseen := make([]recommend.ScoredItem, 0, len(c.allItems)-c.idx.SeenCount(userIndex))
	for i, item := range c.allItems {
		if c.idx.HasSeen(userIndex, item) || i >= len(scores) {
			continue
		}
		score := scores[i]
		if math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}
		unseen = append(unseen, recommend.ScoredItem{ItemIndex: item, Score: score})
	}

	sort.SliceStable(unseen, func(a, b int) bool {
		return unseen[a].Score > unseen[b].Score
	})
	if len(unseen) > n {
		unseen = unseen[:n]
	}
	return unseen
}
