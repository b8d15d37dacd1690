// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"sort"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// PopularityRanker orders items by their global interaction count, any
// source, and serves that list to every user minus the items they have
// already seen. It is the fallback when no trained predictor is available.
//
//	score(item) = number of interaction rows for item
type PopularityRanker struct {
	idx       *recommend.InteractionIndex
	sortedIDs []int // item indices by count descending, ties by index
}

// NewPopularityRanker counts interactions per item once.
func NewPopularityRanker(idx *recommend.InteractionIndex) *PopularityRanker {
	sorted := make([]int, idx.NumItems())
	for i := range sorted {
		sorted[i] = i
	}
	sort.SliceStable(sorted, func(a, b int) bool {
		return idx.ItemCount(sorted[a]) > idx.ItemCount(sorted[b])
	})
	return &PopularityRanker{idx: idx, sortedIDs: sorted}
}

// Name returns the strategy identifier.
func (p *PopularityRanker) Name() string { return "popularity" }

// RankUser walks the popularity list, skipping seen items, until n items are
// collected or the list is exhausted.
func (p *PopularityRanker) RankUser(userIndex, n int) []recommend.ScoredItem {
	out := make([]recommend.ScoredItem, 0, min(n, len(p.sortedIDs)))
	for _, item := range p.sortedIDs {
		if len(out) >= n {
			break
		}
		if p.idx.HasSeen(userIndex, item) {
			continue
		}
		out = append(out, recommend.ScoredItem{
			ItemIndex: item,
			Score:     float64(p.idx.ItemCount(item)),
		})
	}
	return out
}
