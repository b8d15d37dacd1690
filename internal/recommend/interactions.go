// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package recommend

import (
	"sort"
)

// DefaultReviewRating is used for review interactions without a rating.
const DefaultReviewRating = 1.0

// BuildInteractions turns reviews and liked-items lists into one interaction
// list: reviews first, in input order, then likes. Nothing is deduplicated, so
// a user who reviewed and liked the same item contributes two rows.
func BuildInteractions(reviews []Review, likes []LikedItems, likeRating float64) []Interaction {
	n := len(reviews)
	for i := range likes {
		n += len(likes[i].Items)
	}

	out := make([]Interaction, 0, n)
	for i := range reviews {
		r := &reviews[i]
		rating := DefaultReviewRating
		if r.Rating != nil {
			rating = *r.Rating
		}
		out = append(out, Interaction{
			UserID: r.UserID,
			ItemID: r.ASIN,
			Rating: rating,
			Source: SourceReview,
		})
	}
	for i := range likes {
		for _, item := range likes[i].Items {
			out = append(out, Interaction{
				UserID: likes[i].UserID,
				ItemID: item,
				Rating: likeRating,
				Source: SourceLike,
			})
		}
	}
	return out
}

// InteractionIndex assigns dense indices to users and items in first-seen
// order and keeps the per-user seen sets and per-item counts. It is
// read-only after construction.
type InteractionIndex struct {
	interactions []Interaction

	userIDs   []string
	userIndex map[string]int
	itemIDs   []string
	itemIndex map[string]int

	seen       []map[int]struct{}
	itemCounts []int
}

// NewInteractionIndex indexes interactions. The slice is retained.
func NewInteractionIndex(interactions []Interaction) *InteractionIndex {
	idx := &InteractionIndex{
		interactions: interactions,
		userIndex:    make(map[string]int),
		itemIndex:    make(map[string]int),
	}

	for i := range interactions {
		in := &interactions[i]
		u, ok := idx.userIndex[in.UserID]
		if !ok {
			u = len(idx.userIDs)
			idx.userIndex[in.UserID] = u
			idx.userIDs = append(idx.userIDs, in.UserID)
			idx.seen = append(idx.seen, make(map[int]struct{}))
		}
		it, ok := idx.itemIndex[in.ItemID]
		if !ok {
			it = len(idx.itemIDs)
			idx.itemIndex[in.ItemID] = it
			idx.itemIDs = append(idx.itemIDs, in.ItemID)
			idx.itemCounts = append(idx.itemCounts, 0)
		}
		idx.seen[u][it] = struct{}{}
		idx.itemCounts[it]++
	}
	return idx
}

// NumUsers returns the number of distinct users.
func (x *InteractionIndex) NumUsers() int { return len(x.userIDs) }

// NumItems returns the number of distinct items.
func (x *InteractionIndex) NumItems() int { return len(x.itemIDs) }

// Len returns the number of interactions.
func (x *InteractionIndex) Len() int { return len(x.interactions) }

// UserID returns the identifier for a user index.
func (x *InteractionIndex) UserID(u int) string { return x.userIDs[u] }

// ItemID returns the identifier for an item index.
func (x *InteractionIndex) ItemID(i int) string { return x.itemIDs[i] }

// UserIndex returns the dense index of a user identifier.
func (x *InteractionIndex) UserIndex(id string) (int, bool) {
	u, ok := x.userIndex[id]
	return u, ok
}

// ItemIndex returns the dense index of an item identifier.
func (x *InteractionIndex) ItemIndex(id string) (int, bool) {
	i, ok := x.itemIndex[id]
	return i, ok
}

// HasSeen reports whether user u interacted with item i through any source.
func (x *InteractionIndex) HasSeen(u, i int) bool {
	_, ok := x.seen[u][i]
	return ok
}

// SeenCount returns how many distinct items user u interacted with.
func (x *InteractionIndex) SeenCount(u int) int { return len(x.seen[u]) }

// ItemCount returns the number of interaction rows for item i, any source.
func (x *InteractionIndex) ItemCount(i int) int { return x.itemCounts[i] }

// Matrix builds the user x item matrix from (user, item, rating) triples.
// Repeated cells are summed.
func (x *InteractionIndex) Matrix() *SparseMatrix {
	rows := make([]map[int]float64, len(x.userIDs))
	for i := range x.interactions {
		in := &x.interactions[i]
		u := x.userIndex[in.UserID]
		it := x.itemIndex[in.ItemID]
		if rows[u] == nil {
			rows[u] = make(map[int]float64)
		}
		rows[u][it] += in.Rating
	}
	return newSparseMatrix(rows, len(x.itemIDs))
}

// SparseMatrix is an immutable compressed-row matrix.
type SparseMatrix struct {
	numRows int
	numCols int
	rowPtr  []int
	colIdx  []int
	values  []float64
}

func newSparseMatrix(rows []map[int]float64, numCols int) *SparseMatrix {
	m := &SparseMatrix{
		numRows: len(rows),
		numCols: numCols,
		rowPtr:  make([]int, len(rows)+1),
	}
	for r, row := range rows {
		cols := make([]int, 0, len(row))
		for c := range row {
			cols = append(cols, c)
		}
		sort.Ints(cols)
		for _, c := range cols {
			m.colIdx = append(m.colIdx, c)
			m.values = append(m.values, row[c])
		}
		m.rowPtr[r+1] = len(m.colIdx)
	}
	return m
}

// Dims returns the row and column counts.
func (m *SparseMatrix) Dims() (rows, cols int) { return m.numRows, m.numCols }

// NNZ returns the number of stored cells.
func (m *SparseMatrix) NNZ() int { return len(m.values) }

// Row returns the column indices and values of row r, in column order.
// The slices alias the matrix and must not be modified.
func (m *SparseMatrix) Row(r int) ([]int, []float64) {
	start, end := m.rowPtr[r], m.rowPtr[r+1]
	return m.colIdx[start:end], m.values[start:end]
}

// At returns the value at (r, c), 0 when the cell is empty.
func (m *SparseMatrix) At(r, c int) float64 {
	cols, vals := m.Row(r)
	i := sort.SearchInts(cols, c)
	if i < len(cols) && cols[i] == c {
		return vals[i]
	}
	return 0
}

// Transpose returns the column-major view as a new matrix.
func (m *SparseMatrix) Transpose() *SparseMatrix {
	rows := make([]map[int]float64, m.numCols)
	for r := 0; r < m.numRows; r++ {
		cols, vals := m.Row(r)
		for k, c := range cols {
			if rows[c] == nil {
				rows[c] = make(map[int]float64)
			}
			rows[c][r] = vals[k]
		}
	}
	return newSparseMatrix(rows, m.numRows)
}
