// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

func TestCollaborativeRanker_RankUser(t *testing.T) {
	idx := reviewInteractions(
		[2]string{"u1", "a"},
		[2]string{"u2", "b"},
		[2]string{"u2", "c"},
		[2]string{"u2", "d"},
		[2]string{"u2", "e"},
	)
	a, _ := idx.ItemIndex("a")
	b, _ := idx.ItemIndex("b")
	c, _ := idx.ItemIndex("c")
	d, _ := idx.ItemIndex("d")
	e, _ := idx.ItemIndex("e")

	pred := &fixedPredictor{scores: map[int]float64{
		a: 100, // seen by u1, must never be returned
		b: 0.2,
		c: 0.9,
		d: math.NaN(),
		e: 0.2,
	}}
	r := NewCollaborativeRanker(pred, idx)
	if r.Name() != "collaborative" {
		t.Errorf("Name() = %q, want collaborative", r.Name())
	}

	u1, _ := idx.UserIndex("u1")

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{"full ranking, ties by index, NaN dropped", 10, []string{"c", "b", "e"}},
		{"truncated", 2, []string{"c", "b"}},
		{"zero", 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := itemIDs(idx, r.RankUser(u1, tt.n))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RankUser(u1, %d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}

	u2, _ := idx.UserIndex("u2")
	if got := itemIDs(idx, r.RankUser(u2, 10)); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("RankUser(u2) = %v, want [a]", got)
	}
}

func TestCollaborativeRanker_NonFiniteScoresStayWritable(t *testing.T) {
	idx := reviewInteractions(
		[2]string{"u1", "a"},
		[2]string{"u2", "b"},
		[2]string{"u2", "c"},
		[2]string{"u2", "d"},
	)
	a, _ := idx.ItemIndex("a")
	b, _ := idx.ItemIndex("b")
	c, _ := idx.ItemIndex("c")
	d, _ := idx.ItemIndex("d")

	tests := []struct {
		name   string
		scores map[int]float64
		want   []string
	}{
		{"nan", map[int]float64{b: math.NaN(), c: 0.5, d: 0.1}, []string{"c", "d"}},
		{"positive inf", map[int]float64{b: math.Inf(1), c: 0.5, d: 0.1}, []string{"c", "d"}},
		{"negative inf", map[int]float64{b: 0.3, c: math.Inf(-1), d: 0.1}, []string{"b", "d"}},
		{"all non-finite", map[int]float64{a: math.NaN(), b: math.NaN(), c: math.Inf(-1), d: math.Inf(1)}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewCollaborativeRanker(&fixedPredictor{scores: tt.scores}, idx)
			u1, _ := idx.UserIndex("u1")
			scored := r.RankUser(u1, 20)
			if got := itemIDs(idx, scored); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("RankUser(u1) = %v, want %v", got, tt.want)
			}

			items := make([]recommend.Recommendation, len(scored))
			for i, s := range scored {
				items[i] = recommend.Recommendation{Rank: i + 1, ASIN: idx.ItemID(s.ItemIndex), Score: s.Score}
			}
			result := recommend.NewBatchResult(r.Name(), []recommend.UserRecommendations{{UserID: "u1", Items: items}})

			path := filepath.Join(t.TempDir(), "recommendations.json")
			if err := result.WriteFile(path); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			var decoded map[string][]recommend.Recommendation
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(decoded["u1"]) != len(tt.want) {
				t.Errorf("decoded %d items for u1, want %d", len(decoded["u1"]), len(tt.want))
			}
		})
	}
}
