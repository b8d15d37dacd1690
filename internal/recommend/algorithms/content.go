// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// ContentRanker scores items for a user by comparing aspect-sentiment
// profiles.
//
// For a user u and an unreviewed item i:
//
//	score(u, i) = ws*cos(profile(u), profile(i))
//	            + wr*(mean_rating(i)/scale)
//	            + wp*ln(1+reviews(i))/divisor
//	            + offset
//
// with the weights from recommend.ContentConfig. Each result names the item's
// strongest aspects as an explanation.
type ContentRanker struct {
	cfg     recommend.ContentConfig
	aspects recommend.AspectSet
	workers int
	logger  zerolog.Logger

	byUser map[string][]*recommend.Review
	byItem map[string][]*recommend.Review
	items  []string // first-seen order, the candidate iteration order
}

// contentScore is the per-candidate intermediate result.
type contentScore struct {
	asin    string
	score   float64
	signals recommend.ContentSignals
}

// NewContentRanker groups reviews by user and by item. The reviews slice is
// retained and must not be modified afterwards.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewContentRanker(reviews []recommend.Review, aspects recommend.AspectSet, cfg *recommend.Config, logger zerolog.Logger) *ContentRanker {
	if cfg == nil {
		cfg = recommend.DefaultConfig()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	c := &ContentRanker{
		cfg:     cfg.Content,
		aspects: aspects,
		workers: workers,
		logger:  logger.With().Str("ranker", "content").Logger(),
		byUser:  make(map[string][]*recommend.Review),
		byItem:  make(map[string][]*recommend.Review),
	}
	for i := range reviews {
		r := &reviews[i]
		c.byUser[r.UserID] = append(c.byUser[r.UserID], r)
		if _, ok := c.byItem[r.ASIN]; !ok {
			c.items = append(c.items, r.ASIN)
		}
		c.byItem[r.ASIN] = append(c.byItem[r.ASIN], r)
	}
	return c
}

// Aspects returns the aspect set the ranker scores against.
func (c *ContentRanker) Aspects() recommend.AspectSet { return c.aspects }

// Recommend ranks the items userID has not reviewed. Missing aspect data and
// unknown users are reported through ContentResult.Reason.
func (c *ContentRanker) Recommend(ctx context.Context, userID string, topN int) (recommend.ContentResult, error) {
	result := recommend.ContentResult{UserID: userID, Recommendations: []recommend.Recommendation{}}

	if c.aspects.Empty() {
		result.Reason = recommend.ReasonNoAspectData
		return result, nil
	}
	userReviews := c.byUser[userID]
	if len(userReviews) == 0 {
		result.Reason = recommend.ReasonUserNotFound
		return result, nil
	}

	userProfile := BuildProfile(c.aspects, userReviews)
	reviewed := make(map[string]struct{}, len(userReviews))
	for _, r := range userReviews {
		reviewed[r.ASIN] = struct{}{}
	}

	candidates := make([]string, 0, len(c.items))
	for _, asin := range c.items {
		if _, ok := reviewed[asin]; !ok {
			candidates = append(candidates, asin)
		}
	}

	scores, err := c.scoreCandidates(ctx, userProfile, candidates)
	if err != nil {
		return recommend.ContentResult{}, err
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})
	if topN > 0 && len(scores) > topN {
		scores = scores[:topN]
	}

	result.Recommendations = make([]recommend.Recommendation, len(scores))
	for i := range scores {
		signals := scores[i].signals
		result.Recommendations[i] = recommend.Recommendation{
			Rank:           i + 1,
			ASIN:           scores[i].asin,
			Score:          scores[i].score,
			ContentSignals: &signals,
		}
	}

	c.logger.Debug().
		Str("user_id", userID).
		Int("user_reviews", len(userReviews)).
		Int("candidates", len(candidates)).
		Int("returned", len(result.Recommendations)).
		Msg("scored content candidates")
	return result, nil
}

// scoreCandidates fills one slot per candidate in parallel chunks. Slot order
// is candidate order, so the result does not depend on scheduling.
func (c *ContentRanker) scoreCandidates(ctx context.Context, userProfile recommend.AspectProfile, candidates []string) ([]contentScore, error) {
	scored := make([]contentScore, len(candidates))
	valid := make([]bool, len(candidates))

	chunkSize := (len(candidates) + c.workers - 1) / c.workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(candidates); start += chunkSize {
		start := start
		end := min(start+chunkSize, len(candidates))
		g.Go(func() error {
			for k := start; k < end; k++ {
				if ContextCancelled(gctx) {
					return gctx.Err()
				}
				itemReviews := c.byItem[candidates[k]]
				if len(itemReviews) == 0 {
					continue
				}
				scored[k] = c.scoreItem(userProfile, candidates[k], itemReviews)
				valid[k] = true
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := scored[:0]
	for k := range scored {
		if valid[k] {
			out = append(out, scored[k])
		}
	}
	return out, nil
}

func (c *ContentRanker) scoreItem(userProfile recommend.AspectProfile, asin string, reviews []*recommend.Review) contentScore {
	itemProfile := BuildProfile(c.aspects, reviews)
	similarity := CosineSimilarity(userProfile, itemProfile)
	avgRating := meanRating(reviews)
	popularity := math.Log1p(float64(len(reviews))) / c.cfg.PopularityDivisor

	return contentScore{
		asin:  asin,
		score: c.Combine(similarity, avgRating, popularity),
		signals: recommend.ContentSignals{
			Similarity:  similarity,
			MeanRating:  avgRating,
			ReviewCount: len(reviews),
			Popularity:  popularity,
			TopAspects:  c.topAspects(itemProfile),
		},
	}
}

// Combine blends the three signals into the final content score.
func (c *ContentRanker) Combine(similarity, meanRating, popularity float64) float64 {
	return c.cfg.SimilarityWeight*similarity +
		c.cfg.RatingWeight*(meanRating/c.cfg.RatingScale) +
		c.cfg.PopularityWeight*popularity +
		c.cfg.Offset
}

// topAspects returns the labels of the highest profile values. Ties keep
// aspect set order.
func (c *ContentRanker) topAspects(profile recommend.AspectProfile) []string {
	order := make([]int, len(profile))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return profile[order[a]] > profile[order[b]]
	})

	n := min(c.cfg.TopAspects, len(order))
	labels := make([]string, n)
	for i := 0; i < n; i++ {
		labels[i] = c.aspects.Label(order[i])
	}
	return labels
}
