// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package dataset

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// LoadReviews reads the review file at path. Fields ending in aspectSuffix
// become aspect scores.
func LoadReviews(ctx context.Context, path, aspectSuffix string) ([]recommend.Review, *DecodeStats, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	reviews, stats, err := DecodeReviews(ctx, f, aspectSuffix)
	stats.Path = path
	if err != nil {
		return nil, stats, fmt.Errorf("load reviews from %s: %w", path, err)
	}
	return reviews, stats, nil
}

// DecodeReviews reads reviews from r.
func DecodeReviews(ctx context.Context, r io.Reader, aspectSuffix string) ([]recommend.Review, *DecodeStats, error) {
	stats := &DecodeStats{StartTime: time.Now()}
	var (
		reviews []recommend.Review
		raw     map[string]interface{}
	)

	decode := func(b []byte) error {
		raw = nil
		return json.Unmarshal(b, &raw)
	}
	keep := func() bool {
		review, ok := reviewFromFields(raw, aspectSuffix)
		if ok {
			reviews = append(reviews, review)
		}
		return ok
	}

	err := readRecords(ctx, r, stats, decode, keep)
	stats.EndTime = time.Now()
	return reviews, stats, err
}

// reviewFromFields maps a decoded object onto a Review. It reports false
// when user_id or asin is missing or empty.
func reviewFromFields(fields map[string]interface{}, aspectSuffix string) (recommend.Review, bool) {
	userID, ok := stringField(fields, "user_id")
	if !ok {
		return recommend.Review{}, false
	}
	asin, ok := stringField(fields, "asin")
	if !ok {
		return recommend.Review{}, false
	}

	review := recommend.Review{UserID: userID, ASIN: asin}
	for _, key := range []string{"rating", "overall"} {
		if v, ok := fields[key]; ok {
			if f, ok := toFloat(v); ok {
				review.Rating = &f
				break
			}
		}
	}

	for name, v := range fields {
		if !strings.HasSuffix(name, aspectSuffix) {
			continue
		}
		if review.Aspects == nil {
			review.Aspects = make(map[string]float64)
		}
		score, _ := toFloat(v)
		review.Aspects[name] = score
	}
	return review, true
}

// stringField returns a non-empty identifier. Numeric identifiers are
// formatted without a fractional part when they are whole.
func stringField(fields map[string]interface{}, key string) (string, bool) {
	switch v := fields[key].(type) {
	case string:
		s := strings.TrimSpace(v)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	default:
		return "", false
	}
}

// toFloat accepts JSON numbers and numeric strings.
func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case bool:
		if x {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}
