// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectrank/internal/dataset"
	"github.com/tomtom215/aspectrank/internal/metrics"
	"github.com/tomtom215/aspectrank/internal/recommend"
)

func newTestContent(t *testing.T, files testFiles) *Content {
	t.Helper()
	return NewContent(newTestEngine(t, nil), ContentOptions{
		ReviewsPath:  files.reviews,
		MetadataPath: files.metadata,
	}, zerolog.Nop())
}

func TestContentRecommend(t *testing.T) {
	files := writeInputs(t, testReviews, testMetadata)
	content := newTestContent(t, files)

	result, err := content.Recommend(context.Background(), "U1", 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if result.Reason != "" {
		t.Fatalf("Reason = %q, want none", result.Reason)
	}
	if result.UserID != "U1" {
		t.Errorf("UserID = %q, want U1", result.UserID)
	}

	got := make([]string, len(result.Recommendations))
	for i, r := range result.Recommendations {
		got[i] = r.ASIN
		if r.Rank != i+1 {
			t.Errorf("rank[%d] = %d", i, r.Rank)
		}
	}
	if want := []string{"C", "D"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("recommendations = %v, want %v", got, want)
	}

	// C is close to U1's battery-heavy profile; D is camera-only
	if result.Recommendations[0].Similarity <= result.Recommendations[1].Similarity {
		t.Errorf("similarity C = %v, D = %v, want C higher",
			result.Recommendations[0].Similarity, result.Recommendations[1].Similarity)
	}
	if result.Recommendations[1].Title != "Delta" {
		t.Errorf("D title = %q, want Delta", result.Recommendations[1].Title)
	}
	if result.Recommendations[0].Title != "" {
		t.Errorf("C has no metadata, got title %q", result.Recommendations[0].Title)
	}
}

func TestContentRecommend_TopN(t *testing.T) {
	files := writeInputs(t, testReviews, testMetadata)
	content := newTestContent(t, files)

	result, err := content.Recommend(context.Background(), "U3", 2)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.Recommendations) != 2 {
		t.Errorf("len = %d, want 2", len(result.Recommendations))
	}
}

func TestContentRecommend_Reasons(t *testing.T) {
	tests := []struct {
		name       string
		reviews    string
		user       string
		wantReason string
	}{
		{
			name:       "unknown user",
			reviews:    testReviews,
			user:       "nobody",
			wantReason: recommend.ReasonUserNotFound,
		},
		{
			name:       "no aspect fields",
			reviews:    `{"user_id":"U1","asin":"A","rating":5}` + "\n",
			user:       "U1",
			wantReason: recommend.ReasonNoAspectData,
		},
		{
			name:       "empty reviews file",
			reviews:    "",
			user:       "U1",
			wantReason: recommend.ReasonNoAspectData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := writeInputs(t, tt.reviews, testMetadata)
			content := newTestContent(t, files)

			before := testutil.ToFloat64(metrics.ContentResults.WithLabelValues(tt.wantReason))
			result, err := content.Recommend(context.Background(), tt.user, 5)
			if err != nil {
				t.Fatalf("Recommend() error = %v", err)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
			if result.Recommendations == nil || len(result.Recommendations) != 0 {
				t.Errorf("Recommendations = %v, want empty non-nil", result.Recommendations)
			}
			after := testutil.ToFloat64(metrics.ContentResults.WithLabelValues(tt.wantReason))
			if after-before != 1 {
				t.Errorf("content result counter delta = %v, want 1", after-before)
			}
		})
	}
}

func TestContentRecommend_NonFiniteFieldsStayEncodable(t *testing.T) {
	reviews := testReviews +
		`{"user_id":"U3","asin":"C","rating":"NaN","battery_score":"Inf"}` + "\n" +
		`{"user_id":"U2","asin":"D","overall":"-Infinity","camera_score":"nan"}` + "\n"
	files := writeInputs(t, reviews, testMetadata)
	content := newTestContent(t, files)

	result, err := content.Recommend(context.Background(), "U1", 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(result.Recommendations) != 2 {
		t.Fatalf("len = %d, want 2", len(result.Recommendations))
	}
	if _, err := json.Marshal(result); err != nil {
		t.Errorf("Marshal(result) error = %v", err)
	}
}

func TestContentRecommend_MissingInput(t *testing.T) {
	files := writeInputs(t, testReviews, testMetadata)
	files.metadata = filepath.Join(t.TempDir(), "absent.jsonl")
	content := newTestContent(t, files)

	_, err := content.Recommend(context.Background(), "U1", 5)
	if !errors.Is(err, dataset.ErrMissingInput) {
		t.Fatalf("Recommend() error = %v, want ErrMissingInput", err)
	}
}
