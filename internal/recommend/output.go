// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package recommend

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// UserRecommendations is one user's batch list.
type UserRecommendations struct {
	UserID string
	Items  []Recommendation
}

// BatchResult maps users to their recommendation lists. Users keep
// first-seen interaction order, which is also the JSON key order.
type BatchResult struct {
	// Strategy is the ranker name that produced the lists.
	Strategy string

	// Fallback is set when the popularity ranker was substituted.
	Fallback FallbackReason

	// SelectDuration covers ranker selection, including any training.
	SelectDuration time.Duration

	entries []UserRecommendations
}

// NewBatchResult builds a result from ordered entries.
func NewBatchResult(strategy string, entries []UserRecommendations) *BatchResult {
	return &BatchResult{Strategy: strategy, entries: entries}
}

// Len returns the number of users.
func (r *BatchResult) Len() int { return len(r.entries) }

// Entries returns the per-user lists in order.
func (r *BatchResult) Entries() []UserRecommendations { return r.entries }

// TotalRecommendations returns the number of entries across all users.
func (r *BatchResult) TotalRecommendations() int {
	n := 0
	for i := range r.entries {
		n += len(r.entries[i].Items)
	}
	return n
}

// MarshalJSON encodes the result as {"user": [...], ...} in user order.
func (r *BatchResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i := range r.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.entries[i].UserID)
		if err != nil {
			return nil, err
		}
		items := r.entries[i].Items
		if items == nil {
			items = []Recommendation{}
		}
		val, err := json.Marshal(items)
		if err != nil {
			return nil, fmt.Errorf("encode recommendations for %s: %w", r.entries[i].UserID, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteFile writes the result as indented JSON. The file is written to a
// temporary sibling and renamed into place, so readers never observe a
// partial file and a failed write leaves any previous output untouched.
func (r *BatchResult) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode batch result: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		// no-op after a successful rename
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
