// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package likes

import (
	"context"
	"errors"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

var (
	// ErrNotConfigured is returned when no connection URI is set.
	ErrNotConfigured = errors.New("liked-items store not configured: MONGO_URI is empty")

	// ErrUnavailable wraps connection and query failures.
	ErrUnavailable = errors.New("liked-items store unavailable")
)

// Store provides every user's liked-items list.
type Store interface {
	// LikedItems returns one entry per user document, in store order.
	LikedItems(ctx context.Context) ([]recommend.LikedItems, error)
}

// Count returns the total number of liked items across users.
func Count(lists []recommend.LikedItems) int {
	n := 0
	for i := range lists {
		n += len(lists[i].Items)
	}
	return n
}
