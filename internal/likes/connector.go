// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package likes

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// Connector is a Store that opens a fresh MongoStore for every call and
// disconnects afterwards.
type Connector struct {
	cfg    MongoConfig
	logger zerolog.Logger
}

// NewConnector returns a per-call MongoDB store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConnector(cfg MongoConfig, logger zerolog.Logger) *Connector {
	return &Connector{cfg: cfg, logger: logger}
}

// LikedItems connects, reads and disconnects.
func (c *Connector) LikedItems(ctx context.Context) ([]recommend.LikedItems, error) {
	store, err := NewMongoStore(ctx, c.cfg, c.logger)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
		}
	}()
	return store.LikedItems(ctx)
}
