// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package dataset

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// LoadMetadata reads the product metadata file at path.
func LoadMetadata(ctx context.Context, path string) ([]recommend.ProductMetadata, *DecodeStats, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	records, stats, err := DecodeMetadata(ctx, f)
	stats.Path = path
	if err != nil {
		return nil, stats, fmt.Errorf("load metadata from %s: %w", path, err)
	}
	return records, stats, nil
}

// DecodeMetadata reads metadata records from r. Records without either
// identifier can never be joined and count as incomplete.
func DecodeMetadata(ctx context.Context, r io.Reader) ([]recommend.ProductMetadata, *DecodeStats, error) {
	stats := &DecodeStats{StartTime: time.Now()}
	var (
		records []recommend.ProductMetadata
		current recommend.ProductMetadata
	)

	decode := func(b []byte) error {
		current = recommend.ProductMetadata{}
		return json.Unmarshal(b, &current)
	}
	keep := func() bool {
		if current.Key() == "" {
			return false
		}
		records = append(records, current)
		return true
	}

	err := readRecords(ctx, r, stats, decode, keep)
	stats.EndTime = time.Now()
	return records, stats, err
}

// LoadCatalog reads the metadata file and indexes it.
func LoadCatalog(ctx context.Context, path string) (*recommend.Catalog, *DecodeStats, error) {
	records, stats, err := LoadMetadata(ctx, path)
	if err != nil {
		return nil, stats, err
	}
	return recommend.NewCatalog(records), stats, nil
}
