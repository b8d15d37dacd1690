// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package recommend

// Catalog indexes product metadata by parent identifier and by item
// identifier. The first record seen for a key wins.
type Catalog struct {
	byParent map[string]*ProductMetadata
	byASIN   map[string]*ProductMetadata
	size     int
}

// NewCatalog indexes records. The slice is retained.
func NewCatalog(records []ProductMetadata) *Catalog {
	c := &Catalog{
		byParent: make(map[string]*ProductMetadata, len(records)),
		byASIN:   make(map[string]*ProductMetadata, len(records)),
		size:     len(records),
	}
	for i := range records {
		rec := &records[i]
		if rec.ParentASIN != "" {
			if _, ok := c.byParent[rec.ParentASIN]; !ok {
				c.byParent[rec.ParentASIN] = rec
			}
		}
		if rec.ASIN != "" {
			if _, ok := c.byASIN[rec.ASIN]; !ok {
				c.byASIN[rec.ASIN] = rec
			}
		}
	}
	return c
}

// Len returns the number of records indexed.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return c.size
}

// Lookup finds metadata for an item identifier, trying the parent index
// first and the raw item index second. A nil Catalog never matches.
func (c *Catalog) Lookup(itemID string) (*ProductMetadata, bool) {
	if c == nil {
		return nil, false
	}
	if m, ok := c.byParent[itemID]; ok {
		return m, true
	}
	m, ok := c.byASIN[itemID]
	return m, ok
}

// Attach copies metadata fields for rec.ASIN onto rec. It reports whether a
// record was found; a miss leaves rec untouched.
func (c *Catalog) Attach(rec *Recommendation) bool {
	m, ok := c.Lookup(rec.ASIN)
	if !ok {
		return false
	}
	rec.Title = m.Title
	rec.Price = m.Price
	rec.Category = m.Category
	rec.AverageRating = m.AverageRating
	rec.Images = m.Images
	return true
}
