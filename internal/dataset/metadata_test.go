// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const metadataJSONL = `{"parent_asin":"P1","title":"Phone","price":199.99,"main_category":"Cell Phones","average_rating":4.2,"images":[{"large":"a.jpg"}]}
{"asin":"A2","title":"Case","price":"$9.99"}
{"title":"Orphan"}
{broken
{"parent_asin":"P1","title":"Duplicate"}`

func TestDecodeMetadata(t *testing.T) {
	records, stats, err := DecodeMetadata(context.Background(), strings.NewReader(metadataJSONL))
	if err != nil {
		t.Fatalf("DecodeMetadata() error = %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len = %d, want 3", len(records))
	}
	if stats.Malformed != 1 || stats.Incomplete != 1 {
		t.Errorf("Malformed = %d, Incomplete = %d, want 1, 1", stats.Malformed, stats.Incomplete)
	}

	first := records[0]
	if first.Title != "Phone" || first.Price != 199.99 || first.Category != "Cell Phones" {
		t.Errorf("first = %+v", first)
	}
	if first.AverageRating == nil || *first.AverageRating != 4.2 {
		t.Errorf("AverageRating = %v", first.AverageRating)
	}
	if !strings.Contains(string(first.Images), "a.jpg") {
		t.Errorf("Images = %s", first.Images)
	}
	if records[1].Price != "$9.99" {
		t.Errorf("string price = %v", records[1].Price)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "meta.jsonl")
	if err := os.WriteFile(path, []byte(metadataJSONL), 0o600); err != nil {
		t.Fatal(err)
	}

	catalog, stats, err := LoadCatalog(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	if stats.Loaded != 3 {
		t.Errorf("Loaded = %d, want 3", stats.Loaded)
	}
	m, ok := catalog.Lookup("P1")
	if !ok || m.Title != "Phone" {
		t.Errorf("Lookup(P1) = %+v, %v; first record should win", m, ok)
	}
	if _, ok := catalog.Lookup("A2"); !ok {
		t.Error("Lookup(A2) missed")
	}

	_, _, err = LoadCatalog(context.Background(), filepath.Join(dir, "nope.jsonl"))
	if !errors.Is(err, ErrMissingInput) {
		t.Errorf("missing file error = %v, want ErrMissingInput", err)
	}
}

func TestDecodeMetadata_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var b strings.Builder
	for i := 0; i < checkEvery+1; i++ {
		b.WriteString(`{"asin":"x"}` + "\n")
	}
	_, _, err := DecodeMetadata(ctx, strings.NewReader(b.String()))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
