// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

// Package dataset loads the review and product metadata files.
//
// Both inputs are JSON Lines: one object per line. A file whose first
// non-blank byte is '[' is read as a single JSON array instead.
//
// Decoding is best-effort. Each line is decoded strictly first; when that
// fails, the substring from the first '{' to the last '}' is tried, which
// recovers lines with leading or trailing noise (log prefixes, stray commas).
// Lines that still fail, or reviews missing user_id or asin, are dropped and
// counted in DecodeStats. Blank lines are skipped and not counted.
//
// A missing input file is reported as ErrMissingInput.
package dataset
