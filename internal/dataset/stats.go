// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package dataset

import (
	"errors"
	"time"
)

// ErrMissingInput is returned when an input file does not exist.
var ErrMissingInput = errors.New("input file not found")

// DecodeStats counts what happened to the records of one input file.
type DecodeStats struct {
	// Path is the file that was read.
	Path string

	// Records is the number of non-blank records seen.
	Records int

	// Loaded is the number of records kept.
	Loaded int

	// Recovered is the number of loaded records that needed the substring
	// fallback.
	Recovered int

	// Malformed is the number of records that could not be decoded.
	Malformed int

	// Incomplete is the number of decoded records missing a required field.
	Incomplete int

	// StartTime is when loading started.
	StartTime time.Time

	// EndTime is when loading finished.
	EndTime time.Time
}

// Dropped returns the number of records not loaded.
func (s *DecodeStats) Dropped() int {
	return s.Malformed + s.Incomplete
}

// Duration returns how long loading took.
func (s *DecodeStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}
