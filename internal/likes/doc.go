// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

// Package likes reads users' liked-items lists from the application's
// MongoDB user collection.
//
// Each user document carries the fields
//
//	{ "user_id": "...", "likedProducts": ["ASIN1", "ASIN2"] }
//
// and only those two fields are fetched. The database is chosen in order:
// the configured name, the default database in the connection URI, then the
// first database on the server other than admin, local and config. A server
// with no such database yields no likes and a warning; an unreachable server
// is an error.
//
// BreakerStore wraps any Store with a circuit breaker so the scheduled
// refresh service stops hammering a failing server between runs.
package likes
