// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

// Package recommend holds the core types and orchestration of the Aspectrank
// ranking engine.
//
// Two strategies produce recommendations:
//
//   - Content ranking compares a user's averaged aspect-sentiment profile with
//     each unreviewed item's profile and blends the cosine similarity with the
//     item's mean rating and a damped popularity term.
//   - Batch ranking builds a user-item interaction index from reviews and
//     liked items, then ranks unseen items for every user with either a
//     trained latent-factor Predictor or, when none is available, global
//     interaction popularity.
//
// The package defines the data model (Review, AspectSet, Catalog,
// InteractionIndex, Recommendation) and the interfaces the concrete rankers in
// the algorithms sub-package implement. Engine selects the batch strategy once
// per run and assembles ranked items with catalog metadata.
//
// Nothing in this package reads files, the environment or a database; callers
// hand it materialized records and a Config.
//
// # Determinism
//
// Every ordering is stable. Content results are sorted by score with ties kept
// in candidate order (first appearance in the review set). Batch results keep
// users in first-seen interaction order and break score ties by item index.
// Parallel scoring writes into pre-sized slices, so worker scheduling never
// changes output.
package recommend
