// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

// Package algorithms implements the concrete rankers and trainers behind the
// recommend interfaces.
//
// # Rankers
//
// Content-based:
//   - ContentRanker: aspect-profile cosine similarity blended with mean rating
//     and log review count (recommend.ContentScorer)
//
// Batch:
//   - CollaborativeRanker: orders unseen items by a trained recommend.Predictor
//   - PopularityRanker: orders unseen items by global interaction count
//
// # Trainers
//
//   - ALS: implicit-feedback alternating least squares (Hu, Koren, Volinsky)
//   - BPR: Bayesian Personalized Ranking with sampled negatives (Rendle et al.)
//
// Both implement recommend.Trainer and return themselves as the Predictor.
//
// # Usage Example
//
//	engine, err := recommend.NewEngine(cfg, algorithms.Strategies(),
//	    algorithms.NewALS(algorithms.DefaultALSConfig()), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := engine.RunBatch(ctx, recommend.BatchInput{
//	    Reviews: reviews,
//	    Likes:   likes,
//	    Catalog: catalog,
//	})
//
// # Determinism
//
// Every ordering is a stable sort over first-seen indices, and parallel work
// writes into pre-sized slots. Given the same inputs and seed, rankings are
// identical across runs and worker counts.
//
// # Thread Safety
//
// Rankers are built once per run over read-only inputs and may be used from
// many goroutines. Trainers guard their factors with a read-write lock:
// training takes the exclusive lock, prediction the shared one.
package algorithms
