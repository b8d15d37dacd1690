// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

/*
Package pipeline wires the loaders, the liked-items store and the ranking
engine into the two runnable paths.

Batch runs the collaborative path end to end:

 1. the liked-items store must be configured
 2. both input files must exist
 3. reviews are decoded; none decoded aborts with ErrNoReviews
 4. metadata is decoded into a catalog and liked items are fetched
 5. the engine indexes interactions, selects a ranker once and ranks every user
 6. the mapping is written atomically to the output path
 7. metrics are recorded and optionally written to a textfile

Every abort is returned as a wrapped sentinel error and leaves any previous
output file untouched.

Content answers a single content-path request for one user. Its "user not
found" and "no aspect data" outcomes are values on the result, not errors.

Both are built from a loaded config.Config by NewBatchFromConfig and
NewContentFromConfig; the constructors taking explicit dependencies exist for
tests and embedding.
*/
package pipeline
