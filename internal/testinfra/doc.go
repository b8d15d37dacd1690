// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

// Package testinfra starts Docker containers for integration tests.
//
// Everything here is behind the integration build tag:
//
//	go test -tags integration ./...
//
// # MongoDB Container
//
// MongoContainer runs a throwaway standalone server for the liked-items
// store:
//
//	func TestMongoStore(t *testing.T) {
//	    testinfra.SkipIfNoDocker(t)
//	    ctx := context.Background()
//	    mongo, err := testinfra.NewMongoContainer(ctx)
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//	    defer testinfra.CleanupContainer(t, ctx, mongo.Container)
//	    // seed with the driver, then read through likes.MongoStore
//	}
//
// Tests call SkipIfNoDocker first so they skip cleanly on machines without
// a daemon.
package testinfra
