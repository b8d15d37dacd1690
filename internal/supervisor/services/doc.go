// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

/*
Package services provides suture.Service wrappers for Aspectrank jobs.

Each wrapper implements suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

and fmt.Stringer, which suture uses to name the service in its events.

# Refresh Service

RefreshService re-runs the batch pipeline every interval, optionally once at
startup. A failed run is logged and retried on the next tick. A tick that
fires while a run is still in progress is dropped and counted in
aspectrank_scheduled_runs_skipped_total. Serve returns ctx.Err() on
cancellation so the supervisor treats shutdown as a normal stop.
*/
package services
