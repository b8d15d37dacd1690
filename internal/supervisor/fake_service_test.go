// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/thejerf/suture/v4"
)

var _ suture.Service = (*fakeService)(nil)

// fakeService fails its first failures calls to Serve, then runs until
// canceled.
type fakeService struct {
	name     string
	failures int32
	starts   atomic.Int32
}

func newFakeService(name string, failures int32) *fakeService {
	return &fakeService{name: name, failures: failures}
}

func (f *fakeService) Serve(ctx context.Context) error {
	if f.starts.Add(1) <= f.failures {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (f *fakeService) String() string { return f.name }

func (f *fakeService) Starts() int32 { return f.starts.Load() }
