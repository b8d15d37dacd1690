// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectrank/internal/logging"
)

func testSlogLogger() *slog.Logger {
	return logging.NewSlogLogger(zerolog.Nop())
}

// serveAsync runs tree.Serve in a goroutine and reports its result.
func serveAsync(ctx context.Context, tree *SupervisorTree) <-chan error {
	errCh := make(chan error, 1)
	go func() { errCh <- tree.Serve(ctx) }()
	return errCh
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestNewSupervisorTree_Defaults(t *testing.T) {
	tree, err := NewSupervisorTree(testSlogLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.root == nil || tree.jobs == nil {
		t.Fatal("supervisors not created")
	}

	want := DefaultTreeConfig()
	if tree.config != want {
		t.Errorf("config = %+v, want %+v", tree.config, want)
	}
}

func TestNewSupervisorTree_KeepsExplicitValues(t *testing.T) {
	cfg := TreeConfig{
		FailureThreshold: 2,
		FailureDecay:     1,
		FailureBackoff:   time.Second,
		ShutdownTimeout:  3 * time.Second,
	}
	tree, err := NewSupervisorTree(testSlogLogger(), cfg)
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.config != cfg {
		t.Errorf("config = %+v, want %+v", tree.config, cfg)
	}
}

func TestSupervisorTree_StartsJobsAndStops(t *testing.T) {
	tree, _ := NewSupervisorTree(testSlogLogger(), TreeConfig{ShutdownTimeout: time.Second})
	job := newFakeService("refresh", 0)
	tree.AddJobService(job)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := serveAsync(ctx, tree)

	if !waitFor(t, time.Second, func() bool { return job.Starts() >= 1 }) {
		t.Fatal("job was not started")
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("tree did not shut down in time")
	}

	report, err := tree.UnstoppedServiceReport()
	if err != nil {
		t.Fatalf("UnstoppedServiceReport() error = %v", err)
	}
	if len(report) != 0 {
		t.Errorf("unstopped services = %v", report)
	}
}

func TestSupervisorTree_RestartsFailingJob(t *testing.T) {
	tree, _ := NewSupervisorTree(testSlogLogger(), TreeConfig{
		FailureThreshold: 10,
		FailureBackoff:   10 * time.Millisecond,
		ShutdownTimeout:  time.Second,
	})
	job := newFakeService("flaky", 2)
	tree.AddJobService(job)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	serveAsync(ctx, tree)

	if !waitFor(t, time.Second, func() bool { return job.Starts() >= 3 }) {
		t.Errorf("starts = %d, want at least 3", job.Starts())
	}
}
