// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectrank/internal/metrics"
	"github.com/tomtom215/aspectrank/internal/pipeline"
)

// BatchRunner runs one batch pipeline pass.
type BatchRunner interface {
	Run(ctx context.Context) (*pipeline.Report, error)
}

// RefreshServiceConfig holds configuration for the refresh service.
type RefreshServiceConfig struct {
	// RunOnStartup runs the pipeline as soon as the service starts.
	RunOnStartup bool

	// Interval is the time between scheduled runs. Default: 24h
	Interval time.Duration

	// RunTimeout bounds a single run. Default: 30m
	RunTimeout time.Duration
}

// RefreshService re-runs the batch pipeline on an interval under suture
// supervision. A failed run is logged and retried on the next tick; it never
// stops the service.
type RefreshService struct {
	runner BatchRunner
	config RefreshServiceConfig
	logger zerolog.Logger
	name   string
}

// NewRefreshService creates a refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(runner BatchRunner, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = 30 * time.Minute
	}
	return &RefreshService{
		runner: runner,
		config: cfg,
		logger: logger.With().Str("service", "refresh").Logger(),
		name:   "refresh-service",
	}
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("run_on_startup", s.config.RunOnStartup).
		Dur("interval", s.config.Interval).
		Msg("refresh service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	if s.config.RunOnStartup {
		s.runOnce(ctx)
		s.dropMissedTick(ticker)
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled refresh triggered")
			s.runOnce(ctx)
			s.dropMissedTick(ticker)
		}
	}
}

// runOnce runs the pipeline with its own timeout. Errors are logged only.
func (s *RefreshService) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	report, err := s.runner.Run(runCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Msg("scheduled refresh failed, will retry on next tick")
		return
	}
	if report != nil {
		s.logger.Info().
			Str("run_id", report.RunID).
			Str("strategy", report.Strategy).
			Int("users", report.Users).
			Dur("duration", report.Duration).
			Msg("scheduled refresh complete")
	}
}

// dropMissedTick discards a tick that fired while a run was in progress, so
// a long run is not followed immediately by another.
func (s *RefreshService) dropMissedTick(ticker *time.Ticker) {
	select {
	case <-ticker.C:
		metrics.ScheduledRunsSkipped.Inc()
		s.logger.Warn().Msg("previous refresh overran the interval, skipping tick")
	default:
	}
}

// String returns the service name for logging.
func (s *RefreshService) String() string {
	return s.name
}
