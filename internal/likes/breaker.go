// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package likes

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/aspectrank/internal/metrics"
	"github.com/tomtom215/aspectrank/internal/recommend"
)

// BreakerConfig tunes the circuit breaker around a Store.
type BreakerConfig struct {
	// Name labels metrics and logs.
	Name string

	// MaxFailures is the number of consecutive failures that opens the
	// circuit.
	MaxFailures uint32

	// Timeout is how long the circuit stays open before a trial request.
	Timeout time.Duration
}

// BreakerStore wraps a Store with circuit breaker protection. While the
// circuit is open, calls fail fast with gobreaker.ErrOpenState wrapped in
// ErrUnavailable.
//
// The breaker uses real time for its timeout. Tests exercise it with short
// timeouts rather than a fake clock.
type BreakerStore struct {
	store  Store
	cb     *gobreaker.CircuitBreaker[[]recommend.LikedItems]
	name   string
	logger zerolog.Logger
}

// NewBreakerStore wraps store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBreakerStore(store Store, cfg BreakerConfig, logger zerolog.Logger) *BreakerStore {
	if cfg.Name == "" {
		cfg.Name = "likes-store"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	b := &BreakerStore{
		store:  store,
		name:   cfg.Name,
		logger: logger.With().Str("component", "likes").Str("breaker", cfg.Name).Logger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(cfg.Name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cfg.Name).Set(0)

	maxFailures := cfg.MaxFailures
	b.cb = gobreaker.NewCircuitBreaker[[]recommend.LikedItems](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},

		// cancellation is the caller's decision, not a store fault
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			b.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
	return b
}

// LikedItems calls the wrapped store through the breaker.
func (b *BreakerStore) LikedItems(ctx context.Context) ([]recommend.LikedItems, error) {
	result, err := b.cb.Execute(func() ([]recommend.LikedItems, error) {
		return b.store.LikedItems(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			b.logger.Warn().Err(err).Msg("Liked-items request rejected by circuit breaker")
			return nil, errors.Join(ErrUnavailable, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(b.cb.Counts().ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, nil
}

// State returns the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
