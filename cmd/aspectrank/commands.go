// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aspectrank/internal/config"
	"github.com/tomtom215/aspectrank/internal/logging"
	"github.com/tomtom215/aspectrank/internal/pipeline"
	"github.com/tomtom215/aspectrank/internal/supervisor"
	"github.com/tomtom215/aspectrank/internal/supervisor/services"
)

// contentFlags are the flags of the content command.
type contentFlags struct {
	user string
	top  int
}

func parseContentFlags(args []string, stderr io.Writer) (contentFlags, error) {
	var f contentFlags
	fs := flag.NewFlagSet("content", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.user, "user", "", "user id to rank products for (required)")
	fs.IntVar(&f.top, "top", 0, "number of recommendations; 0 uses recommend.top_n")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	f.user = strings.TrimSpace(f.user)
	if f.user == "" {
		fs.Usage()
		return f, errors.New("-user is required")
	}
	if f.top < 0 {
		return f, fmt.Errorf("-top must not be negative, got %d", f.top)
	}
	return f, nil
}

// parseBatchFlags parses the flags shared by batch and schedule.
func parseBatchFlags(name string, args []string, stderr io.Writer) (inferOnly bool, err error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&inferOnly, "infer-only", false, "skip training and rank by popularity")
	err = fs.Parse(args)
	return inferOnly, err
}

// loadConfig loads configuration and initializes the global logger.
func loadConfig(stderr io.Writer) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    stderr,
	})
	return cfg, nil
}

func runContent(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags, err := parseContentFlags(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}
	cfg, err := loadConfig(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitAbort
	}

	logger := logging.WithComponent("cli")
	content, err := pipeline.NewContentFromConfig(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize content ranking")
		return exitAbort
	}

	result, err := content.Recommend(ctx, flags.user, flags.top)
	if err != nil {
		logger.Error().Err(err).Msg("Content ranking aborted")
		return exitAbort
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		logger.Error().Err(err).Msg("Failed to write recommendations")
		return exitAbort
	}
	return exitOK
}

func runBatch(ctx context.Context, args []string, stderr io.Writer) int {
	inferOnly, err := parseBatchFlags("batch", args, stderr)
	if err != nil {
		return exitUsage
	}
	cfg, err := loadConfig(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitAbort
	}
	if inferOnly {
		cfg.Collaborative.InferOnly = true
	}

	logger := logging.WithComponent("cli")
	batch, err := pipeline.NewBatchFromConfig(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize batch pipeline")
		return exitAbort
	}

	// Run logs the abort reason itself.
	if _, err := batch.Run(ctx); err != nil {
		return exitAbort
	}
	return exitOK
}

func runSchedule(ctx context.Context, args []string, stderr io.Writer) int {
	inferOnly, err := parseBatchFlags("schedule", args, stderr)
	if err != nil {
		return exitUsage
	}
	cfg, err := loadConfig(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitAbort
	}
	if inferOnly {
		cfg.Collaborative.InferOnly = true
	}

	logger := logging.WithComponent("cli")
	batch, err := pipeline.NewBatchFromConfig(cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize batch pipeline")
		return exitAbort
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logging.Logger()), supervisor.DefaultTreeConfig())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create supervisor tree")
		return exitAbort
	}
	tree.AddJobService(services.NewRefreshService(batch, services.RefreshServiceConfig{
		RunOnStartup: cfg.Schedule.RunOnStartup,
		Interval:     cfg.Schedule.Interval,
		RunTimeout:   cfg.Schedule.RunTimeout,
	}, logger))

	logger.Info().
		Dur("interval", cfg.Schedule.Interval).
		Bool("run_on_startup", cfg.Schedule.RunOnStartup).
		Bool("infer_only", cfg.Collaborative.InferOnly).
		Msg("Starting scheduled refresh")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("Supervisor tree stopped unexpectedly")
		if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
			logger.Warn().Int("count", len(report)).Msg("Services did not stop within the shutdown timeout")
		}
		return exitAbort
	}
	logger.Info().Msg("Scheduled refresh stopped")
	return exitOK
}
