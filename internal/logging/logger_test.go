// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Level != "info" {
		t.Errorf("expected default level 'info', got '%s'", cfg.Level)
	}
	if cfg.Format != "json" {
		t.Errorf("expected default format 'json', got '%s'", cfg.Format)
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	logger := WithComponent("pipeline")
	logger.Info().Msg("run finished")

	output := buf.String()
	if !strings.Contains(output, "run finished") {
		t.Errorf("expected message in output, got: %s", output)
	}
	if !strings.Contains(output, `"component":"pipeline"`) {
		t.Errorf("expected component field, got: %s", output)
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseLevel(tt.input); got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRunIDContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if id := RunIDFromContext(ctx); id != "" {
		t.Errorf("expected empty run ID, got %s", id)
	}

	ctx = ContextWithNewRunID(ctx)
	id := RunIDFromContext(ctx)
	if len(id) != 8 {
		t.Errorf("expected 8-character run ID, got %q", id)
	}
	if GenerateRunID() == GenerateRunID() {
		t.Error("expected unique run IDs")
	}
}

func TestCtxAddsRunID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), newTestLogger(&buf))
	ctx = ContextWithRunID(ctx, "abcd1234")

	Ctx(ctx).Info().Msg("hello")

	if !strings.Contains(buf.String(), `"run_id":"abcd1234"`) {
		t.Errorf("expected run_id field, got: %s", buf.String())
	}
}

func TestSlogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSlogLogger(newTestLogger(&buf))
	logger.WithGroup("svc").Warn("restarting", slog.String("name", "refresh"), slog.Int("attempt", 2))

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"svc.name":"refresh"`, `"svc.attempt":2`, "restarting"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in output, got: %s", want, out)
		}
	}
}
