// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

// Package main is the entry point for the aspectrank command.
//
// Aspectrank ranks products for users in two ways: a content path that
// matches a user's aspect-sentiment profile against each product's, and a
// batch path that ranks unseen products for every user with a latent-factor
// model, falling back to global popularity.
//
// # Commands
//
//	aspectrank content -user <id> [-top N]   print one user's content ranking as JSON
//	aspectrank batch [-infer-only]            write the per-user mapping once
//	aspectrank schedule [-infer-only]         re-run batch on schedule.interval
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (MONGO_URI, MONGO_DB, REVIEWS_PATH, METADATA_PATH,
//     OUTPUT_PATH, LOG_LEVEL, ...)
//   - Config file (CONFIG_PATH or ./config.yaml)
//   - Built-in defaults
//
// # Exit Codes
//
// 0 on success, including a content request that reports "user not found"
// or "no aspect data". 1 when a run aborts: missing input file, no decodable
// reviews, liked-items store not configured or unreachable. 2 on usage errors.
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the running command. A batch run canceled before
// its output is renamed into place leaves any previous output untouched.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

const (
	exitOK    = 0
	exitAbort = 1
	exitUsage = 2
)

const usage = `Usage: aspectrank <command> [flags]

Commands:
  content -user <id> [-top N]   rank unreviewed products for one user by aspect similarity
  batch [-infer-only]           rank unseen products for every user and write the mapping file
  schedule [-infer-only]        run batch on an interval until interrupted
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches a subcommand and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	switch args[0] {
	case "content":
		return runContent(ctx, args[1:], stdout, stderr)
	case "batch":
		return runBatch(ctx, args[1:], stderr)
	case "schedule":
		return runSchedule(ctx, args[1:], stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return exitUsage
	}
}
