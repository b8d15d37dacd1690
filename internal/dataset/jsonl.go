// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package dataset

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/goccy/go-json"
)

// readBufferSize fits most review lines without growing.
const readBufferSize = 256 * 1024

// checkEvery is how many records are read between context checks.
const checkEvery = 4096

// openInput opens path, mapping a missing file to ErrMissingInput.
func openInput(path string) (*os.File, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

// RequireFiles checks that every path exists and is a regular file, so a
// run can fail before any input is decoded.
func RequireFiles(paths ...string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%w: %s", ErrMissingInput, path)
			}
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory, not an input file", path)
		}
	}
	return nil
}

// readRecords streams the records of r, updating stats. decode parses one
// candidate into the caller's scratch value; keep then validates and stores
// it, returning false when a required field is missing.
func readRecords(ctx context.Context, r io.Reader, stats *DecodeStats, decode func([]byte) error, keep func() bool) error {
	br := bufio.NewReaderSize(r, readBufferSize)

	first, err := peekNonSpace(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if first == '[' {
		return readArray(ctx, br, stats, decode, keep)
	}

	for {
		line, readErr := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			handleRecord(line, stats, decode, keep)
			if stats.Records%checkEvery == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read: %w", readErr)
		}
	}
}

// handleRecord decodes one record strictly, then from its outermost braces.
func handleRecord(line []byte, stats *DecodeStats, decode func([]byte) error, keep func() bool) {
	stats.Records++
	line = bytes.TrimSpace(line)

	recovered := false
	if err := decode(line); err != nil {
		candidate, ok := outermostObject(line)
		if !ok || decode(candidate) != nil {
			stats.Malformed++
			return
		}
		recovered = true
	}

	if !keep() {
		stats.Incomplete++
		return
	}
	stats.Loaded++
	if recovered {
		stats.Recovered++
	}
}

// outermostObject returns the bytes from the first '{' to the last '}'.
func outermostObject(line []byte) ([]byte, bool) {
	start := bytes.IndexByte(line, '{')
	end := bytes.LastIndexByte(line, '}')
	if start < 0 || end <= start {
		return nil, false
	}
	return line[start : end+1], true
}

// readArray handles a file holding one JSON array of objects. Elements that
// fail to decode are counted as malformed; a broken array aborts.
func readArray(ctx context.Context, r io.Reader, stats *DecodeStats, decode func([]byte) error, keep func() bool) error {
	var elems []json.RawMessage
	if err := json.NewDecoder(r).DecodeContext(ctx, &elems); err != nil {
		return fmt.Errorf("decode array: %w", err)
	}
	for i, raw := range elems {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		stats.Records++
		if err := decode(raw); err != nil {
			stats.Malformed++
			continue
		}
		if !keep() {
			stats.Incomplete++
			continue
		}
		stats.Loaded++
	}
	return nil
}

// peekNonSpace skips leading whitespace and returns the next byte without
// consuming it.
func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			return 0, err
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return 0, err
		}
		return b, nil
	}
}
