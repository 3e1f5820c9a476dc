// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detok

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxLineBytes bounds a single model output line.
const maxLineBytes = 16 << 20

// DetokenizeAll detokenizes lines concurrently with at most workers
// goroutines (unbounded when workers <= 0). The output has one entry per
// input line, in input order.
func DetokenizeAll(ctx context.Context, lines []string, workers int) ([]string, error) {
	out := make([]string, len(lines))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, line := range lines {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i] = Detokenize(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessOutput reads model output from r, strips markers from every line,
// detokenizes it, and writes one line of prose per input line to w. It
// returns the detokenized lines.
func ProcessOutput(ctx context.Context, r io.Reader, w io.Writer, workers int) ([]string, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		raw = append(raw, StripMarkers(strings.TrimRight(sc.Text(), "\r\n")))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading model output: %w", err)
	}

	lines, err := DetokenizeAll(ctx, raw, workers)
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return nil, fmt.Errorf("writing detokenized output: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return nil, fmt.Errorf("writing detokenized output: %w", err)
	}
	return lines, nil
}
