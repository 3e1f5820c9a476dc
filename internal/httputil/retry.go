// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMaxRetries = 5
	defaultBaseDelay  = 10 * time.Second
)

// Retrier sends requests and retries the ones a server turned away under
// load (HTTP 429 and 503) with exponential backoff. The delay starts at
// BaseDelay and doubles each attempt: 10 s, 20 s, 40 s, 80 s, 160 s by
// default. A Retry-After header given in seconds replaces the computed
// delay.
type Retrier struct {
	Client *http.Client

	// MaxRetries bounds the retries after the first attempt (default 5).
	MaxRetries int

	// BaseDelay is the first backoff delay (default 10s).
	BaseDelay time.Duration

	// Log receives one entry per retry. Nil discards them.
	Log *zap.Logger
}

// Retryable reports whether a response status is worth retrying.
func Retryable(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// Do executes req. On each retryable response the body is drained and
// closed before sleeping. If ctx is cancelled during a backoff wait Do
// returns ctx.Err(). After the last retry the final response is returned
// as is so the caller can inspect it.
func (r *Retrier) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	base := r.BaseDelay
	if base <= 0 {
		base = defaultBaseDelay
	}
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	for attempt := 0; ; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		if err != nil {
			return nil, err
		}
		if !Retryable(resp.StatusCode) || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := base << attempt
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
			backoff = time.Duration(secs) * time.Second
		}
		log.Info("server busy, retrying",
			zap.String("url", req.URL.String()),
			zap.Int("status", resp.StatusCode),
			zap.Duration("backoff", backoff),
			zap.Int("attempt", attempt+1),
			zap.Int("max_retries", maxRetries),
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}
