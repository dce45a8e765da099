// Package searchprovider contains the concrete search engine backends
// registered behind the search.Registry: Google Custom Search and Serper.
package searchprovider

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"llm-chat-server/internal/domain/search"
)

// RetryConfig defines retry behavior for search calls.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  250 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 1.5,
	}
}

// withRetry executes a search call with exponential backoff. Only
// transient failures (timeouts, connection errors, rate limits) are
// retried; auth and validation failures abort immediately.
func withRetry(ctx context.Context, cfg RetryConfig, operation string, fn func() ([]search.Result, error)) ([]search.Result, error) {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		results, err := fn()
		if err == nil {
			if attempt > 1 {
				log.Info().Str("operation", operation).Int("attempt", attempt).Msg("search succeeded after retry")
			}
			return results, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		delay := backoffDelay(cfg, attempt)
		log.Debug().
			Err(err).
			Str("operation", operation).
			Int("attempt", attempt).
			Dur("delay", delay).
			Msg("retrying search after transient failure")

		select {
		case <-ctx.Done():
			return nil, &search.QueryError{Kind: search.QueryErrorTimeout, Err: ctx.Err()}
		case <-time.After(delay):
		}
	}
	return nil, lastErr
}

func isRetryable(err error) bool {
	var queryErr *search.QueryError
	if !errors.As(err, &queryErr) {
		return false
	}
	switch queryErr.Kind {
	case search.QueryErrorTimeout, search.QueryErrorConnection, search.QueryErrorRateLimit:
		return true
	default:
		return false
	}
}

func backoffDelay(cfg RetryConfig, attempt int) time.Duration {
	delay := time.Duration(float64(cfg.InitialDelay) * math.Pow(cfg.BackoffFactor, float64(attempt-1)))
	if cfg.MaxDelay > 0 && delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}
	return delay
}
