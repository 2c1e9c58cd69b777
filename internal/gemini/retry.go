package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	genai "google.golang.org/genai"
)

// RetryConfig configures the retry behavior for model calls.
type RetryConfig struct {
	MaxRetries      int           // Maximum number of retry attempts
	InitialInterval time.Duration // Initial backoff interval
	MaxInterval     time.Duration // Maximum backoff interval
}

// DefaultRetryConfig returns sensible defaults for Gemini API calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     10 * time.Second,
	}
}

// retryablePatterns groups error substrings by category.
// Matched case-insensitively against err.Error().
//
// NOTE: This uses string matching because the genai SDK does not expose
// typed/sentinel errors for transient failures. Re-evaluate if the SDK
// adds structured error types in a future version.
var retryablePatterns = [][]string{
	{"rate limit", "quota exceeded", "resource_exhausted", "429"}, // rate limiting
	{"500", "502", "503", "504", "unavailable", "overloaded"},     // transient server errors
	{"connection reset", "timeout", "temporary"},                  // network errors
}

// retryableError reports whether err is transient and should trigger a retry.
func retryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	for _, group := range retryablePatterns {
		if containsAny(errStr, group...) {
			return true
		}
	}
	return false
}

// containsAny checks if s contains any of the substrings (case-insensitive).
func containsAny(s string, substrs ...string) bool {
	lower := strings.ToLower(s)
	for _, sub := range substrs {
		if strings.Contains(lower, strings.ToLower(sub)) {
			return true
		}
	}
	return false
}

// generate issues one GenerateContent call with rate limiting and
// exponential backoff retry. Every attempt waits on the shared limiter
// so retries cannot stampede the quota.
func (c *Client) generate(
	ctx context.Context,
	op, model, prompt string,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	var lastErr error
	delay := c.retry.InitialInterval
	start := time.Now()

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		resp, err := c.cli.Models.GenerateContent(ctx, model, genai.Text(prompt), cfg)
		if err == nil {
			c.logger.Debug("model call succeeded",
				"op", op,
				"model", model,
				"attempt", attempt,
				"elapsed", time.Since(start))
			return resp, nil
		}

		lastErr = err
		if !retryableError(err) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		c.logger.Warn("retrying model call",
			"op", op,
			"model", model,
			"attempt", attempt,
			"delay", delay,
			"error", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(delay):
		}

		delay *= 2
		if delay > c.retry.MaxInterval {
			delay = c.retry.MaxInterval
		}
	}

	return nil, fmt.Errorf("%s: retries exhausted after %s: %w", op, time.Since(start), lastErr)
}
