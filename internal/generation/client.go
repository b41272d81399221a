package generation

import (
	"alcyxob/ai-trainer/internal/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Generator sends one prompt to a text-generation model and returns its raw
// answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const maxAttempts = 2

// Client wraps a Generator with a per-attempt timeout and a single retry
// after a fixed backoff. Exhaustion is reported as ErrGenerationService.
type Client struct {
	gen     Generator
	timeout time.Duration
	backoff time.Duration
}

func NewClient(gen Generator, timeout, backoff time.Duration) *Client {
	return &Client{gen: gen, timeout: timeout, backoff: backoff}
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %w", ErrGenerationService, ctx.Err())
			case <-time.After(c.backoff):
			}
		}

		text, err := c.attempt(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		logger.Warn("generation attempt failed", "attempt", attempt, "error", err)

		// The caller gave up; another attempt cannot succeed.
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("%w: %w", ErrGenerationService, lastErr)
}

func (c *Client) attempt(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := c.gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response text")
	}
	return text, nil
}
