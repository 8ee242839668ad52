package zynle

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"zynlepay/pkg/provider"
)

// CheckStatusWithRetry calls CheckStatus up to maxAttempts times, waiting
// delay between attempts. Only retryable errors trigger another attempt;
// the last error is returned once attempts run out.
func (c *Client) CheckStatusWithRetry(ctx context.Context, referenceNo string, maxAttempts int, delay time.Duration) (provider.Response, error) {
	if maxAttempts < 1 {
		return nil, provider.NewInvalidArgument("max_attempts", "max_attempts must be at least 1")
	}
	if delay < 0 {
		return nil, provider.NewInvalidArgument("delay", "delay cannot be negative")
	}

	attempt := 0
	op := func() (provider.Response, error) {
		attempt++
		resp, err := c.CheckStatus(ctx, referenceNo)
		if err == nil {
			return resp, nil
		}
		if !provider.IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warning("status check failed, retrying", map[string]any{
			"provider":     "zynlepay",
			keyReferenceNo: referenceNo,
			"attempt":      attempt,
			"max_attempts": maxAttempts,
			"retry_in_ms":  wait.Milliseconds(),
			"error":        err.Error(),
		})
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(maxAttempts-1)),
		ctx,
	)

	resp, err := backoff.RetryNotifyWithData(op, b, notify)
	if err != nil {
		// the wait was interrupted by the caller's context
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if _, ok := provider.KindOf(err); !ok {
				err = provider.NewTransportError("status check aborted", err)
			}
		}
		return nil, err
	}
	return resp, nil
}
