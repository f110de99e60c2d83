package eigenda

import (
	"context"
	"fmt"
	"time"

	"github.com/rollkit/eigenda-client/types"
)

// PollPolicy bounds WaitForConfirmation. At least one of MaxAttempts, Timeout or a
// context deadline must be set.
type PollPolicy struct {
	Interval    time.Duration
	MaxAttempts int
	Timeout     time.Duration
}

// WaitForConfirmation polls the status of id until it is terminal and returns that
// status; callers branch on its result. The first poll is immediate.
//
// When the attempts run out the last status is returned with ErrPollAttemptsExhausted.
// Transport errors and context expiry end polling at once.
func (c *Client) WaitForConfirmation(ctx context.Context, id types.RequestID, policy PollPolicy) (*types.BlobStatus, error) {
	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}
	if _, ok := ctx.Deadline(); !ok && policy.MaxAttempts <= 0 {
		return nil, ErrUnboundedPolling
	}

	start := time.Now()
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	var last *types.BlobStatus
	for attempt := 1; ; attempt++ {
		status, err := c.GetStatus(ctx, id)
		if err != nil {
			return status, fmt.Errorf("waiting for %s: %w", id, err)
		}
		last = status
		if status.Result().IsTerminal() {
			c.metrics.ConfirmationTime.Observe(time.Since(start).Seconds())
			c.logger.Info("dispersal reached terminal state", "request_id", id, "result", status.Result(), "attempts", attempt)
			return status, nil
		}
		if policy.MaxAttempts > 0 && attempt >= policy.MaxAttempts {
			return last, fmt.Errorf("%w: %s still %s after %d attempts", ErrPollAttemptsExhausted, id, last.Result(), attempt)
		}

		if timer == nil {
			timer = time.NewTimer(policy.Interval)
		} else {
			timer.Reset(policy.Interval)
		}
		select {
		case <-ctx.Done():
			return last, fmt.Errorf("waiting for %s: %w", id, ctx.Err())
		case <-timer.C:
		}
	}
}
