package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/phrazzld/examaid/internal/redact"
)

// DefaultRetryDelay is used when a policy enables retries without a delay.
const DefaultRetryDelay = 2 * time.Second

// RetryPolicy controls how a model call is attempted.
// The zero value makes a single attempt with no timeout.
type RetryPolicy struct {
	// MaxRetries is the number of extra attempts after a transport failure.
	MaxRetries int
	// BaseDelay is the first backoff delay; later delays double.
	BaseDelay time.Duration
	// Timeout bounds each attempt. Zero means no per-attempt limit.
	Timeout time.Duration

	// sleep is swapped out in tests
	sleep func(ctx context.Context, d time.Duration) error
}

// NewRetryPolicy builds a policy from configuration values in seconds.
func NewRetryPolicy(maxRetries, retryDelaySeconds, timeoutSeconds int) RetryPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return RetryPolicy{
		MaxRetries: maxRetries,
		BaseDelay:  time.Duration(retryDelaySeconds) * time.Second,
		Timeout:    time.Duration(timeoutSeconds) * time.Second,
	}
}

// Do runs call until it succeeds, fails with a non-transport error, or the
// retry budget runs out. Errors from call should already be classified with
// Failure; an unclassified error is treated as a transport failure.
//
// Backoff is baseDelay * 2^attempt * (0.5 + rand(0, 0.5)).
func (p RetryPolicy) Do(ctx context.Context, logger *slog.Logger, op string, call func(ctx context.Context) error) error {
	if logger == nil {
		logger = slog.Default()
	}
	baseDelay := p.BaseDelay
	if baseDelay <= 0 {
		baseDelay = DefaultRetryDelay
	}
	sleep := p.sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		logger.DebugContext(ctx, "Making model API call",
			"operation", op,
			"attempt", attemptNum,
			"max_attempts", p.MaxRetries+1)

		err := p.attempt(ctx, call)
		if err == nil {
			return nil
		}

		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w: %w", ErrGenerationFailed, ErrTransportFailure, ctx.Err())
		}

		logger.WarnContext(ctx, "Model API call failed",
			"operation", op,
			"attempt", attemptNum,
			"error", redact.Error(err))

		if !IsTransient(err) {
			return err
		}
		if attempt >= p.MaxRetries {
			if p.MaxRetries > 0 {
				logger.WarnContext(ctx, "Maximum retry attempts reached",
					"operation", op,
					"max_retries", p.MaxRetries)
			}
			return err
		}

		backoff := float64(baseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rand.Float64()*0.5))

		logger.InfoContext(ctx, "Retrying after delay",
			"operation", op,
			"attempt", attemptNum,
			"delay_ms", delay.Milliseconds())

		if err := sleep(ctx, delay); err != nil {
			return fmt.Errorf("%w: %w: %w", ErrGenerationFailed, ErrTransportFailure, err)
		}
	}
}

func (p RetryPolicy) attempt(ctx context.Context, call func(ctx context.Context) error) error {
	callCtx := ctx
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	err := call(callCtx)
	if err == nil {
		return nil
	}
	if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return Failure(ErrTransportFailure, "request timed out after %s", p.Timeout)
	}
	if !errors.Is(err, ErrGenerationFailed) {
		return Failure(ErrTransportFailure, "%v", err)
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
