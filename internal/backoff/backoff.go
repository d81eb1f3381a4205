package backoff

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Defaults used when a Policy field is left at its zero value
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = 1000 * time.Millisecond
)

// ComputeDelay returns base * 2^attempt. Negative attempts count as zero.
// Results that would overflow are clamped to the largest representable duration.
func ComputeDelay(attempt int, base time.Duration) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if base <= 0 {
		return 0
	}

	delay := base
	for i := 0; i < attempt; i++ {
		if delay > maxDuration/2 {
			return maxDuration
		}
		delay *= 2
	}
	return delay
}

const maxDuration = time.Duration(1<<63 - 1)

// Sleeper suspends the caller for d or until ctx is done
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a function to the Sleeper interface
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f(ctx, d)
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleeper sleeps on a real timer and wakes early when ctx is cancelled
type TimerSleeper struct{}

// Sleep waits for d to elapse or ctx to be done, whichever happens first
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Policy describes how often an operation is attempted and how long to wait
// between attempts
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// MaxDelay caps a single delay. Zero means no cap.
	MaxDelay time.Duration

	// Jitter, if set, may perturb each computed delay
	Jitter func(time.Duration) time.Duration

	Sleeper Sleeper
}

// DefaultPolicy returns three attempts with a one second base delay
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Sleeper:     TimerSleeper{},
	}
}

// Attempts returns the number of attempts Do makes
func (p Policy) Attempts() int {
	if p.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

// Delay returns the wait that follows the failed attempt with the given
// zero-based index
func (p Policy) Delay(attempt int) time.Duration {
	d := ComputeDelay(attempt, p.BaseDelay)
	if p.MaxDelay > 0 && d > p.MaxDelay {
		d = p.MaxDelay
	}
	if p.Jitter != nil {
		d = p.Jitter(d)
	}
	return d
}

// FailureFunc observes a failed attempt. delay is zero for the final attempt.
type FailureFunc func(attempt int, err error, delay time.Duration)

// Do runs op until it succeeds, returns a permanent error, or MaxAttempts
// attempts have failed. attempt passed to op is 1-based.
//
// No delay follows the final attempt. Cancellation of ctx during a delay
// aborts the loop and returns the context error.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context, attempt int) error, onFailure FailureFunc) error {
	maxAttempts := p.Attempts()
	sleeper := p.Sleeper
	if sleeper == nil {
		sleeper = TimerSleeper{}
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := op(ctx, attempt)
		if err == nil {
			return nil
		}

		var perm *permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		lastErr = err

		if attempt == maxAttempts {
			if onFailure != nil {
				onFailure(attempt, err, 0)
			}
			break
		}

		delay := p.Delay(attempt - 1)
		if onFailure != nil {
			onFailure(attempt, err, delay)
		}
		if err := sleeper.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	return &ExhaustedError{Attempts: maxAttempts, Last: lastErr}
}

// ExhaustedError reports that every permitted attempt failed
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("all %d attempts failed: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Last
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not retryable. Do returns the wrapped error as is.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}
