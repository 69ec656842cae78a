// Package retry provides a bounded polling combinator for operations that
// become true eventually (or never), with an injectable sleep so tests can
// run with zero delay.
package retry

import (
	"context"
	"time"
)

// SleepFunc waits for d or until ctx is done, returning ctx.Err() in the
// latter case. Tests substitute a no-op.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Policy bounds a polling loop: a fixed number of attempts with a fixed
// delay between them. The ceiling is an attempt count, not a wall-clock
// deadline, so a slow probe inflates total wait proportionally.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	Sleep       SleepFunc
}

// Poll invokes probe up to MaxAttempts times, sleeping Delay between
// attempts. probe returns (done, err): a non-nil err is terminal and
// returned immediately; done=true ends the loop successfully. Exhausting
// all attempts returns (false, nil), never an error.
func (p Policy) Poll(ctx context.Context, probe func(ctx context.Context) (bool, error)) (bool, error) {
	sleep := p.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		done, err := probe(ctx)
		if err != nil {
			return false, err
		}
		if done {
			return true, nil
		}
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, p.Delay); err != nil {
			return false, err
		}
	}
	return false, nil
}
