// Package retry provides the bounded-retry combinator and the
// eventually-visible wait primitive shared by the sequence allocator and the
// artifact directory manager. Delays come from an exponential backoff policy
// but the actual sleeping goes through internal/clock, so tests run the full
// schedule against a fake clock.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/viant/docket/internal/clock"
)

// Policy bounds a retry loop: at most MaxAttempts tries, with delays growing
// from Initial by Multiplier up to Max between consecutive tries.
type Policy struct {
	MaxAttempts int
	Initial     time.Duration
	Multiplier  float64
	Max         time.Duration
}

// DefaultPolicy matches the allocator's contract: 20 attempts with a small
// growing backoff.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 20,
		Initial:     10 * time.Millisecond,
		Multiplier:  1.5,
		Max:         250 * time.Millisecond,
	}
}

func (p Policy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Initial
	b.Multiplier = p.Multiplier
	b.MaxInterval = p.Max
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// Do invokes op until it succeeds, returns a non-retryable error, the policy
// is exhausted, or ctx is cancelled. It returns the number of attempts made
// together with the last error (nil on success).
func Do(ctx context.Context, p Policy, retryable func(error) bool, op func() error) (int, error) {
	b := p.backOff()
	var err error
	for attempt := 1; ; attempt++ {
		if err = ctx.Err(); err != nil {
			return attempt - 1, err
		}
		if err = op(); err == nil {
			return attempt, nil
		}
		if retryable != nil && !retryable(err) {
			return attempt, err
		}
		if attempt >= p.MaxAttempts {
			return attempt, err
		}
		clock.Sleep(b.NextBackOff())
	}
}

// WaitTrue polls check with the policy's schedule until it reports true,
// errors, or the attempt budget runs out. It returns false with a nil error
// when the condition simply never became visible within the budget; callers
// decide whether that is a warning or a failure.
func WaitTrue(ctx context.Context, p Policy, check func() (bool, error)) (bool, error) {
	b := p.backOff()
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		ok, err := check()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
		if attempt >= p.MaxAttempts {
			return false, nil
		}
		clock.Sleep(b.NextBackOff())
	}
}
