package gate

import (
	"context"
	"time"
)

// poll repeats fn at a fixed interval until it reports done or returns a
// definitive error. The deadline is an elapsed-time budget: once the next
// attempt would land on or past it, the phase fails with a TimeoutError.
// A budget smaller than one interval still allows a single attempt.
func poll[T any](ctx context.Context, clock Clock, phase string, interval, budget time.Duration, fn func(context.Context) (T, bool, error)) (T, error) {
	var zero T
	deadline := clock.Now().Add(budget)
	for {
		v, done, err := fn(ctx)
		if err != nil {
			return zero, err
		}
		if done {
			return v, nil
		}
		if next := clock.Now().Add(interval); !next.Before(deadline) {
			return zero, &TimeoutError{Phase: phase, Budget: budget}
		}
		if err := clock.Sleep(ctx, interval); err != nil {
			return zero, err
		}
	}
}
