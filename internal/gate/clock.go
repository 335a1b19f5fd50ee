package gate

import (
	"context"
	"time"
)

// Clock abstracts wall time so polling phases can be tested without real
// sleeps
type Clock interface {
	Now() time.Time
	// Sleep suspends the run for d, returning early with the context's
	// error if it is cancelled
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
