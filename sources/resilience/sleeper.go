package resilience

import (
	"context"
	"math/rand/v2"
	"time"
)

// Sleeper blocks between retry attempts. It returns ctx.Err() if the context ends first.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Random yields uniformly distributed values in [0, 1).
type Random func() float64

func NewRandom() Random {
	return rand.Float64
}
