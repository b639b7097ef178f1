package optimizer

import (
	"context"
	"time"
)

// Budget bounds the work a solve may do. Zero values mean unbounded.
type Budget struct {
	// Maximum number of applied inter-route moves.
	MaxIterations int
	// Wall-clock limit for the whole solve.
	MaxDuration time.Duration
}

// bind derives a context that expires when the duration budget runs out.
func (b Budget) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.MaxDuration > 0 {
		return context.WithTimeout(ctx, b.MaxDuration)
	}
	return context.WithCancel(ctx)
}

// iterationsLeft reports whether another move may be applied after done.
func (b Budget) iterationsLeft(done int) bool {
	return b.MaxIterations <= 0 || done < b.MaxIterations
}

// expired reports whether ctx has been cancelled or has passed its deadline.
// Solver loops call it at every loop boundary and exit cooperatively.
func expired(ctx context.Context) bool {
	return ctx.Err() != nil
}
