// Package search has the pieces shared by the search engines: the time
// budget guard that every recursive frame consults, and search statistics.
package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"
)

const DefaultTimerThreshold = 10.0

// ErrSearchCancelled is returned up through every pending frame once the
// time budget runs out. It is routine control flow, not a failure.
var ErrSearchCancelled = errors.New("search cancelled")

// TimeLeftFunc returns the milliseconds left in the current turn.
type TimeLeftFunc func() float64

// Unlimited never runs out.
func Unlimited() TimeLeftFunc {
	return func() float64 { return math.Inf(1) }
}

// Deadline counts down to t using the wall clock.
func Deadline(t time.Time) TimeLeftFunc {
	return func() float64 {
		return float64(time.Until(t).Microseconds()) / 1000
	}
}

// Guard decides whether a search frame may keep expanding the tree.
type Guard struct {
	ctx       context.Context
	timeLeft  TimeLeftFunc
	threshold float64
}

// NewGuard makes a guard that trips when timeLeft drops below threshold
// milliseconds, or when ctx is done. A nil timeLeft never runs out.
func NewGuard(ctx context.Context, timeLeft TimeLeftFunc, threshold float64) *Guard {
	if timeLeft == nil {
		timeLeft = Unlimited()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Guard{ctx: ctx, timeLeft: timeLeft, threshold: threshold}
}

// Check must be called at the top of every function that expands the
// search tree.
func (g *Guard) Check() error {
	if err := g.ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrSearchCancelled, err)
	}
	if g.timeLeft() < g.threshold {
		return ErrSearchCancelled
	}
	return nil
}

func (g *Guard) Threshold() float64 {
	return g.threshold
}

func IsCancelled(err error) bool {
	return errors.Is(err, ErrSearchCancelled)
}
