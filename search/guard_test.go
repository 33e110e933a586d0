package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestGuardThreshold(t *testing.T) {
	is := is.New(t)
	remaining := 50.0
	g := NewGuard(context.Background(), func() float64 { return remaining }, 10)
	is.NoErr(g.Check())
	remaining = 10
	is.NoErr(g.Check())
	remaining = 9.99
	is.True(errors.Is(g.Check(), ErrSearchCancelled))
	is.Equal(g.Threshold(), 10.0)
}

func TestGuardContext(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	g := NewGuard(ctx, nil, DefaultTimerThreshold)
	is.NoErr(g.Check())
	cancel()
	err := g.Check()
	is.True(IsCancelled(err))
	is.True(errors.Is(err, context.Canceled))
}

func TestDeadline(t *testing.T) {
	is := is.New(t)
	left := Deadline(time.Now().Add(time.Hour))()
	is.True(left > 59*60*1000)
	is.True(Deadline(time.Now().Add(-time.Second))() < 0)
}
