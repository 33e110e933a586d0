// Package player wraps the search engines in the turn-level contract a
// game loop talks to.
package player

import (
	"context"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/search"
)

// Player picks a move for whoever is on turn in b. It must return before
// timeLeft goes negative. It returns board.NoMove only if there is no
// legal move. Running out of time is not an error; an error means the
// search itself is broken.
type Player interface {
	SelectMove(ctx context.Context, b *board.Board, timeLeft search.TimeLeftFunc) (board.Move, error)
}

// StatsReporter is implemented by players that keep search statistics.
type StatsReporter interface {
	LastStats() search.Stats
}
