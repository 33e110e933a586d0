// Package equity holds the scoring contract the search engines consume,
// plus a handful of reference heuristics.
package equity

import (
	"github.com/domino14/isolation/board"
)

// Evaluator scores a position from the point of view of p. Larger is
// better for p. On a board where either player is out of moves, Score
// must return b.Utility(p).
type Evaluator interface {
	Score(b *board.Board, p board.Player) float64
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(b *board.Board, p board.Player) float64

func (f EvaluatorFunc) Score(b *board.Board, p board.Player) float64 {
	return f(b, p)
}

// terminalValue returns the utility of b for p if the game is decided.
func terminalValue(b *board.Board, p board.Player) (float64, bool) {
	u, err := b.Utility(p)
	if err != nil {
		return 0, false
	}
	return u, true
}
