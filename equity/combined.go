package equity

import (
	"github.com/samber/lo"

	"github.com/domino14/isolation/board"
)

type WeightedTerm struct {
	Weight float64
	Term   Evaluator
}

// Combined is a weighted sum of terms. The terms are only consulted on
// undecided boards; a decided board scores its utility.
type Combined struct {
	Terms []WeightedTerm
}

func (c *Combined) Score(b *board.Board, p board.Player) float64 {
	if u, ok := terminalValue(b, p); ok {
		return u
	}
	return lo.SumBy(c.Terms, func(t WeightedTerm) float64 {
		return t.Weight * t.Term.Score(b, p)
	})
}
