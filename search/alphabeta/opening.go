package alphabeta

import (
	"github.com/domino14/isolation/board"
)

// OpeningMove is a tiny opening book for each player's first move: take
// the center if it is open, otherwise sit next to the opponent, trying
// the cell below it and then the one to its right. ok is false if the
// book has nothing to say.
func OpeningMove(b *board.Board) (board.Move, bool) {
	if b.MoveCount() > 1 {
		return board.NoMove, false
	}
	center := board.Move{Row: (b.Height() - 1) / 2, Col: (b.Width() - 1) / 2}
	if b.MoveIsLegal(center) {
		return center, true
	}
	opp := b.Location(b.InactivePlayer())
	if opp == board.NoMove {
		return board.NoMove, false
	}
	for _, m := range []board.Move{
		{Row: opp.Row + 1, Col: opp.Col},
		{Row: opp.Row, Col: opp.Col + 1},
	} {
		if b.MoveIsLegal(m) {
			return m, true
		}
	}
	return board.NoMove, false
}
