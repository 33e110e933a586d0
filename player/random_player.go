package player

import (
	"context"
	"math/rand/v2"

	"lukechampine.com/frand"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/search"
)

// RandomPlayer plays any legal move. It is a baseline to measure the
// searching players against.
type RandomPlayer struct {
	rng *rand.Rand
}

// NewRandomPlayer seeds the player; seed 0 picks a random seed.
func NewRandomPlayer(seed uint64) *RandomPlayer {
	if seed == 0 {
		seed = frand.Uint64n(1<<63-1) + 1
	}
	return &RandomPlayer{rng: rand.New(rand.NewPCG(seed, seed))}
}

func (p *RandomPlayer) SelectMove(ctx context.Context, b *board.Board, timeLeft search.TimeLeftFunc) (board.Move, error) {
	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return board.NoMove, nil
	}
	return moves[p.rng.IntN(len(moves))], nil
}
