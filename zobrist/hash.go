package zobrist

import (
	"lukechampine.com/frand"

	"github.com/domino14/isolation/board"
)

const bignum = 1<<63 - 2

// generate a zobrist hash for an isolation position.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	theirTurn uint64

	blockedTable  []uint64
	locationTable [2][]uint64
	moveCount     []uint64
	playerTable   [2]uint64

	height int
	width  int
}

func (z *Zobrist) Initialize(height, width int) {
	z.height = height
	z.width = width
	n := height * width
	z.blockedTable = make([]uint64, n)
	for i := 0; i < n; i++ {
		z.blockedTable[i] = frand.Uint64n(bignum) + 1
	}
	for p := 0; p < 2; p++ {
		// The last slot stands for "not yet placed".
		z.locationTable[p] = make([]uint64, n+1)
		for i := 0; i <= n; i++ {
			z.locationTable[p][i] = frand.Uint64n(bignum) + 1
		}
		z.playerTable[p] = frand.Uint64n(bignum) + 1
	}
	z.moveCount = make([]uint64, n+1)
	for i := 0; i <= n; i++ {
		z.moveCount[i] = frand.Uint64n(bignum) + 1
	}
	z.theirTurn = frand.Uint64n(bignum) + 1
}

func (z *Zobrist) Height() int { return z.height }
func (z *Zobrist) Width() int  { return z.width }

func (z *Zobrist) Fits(b *board.Board) bool {
	return z.height == b.Height() && z.width == b.Width()
}

func (z *Zobrist) locIndex(b *board.Board, p board.Player) int {
	loc := b.Location(p)
	if loc == board.NoMove {
		return z.height * z.width
	}
	return loc.Row*z.width + loc.Col
}

// Hash computes the key of b from scratch.
func (z *Zobrist) Hash(b *board.Board) uint64 {
	key := uint64(0)
	for r := 0; r < z.height; r++ {
		for c := 0; c < z.width; c++ {
			if b.IsBlocked(r, c) {
				key ^= z.blockedTable[r*z.width+c]
			}
		}
	}
	key ^= z.locationTable[board.Player1][z.locIndex(b, board.Player1)]
	key ^= z.locationTable[board.Player2][z.locIndex(b, board.Player2)]
	if b.ActivePlayer() == board.Player2 {
		key ^= z.theirTurn
	}
	key ^= z.moveCount[b.MoveCount()]
	return key
}

// AddMove updates key, the hash of b, for the player on turn in b playing
// m. b is the position before the move.
func (z *Zobrist) AddMove(key uint64, b *board.Board, m board.Move) uint64 {
	p := b.ActivePlayer()
	idx := m.Row*z.width + m.Col
	key ^= z.blockedTable[idx]
	key ^= z.locationTable[p][z.locIndex(b, p)]
	key ^= z.locationTable[p][idx]
	key ^= z.moveCount[b.MoveCount()]
	key ^= z.moveCount[b.MoveCount()+1]
	key ^= z.theirTurn
	return key
}

// PlayerKey mixes in the perspective a position is scored from.
func (z *Zobrist) PlayerKey(p board.Player) uint64 {
	return z.playerTable[p]
}
