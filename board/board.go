// Package board contains the isolation game state that the search engines
// walk over: a grid of open and blocked cells, the two player locations,
// and the player on turn.
package board

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

const (
	DefaultHeight = 7
	DefaultWidth  = 7
)

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrNotTerminal   = errors.New("utility is undefined for a non-terminal board")
	ErrBadDimensions = errors.New("board dimensions must be positive")
)

// Player identifies one of the two sides. Player1 always moves first.
type Player int8

const (
	Player1 Player = 0
	Player2 Player = 1
)

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	if p == Player1 {
		return "player1"
	}
	return "player2"
}

// A Move is the cell a player relocates to.
type Move struct {
	Row int
	Col int
}

// NoMove is returned when the player on turn has nothing to play.
var NoMove = Move{-1, -1}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Row, m.Col)
}

// queen directions, in enumeration order.
var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

const unplaced = -1

// Board is one ply of isolation state. A cell is blocked once any player
// has stood on it, including the cells the players currently occupy, or
// if it was blocked when the board was created. Forecast never touches
// the receiver, so a parent board can be shared by every child the search
// creates from it.
type Board struct {
	height    int
	width     int
	blocked   []uint64
	locs      [2]int
	active    Player
	moveCount int
}

// New creates an empty board. Any cells in blocked start out unavailable.
func New(height, width int, blocked ...Move) (*Board, error) {
	if height <= 0 || width <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, height, width)
	}
	b := &Board{
		height:  height,
		width:   width,
		blocked: make([]uint64, (height*width+63)/64),
		locs:    [2]int{unplaced, unplaced},
		active:  Player1,
	}
	for _, m := range blocked {
		if !b.inBounds(m.Row, m.Col) {
			return nil, fmt.Errorf("%w: blocked cell %v is off the board", ErrInvalidMove, m)
		}
		b.setBlocked(b.index(m.Row, m.Col))
	}
	return b, nil
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	c := *b
	c.blocked = make([]uint64, len(b.blocked))
	copy(c.blocked, b.blocked)
	return &c
}

func (b *Board) Height() int          { return b.height }
func (b *Board) Width() int           { return b.width }
func (b *Board) MoveCount() int       { return b.moveCount }
func (b *Board) ActivePlayer() Player { return b.active }

func (b *Board) InactivePlayer() Player {
	return b.active.Opponent()
}

// Opponent returns the other player. It is here so callers holding a
// board do not need to reach for the Player method.
func (b *Board) Opponent(p Player) Player {
	return p.Opponent()
}

// Location returns where p stands, or NoMove if p has not been placed yet.
func (b *Board) Location(p Player) Move {
	idx := b.locs[p]
	if idx == unplaced {
		return NoMove
	}
	return Move{idx / b.width, idx % b.width}
}

// IsBlocked reports whether the cell cannot be moved to. Cells outside the
// grid count as blocked.
func (b *Board) IsBlocked(row, col int) bool {
	if !b.inBounds(row, col) {
		return true
	}
	return b.isBlocked(b.index(row, col))
}

// NumBlank is the number of cells nobody has occupied.
func (b *Board) NumBlank() int {
	ct := 0
	for _, w := range b.blocked {
		ct += bits.OnesCount64(w)
	}
	return b.height*b.width - ct
}

// BlankSpaces lists the open cells in row-major order.
func (b *Board) BlankSpaces() []Move {
	moves := make([]Move, 0, b.NumBlank())
	for idx := 0; idx < b.height*b.width; idx++ {
		if !b.isBlocked(idx) {
			moves = append(moves, Move{idx / b.width, idx % b.width})
		}
	}
	return moves
}

// LegalMoves returns every move p could make if it were on turn. A player
// that has not been placed may go to any open cell; otherwise it slides
// like a chess queen and stops before the first blocked cell or the edge.
// The order is stable: directions in a fixed order, nearest cell first.
func (b *Board) LegalMoves(p Player) []Move {
	loc := b.locs[p]
	if loc == unplaced {
		return b.BlankSpaces()
	}
	row, col := loc/b.width, loc%b.width
	moves := make([]Move, 0, 16)
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		for b.inBounds(r, c) && !b.isBlocked(b.index(r, c)) {
			moves = append(moves, Move{r, c})
			r += d[0]
			c += d[1]
		}
	}
	return moves
}

// ActiveMoves returns the legal moves of the player on turn.
func (b *Board) ActiveMoves() []Move {
	return b.LegalMoves(b.active)
}

// MoveIsLegal reports whether the player on turn may play m.
func (b *Board) MoveIsLegal(m Move) bool {
	if !b.inBounds(m.Row, m.Col) || b.isBlocked(b.index(m.Row, m.Col)) {
		return false
	}
	loc := b.locs[b.active]
	if loc == unplaced {
		return true
	}
	row, col := loc/b.width, loc%b.width
	dr, dc := m.Row-row, m.Col-col
	if dr != 0 && dc != 0 && abs(dr) != abs(dc) {
		return false
	}
	sr, sc := sign(dr), sign(dc)
	for r, c := row+sr, col+sc; r != m.Row || c != m.Col; r, c = r+sr, c+sc {
		if b.isBlocked(b.index(r, c)) {
			return false
		}
	}
	return true
}

// Apply plays m for the player on turn, modifying the board in place.
func (b *Board) Apply(m Move) error {
	if !b.MoveIsLegal(m) {
		return fmt.Errorf("%w: %v for %v", ErrInvalidMove, m, b.active)
	}
	idx := b.index(m.Row, m.Col)
	b.setBlocked(idx)
	b.locs[b.active] = idx
	b.active = b.active.Opponent()
	b.moveCount++
	return nil
}

// Forecast returns the board that results from the player on turn
// playing m. The receiver is left untouched.
func (b *Board) Forecast(m Move) (*Board, error) {
	c := b.Copy()
	if err := c.Apply(m); err != nil {
		return nil, err
	}
	return c, nil
}

// IsTerminalFor reports whether p has no legal move.
func (b *Board) IsTerminalFor(p Player) bool {
	return !b.hasMove(p)
}

// IsLoser reports whether p has lost. If both players are stuck, the
// player on turn is the one who loses.
func (b *Board) IsLoser(p Player) bool {
	if b.IsTerminalFor(b.active) {
		return p == b.active
	}
	return b.IsTerminalFor(b.active.Opponent()) && p != b.active
}

func (b *Board) IsWinner(p Player) bool {
	return b.IsLoser(p.Opponent())
}

// Utility is +Inf if p has won and -Inf if p has lost. It returns
// ErrNotTerminal when neither side is out of moves.
func (b *Board) Utility(p Player) (float64, error) {
	if b.IsLoser(p) {
		return math.Inf(-1), nil
	}
	if b.IsWinner(p) {
		return math.Inf(1), nil
	}
	return 0, ErrNotTerminal
}

func (b *Board) hasMove(p Player) bool {
	loc := b.locs[p]
	if loc == unplaced {
		return b.NumBlank() > 0
	}
	row, col := loc/b.width, loc%b.width
	for _, d := range directions {
		r, c := row+d[0], col+d[1]
		if b.inBounds(r, c) && !b.isBlocked(b.index(r, c)) {
			return true
		}
	}
	return false
}

func (b *Board) inBounds(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

func (b *Board) index(row, col int) int {
	return row*b.width + col
}

func (b *Board) isBlocked(idx int) bool {
	return b.blocked[idx>>6]&(1<<(idx&63)) != 0
}

func (b *Board) setBlocked(idx int) {
	b.blocked[idx>>6] |= 1 << (idx & 63)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
