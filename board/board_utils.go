package board

import (
	"fmt"
	"strconv"
	"strings"
)

// ToDisplayText draws the board. Player locations are marked with 1 and
// 2, blocked cells with '-'.
func (b *Board) ToDisplayText() string {
	var str string
	row := "   "
	for j := 0; j < b.width; j++ {
		row = row + fmt.Sprintf("%d", j%10) + " "
	}
	str = str + row + "\n"
	str = str + "   " + strings.Repeat("-", b.width*2) + "\n"
	for i := 0; i < b.height; i++ {
		row := fmt.Sprintf("%2d|", i)
		for j := 0; j < b.width; j++ {
			row = row + b.cellDisplay(i, j) + " "
		}
		row = row + "|"
		str = str + row + "\n"
	}
	str = str + "   " + strings.Repeat("-", b.width*2) + "\n"
	return "\n" + str
}

func (b *Board) cellDisplay(row, col int) string {
	idx := b.index(row, col)
	switch {
	case b.locs[Player1] == idx:
		return "1"
	case b.locs[Player2] == idx:
		return "2"
	case b.isBlocked(idx):
		return "-"
	}
	return "."
}

// ParseMove parses a "row,col" pair such as "3,4".
func ParseMove(s string) (Move, error) {
	fields := strings.Split(strings.Trim(strings.TrimSpace(s), "()"), ",")
	if len(fields) != 2 {
		return NoMove, fmt.Errorf("%w: cannot parse %q", ErrInvalidMove, s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return NoMove, fmt.Errorf("%w: bad row in %q", ErrInvalidMove, s)
	}
	col, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return NoMove, fmt.Errorf("%w: bad column in %q", ErrInvalidMove, s)
	}
	return Move{row, col}, nil
}

// ParseMoves parses a whitespace-separated list of moves.
func ParseMoves(s string) ([]Move, error) {
	var moves []Move
	for _, f := range strings.Fields(s) {
		m, err := ParseMove(f)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}
