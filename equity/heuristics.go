package equity

import (
	"fmt"
	"strings"

	"github.com/domino14/isolation/board"
)

const (
	AggressiveName = "aggressive"
	WeightedName   = "weighted"
	NormalizedName = "normalized"
	ImprovedName   = "improved"
	OpenMoveName   = "open"
	CenterName     = "center"
	NullName       = "null"
)

// Aggressive penalizes the opponent's mobility twice as hard as it
// rewards our own.
var Aggressive = EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
	if u, ok := terminalValue(b, p); ok {
		return u
	}
	return mobilityDiff(b, p, 2)
})

// Normalized is the mobility difference divided by the open space left,
// so that the same difference counts for more late in the game.
var Normalized = EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
	if u, ok := terminalValue(b, p); ok {
		return u
	}
	return mobilityDiff(b, p, 1) / float64(b.NumBlank()+1)
})

var Improved = EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
	if u, ok := terminalValue(b, p); ok {
		return u
	}
	return mobilityDiff(b, p, 1)
})

var OpenMove = EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
	if u, ok := terminalValue(b, p); ok {
		return u
	}
	return float64(len(b.LegalMoves(p)))
})

// Center is the squared distance of p from the middle of the board.
var Center = EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
	if u, ok := terminalValue(b, p); ok {
		return u
	}
	loc := b.Location(p)
	if loc == board.NoMove {
		return 0
	}
	dr := float64(loc.Row) - float64(b.Height()-1)/2
	dc := float64(loc.Col) - float64(b.Width()-1)/2
	return dr*dr + dc*dc
})

var Null = EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
	if u, ok := terminalValue(b, p); ok {
		return u
	}
	return 0
})

// Weighted blends Aggressive with a term that grows as the game goes on.
var Weighted = &Combined{
	Terms: []WeightedTerm{
		{Weight: 0.9, Term: EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
			return mobilityDiff(b, p, 2)
		})},
		{Weight: 0.1, Term: EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
			return float64(b.NumBlank() * b.MoveCount())
		})},
	},
}

func mobilityDiff(b *board.Board, p board.Player, oppFactor float64) float64 {
	own := len(b.LegalMoves(p))
	opp := len(b.LegalMoves(p.Opponent()))
	return float64(own) - oppFactor*float64(opp)
}

// ByName looks up one of the reference heuristics.
func ByName(name string) (Evaluator, error) {
	switch strings.ToLower(name) {
	case AggressiveName:
		return Aggressive, nil
	case WeightedName:
		return Weighted, nil
	case NormalizedName:
		return Normalized, nil
	case ImprovedName:
		return Improved, nil
	case OpenMoveName:
		return OpenMove, nil
	case CenterName:
		return Center, nil
	case NullName:
		return Null, nil
	}
	return nil, fmt.Errorf("unknown heuristic %q", name)
}
