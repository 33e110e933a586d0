package player

import (
	"context"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/equity"
	"github.com/domino14/isolation/search"
	"github.com/domino14/isolation/search/alphabeta"
)

// AlphaBetaPlayer deepens an alpha-beta search until its time is up.
type AlphaBetaPlayer struct {
	settings  Settings
	solver    *alphabeta.Solver
	lastStats search.Stats
}

func NewAlphaBetaPlayer(eval equity.Evaluator, settings Settings) *AlphaBetaPlayer {
	s := alphabeta.NewSolver(eval)
	s.SetMaxDepth(settings.MaxDepth)
	s.SetOpeningBook(settings.OpeningBook)
	if c := settings.evalCache(); c != nil {
		s.SetEvalCache(c)
	}
	return &AlphaBetaPlayer{settings: settings, solver: s}
}

func (p *AlphaBetaPlayer) SelectMove(ctx context.Context, b *board.Board, timeLeft search.TimeLeftFunc) (board.Move, error) {
	g := search.NewGuard(ctx, timeLeft, p.settings.TimerThreshold)
	m, stats, err := p.solver.Decide(g, b)
	p.lastStats = stats
	return m, err
}

func (p *AlphaBetaPlayer) LastStats() search.Stats {
	return p.lastStats
}
