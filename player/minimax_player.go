package player

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/equity"
	"github.com/domino14/isolation/search"
	"github.com/domino14/isolation/search/minimax"
)

// MinimaxPlayer searches to a fixed depth.
type MinimaxPlayer struct {
	settings Settings
	solver   *minimax.Solver
}

func NewMinimaxPlayer(eval equity.Evaluator, settings Settings) *MinimaxPlayer {
	s := minimax.NewSolver(eval)
	if c := settings.evalCache(); c != nil {
		s.SetEvalCache(c)
	}
	return &MinimaxPlayer{settings: settings, solver: s}
}

// SelectMove runs the fixed-depth search. If the clock runs out first
// there is no partial answer, so the first legal move is played.
func (p *MinimaxPlayer) SelectMove(ctx context.Context, b *board.Board, timeLeft search.TimeLeftFunc) (board.Move, error) {
	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return board.NoMove, nil
	}
	fallback := moves[0]
	g := search.NewGuard(ctx, timeLeft, p.settings.TimerThreshold)
	m, err := p.solver.Decide(g, b, p.settings.SearchDepth)
	if err != nil {
		if search.IsCancelled(err) {
			log.Debug().Int("depth", p.settings.SearchDepth).
				Str("fallback", fallback.String()).Msg("minimax-search-cancelled")
			return fallback, nil
		}
		return board.NoMove, err
	}
	return m, nil
}
