package alphabeta

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/search"
)

// Decide picks a move for the player on turn within the guard's budget.
// Cancellation is handled here: the move from the deepest completed
// search is returned, or the first legal move if not even depth 1
// finished. board.NoMove is only returned when there is no legal move.
// Any error returned is a real failure, never a cancellation.
func (s *Solver) Decide(g *search.Guard, b *board.Board) (board.Move, search.Stats, error) {
	s.guard = g
	s.maximizer = b.ActivePlayer()
	s.nodes.Store(0)
	s.leaves.Store(0)
	stats := search.Stats{}

	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return board.NoMove, stats, nil
	}
	if len(moves) == 1 {
		return moves[0], stats, nil
	}
	if s.openingBookOptim {
		if m, ok := OpeningMove(b); ok {
			log.Debug().Str("move", m.String()).Int("move-count", b.MoveCount()).Msg("opening-book")
			stats.OpeningBook = true
			return m, stats, nil
		}
	}

	var bestMove board.Move
	var err error
	key := s.rootKey(b)
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		bestMove, err = s.deepenWithTicker(b, key, moves[0], &stats)
	} else {
		bestMove, err = s.iterativelyDeepen(b, key, moves[0], &stats)
	}
	stats.Nodes = s.nodes.Load()
	stats.Leaves = s.leaves.Load()
	log.Debug().Object("stats", stats).Str("move", bestMove.String()).Msg("decide-returning")
	return bestMove, stats, err
}

// deepenWithTicker reports nodes per second while the search runs. The
// search itself stays on the calling goroutine.
func (s *Solver) deepenWithTicker(b *board.Board, key uint64, fallback board.Move, stats *search.Stats) (board.Move, error) {
	g := &errgroup.Group{}
	done := make(chan struct{})
	g.Go(func() error {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		var lastNodes uint64
		for {
			select {
			case <-done:
				return nil
			case <-ticker.C:
				nodes := s.nodes.Load()
				log.Debug().Uint64("nodes-per-tick", nodes-lastNodes).Msg("search-progress")
				lastNodes = nodes
			}
		}
	})
	m, err := s.iterativelyDeepen(b, key, fallback, stats)
	close(done)
	if werr := g.Wait(); werr != nil && err == nil {
		err = werr
	}
	return m, err
}

func (s *Solver) iterativelyDeepen(b *board.Board, key uint64, fallback board.Move, stats *search.Stats) (board.Move, error) {
	bestMove := fallback
	// Each ply fills one open cell, so past this depth every line has
	// already hit the end of the game and a deeper pass changes nothing.
	resolvedDepth := b.NumBlank()
	for depth := 1; ; depth++ {
		if s.maxDepth > 0 && depth > s.maxDepth {
			break
		}
		log.Debug().Int("plies", depth).Msg("deepening-iteratively")
		m, v, err := s.search(b, depth, key)
		if err != nil {
			if search.IsCancelled(err) {
				log.Debug().Int("plies", depth).Str("move", bestMove.String()).
					Float64("threshold-ms", s.guard.Threshold()).Msg("search-cancelled")
				stats.Cancelled = true
				break
			}
			return bestMove, err
		}
		if m == board.NoMove {
			break
		}
		bestMove = m
		stats.CompletedDepth = depth
		log.Debug().Float64("value", v).Int("ply", depth).Str("move", m.String()).Msg("best-val")
		if depth >= resolvedDepth {
			break
		}
	}
	return bestMove, nil
}
