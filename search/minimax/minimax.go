// Package minimax is a fixed-depth minimax search.
package minimax

import (
	"math"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/equity"
	"github.com/domino14/isolation/search"
	"github.com/domino14/isolation/search/evalcache"
	"github.com/domino14/isolation/zobrist"
)

const DefaultSearchDepth = 3

// Solver runs one search at a time; it is not safe for concurrent use.
type Solver struct {
	eval  equity.Evaluator
	cache *evalcache.Cache

	guard *search.Guard
	// the player we are choosing a move for.
	maximizer board.Player
	// set only while an eval cache is in use.
	zobrist *zobrist.Zobrist
	// visit sees every node that passed the guard, with its key.
	visit func(b *board.Board, key uint64)

	nodes  atomic.Uint64
	leaves atomic.Uint64
}

func NewSolver(eval equity.Evaluator) *Solver {
	return &Solver{eval: eval}
}

func (s *Solver) SetEvalCache(c *evalcache.Cache) {
	s.cache = c
}

// Decide returns the best move for the player on turn, searching depth
// plies. It returns board.NoMove if there is no legal move. If the guard
// trips, the returned error wraps search.ErrSearchCancelled and the move
// is meaningless; a partial minimax has no valid answer.
func (s *Solver) Decide(g *search.Guard, b *board.Board, depth int) (board.Move, error) {
	if err := g.Check(); err != nil {
		return board.NoMove, err
	}
	s.guard = g
	s.maximizer = b.ActivePlayer()
	s.nodes.Store(1)
	s.leaves.Store(0)
	key := s.rootKey(b)

	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return board.NoMove, nil
	}
	bestMove := moves[0]
	bestScore := math.Inf(-1)
	for _, m := range moves {
		child, err := b.Forecast(m)
		if err != nil {
			return board.NoMove, err
		}
		score, err := s.value(child, depth-1, s.childKey(key, b, m))
		if err != nil {
			return board.NoMove, err
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
	}
	log.Debug().Int("depth", depth).Str("move", bestMove.String()).
		Float64("score", bestScore).Uint64("nodes", s.nodes.Load()).
		Msg("minimax-decided")
	return bestMove, nil
}

func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

func (s *Solver) rootKey(b *board.Board) uint64 {
	s.zobrist = nil
	if s.cache == nil {
		return 0
	}
	s.zobrist = s.cache.Zobrist(b)
	return s.zobrist.Hash(b)
}

func (s *Solver) childKey(key uint64, b *board.Board, m board.Move) uint64 {
	if s.zobrist == nil {
		return 0
	}
	return s.zobrist.AddMove(key, b, m)
}

// value picks the side by who is on turn in b, not by depth parity.
func (s *Solver) value(b *board.Board, depth int, key uint64) (float64, error) {
	if b.ActivePlayer() == s.maximizer {
		return s.maxValue(b, depth, key)
	}
	return s.minValue(b, depth, key)
}

func (s *Solver) maxValue(b *board.Board, depth int, key uint64) (float64, error) {
	if err := s.guard.Check(); err != nil {
		return 0, err
	}
	s.nodes.Add(1)
	if s.visit != nil {
		s.visit(b, key)
	}
	moves := b.ActiveMoves()
	if len(moves) == 0 || depth <= 0 {
		return s.leaf(b, key), nil
	}
	best := math.Inf(-1)
	for _, m := range moves {
		child, err := b.Forecast(m)
		if err != nil {
			return 0, err
		}
		v, err := s.value(child, depth-1, s.childKey(key, b, m))
		if err != nil {
			return 0, err
		}
		best = math.Max(best, v)
	}
	return best, nil
}

func (s *Solver) minValue(b *board.Board, depth int, key uint64) (float64, error) {
	if err := s.guard.Check(); err != nil {
		return 0, err
	}
	s.nodes.Add(1)
	if s.visit != nil {
		s.visit(b, key)
	}
	moves := b.ActiveMoves()
	if len(moves) == 0 || depth <= 0 {
		return s.leaf(b, key), nil
	}
	best := math.Inf(1)
	for _, m := range moves {
		child, err := b.Forecast(m)
		if err != nil {
			return 0, err
		}
		v, err := s.value(child, depth-1, s.childKey(key, b, m))
		if err != nil {
			return 0, err
		}
		best = math.Min(best, v)
	}
	return best, nil
}

func (s *Solver) leaf(b *board.Board, key uint64) float64 {
	s.leaves.Add(1)
	if s.zobrist != nil {
		return s.cache.Score(s.eval, b, key, s.maximizer)
	}
	return s.eval.Score(b, s.maximizer)
}

// Value is the minimax value of b for the player on turn, searching depth
// plies. It is exported for comparing engines.
func (s *Solver) Value(g *search.Guard, b *board.Board, depth int) (float64, error) {
	s.guard = g
	s.maximizer = b.ActivePlayer()
	return s.maxValue(b, depth, s.rootKey(b))
}
