// Package alphabeta is a minimax search with alpha-beta pruning, run with
// iterative deepening until the time budget is spent.
package alphabeta

import (
	"math"
	"sync/atomic"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/equity"
	"github.com/domino14/isolation/search"
	"github.com/domino14/isolation/search/evalcache"
	"github.com/domino14/isolation/zobrist"
)

// thanks AIMA:
/*
function ALPHA-BETA-SEARCH(state) returns an action
    v ← MAX-VALUE(state, −∞, +∞)
    return the action in ACTIONS(state) with value v

function MAX-VALUE(state, α, β) returns a utility value
    if TERMINAL-TEST(state) the return UTILITY(state)
    v ← −∞
    for each a in ACTIONS(state) do
        v ← MAX(v, MIN-VALUE(RESULT(state, a), α, β))
        if v ≥ β then return v
        α ← MAX(α, v)
    return v
**/

// Solver runs one search at a time; it is not safe for concurrent use.
type Solver struct {
	eval  equity.Evaluator
	cache *evalcache.Cache

	guard     *search.Guard
	maximizer board.Player
	// set only while an eval cache is in use.
	zobrist *zobrist.Zobrist
	// visit sees every node that passed the guard, with its key.
	visit func(b *board.Board, key uint64)

	// maxDepth caps iterative deepening. 0 means only the clock stops it.
	maxDepth         int
	openingBookOptim bool

	nodes  atomic.Uint64
	leaves atomic.Uint64
}

func NewSolver(eval equity.Evaluator) *Solver {
	return &Solver{eval: eval, openingBookOptim: true}
}

func (s *Solver) SetEvalCache(c *evalcache.Cache) {
	s.cache = c
}

func (s *Solver) SetMaxDepth(d int) {
	s.maxDepth = d
}

func (s *Solver) SetOpeningBook(ob bool) {
	s.openingBookOptim = ob
}

// Search is a depth-limited alpha-beta search from b for the player on
// turn. It returns the best move and its value, or board.NoMove if there
// is nothing to play.
func (s *Solver) Search(g *search.Guard, b *board.Board, depth int) (board.Move, float64, error) {
	s.guard = g
	s.maximizer = b.ActivePlayer()
	return s.search(b, depth, s.rootKey(b))
}

// rootKey hashes the root once; children get their keys from AddMove.
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

func (s *Solver) search(b *board.Board, depth int, key uint64) (board.Move, float64, error) {
	if err := s.guard.Check(); err != nil {
		return board.NoMove, 0, err
	}
	s.nodes.Add(1)
	if s.visit != nil {
		s.visit(b, key)
	}
	moves := b.ActiveMoves()
	if len(moves) == 0 {
		return board.NoMove, math.Inf(-1), nil
	}
	α := math.Inf(-1)
	β := math.Inf(1)
	bestMove := moves[0]
	bestScore := math.Inf(-1)
	for _, m := range moves {
		child, err := b.Forecast(m)
		if err != nil {
			return board.NoMove, 0, err
		}
		score, err := s.value(child, depth-1, α, β, s.childKey(key, b, m))
		if err != nil {
			return board.NoMove, 0, err
		}
		if score > bestScore {
			bestScore = score
			bestMove = m
		}
		// No cutoff at the root; every move has to be compared.
		α = math.Max(α, bestScore)
	}
	return bestMove, bestScore, nil
}

// value picks the side by who is on turn in b.
func (s *Solver) value(b *board.Board, depth int, α, β float64, key uint64) (float64, error) {
	if b.ActivePlayer() == s.maximizer {
		return s.maxValue(b, depth, α, β, key)
	}
	return s.minValue(b, depth, α, β, key)
}

func (s *Solver) maxValue(b *board.Board, depth int, α, β float64, key uint64) (float64, error) {
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
		v, err := s.value(child, depth-1, α, β, s.childKey(key, b, m))
		if err != nil {
			return 0, err
		}
		best = math.Max(best, v)
		if best >= β {
			return best, nil // beta cut-off
		}
		α = math.Max(α, best)
	}
	return best, nil
}

func (s *Solver) minValue(b *board.Board, depth int, α, β float64, key uint64) (float64, error) {
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
		v, err := s.value(child, depth-1, α, β, s.childKey(key, b, m))
		if err != nil {
			return 0, err
		}
		best = math.Min(best, v)
		if best <= α {
			return best, nil // alpha cut-off
		}
		β = math.Min(β, best)
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
