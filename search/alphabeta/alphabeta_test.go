package alphabeta

import (
	"context"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/equity"
	"github.com/domino14/isolation/search"
	"github.com/domino14/isolation/search/evalcache"
	"github.com/domino14/isolation/search/minimax"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func unlimitedGuard() *search.Guard {
	return search.NewGuard(context.Background(), search.Unlimited(), search.DefaultTimerThreshold)
}

// countdown allows n guard checks and then reports the clock as expired.
func countdown(n int) search.TimeLeftFunc {
	calls := 0
	return func() float64 {
		calls++
		if calls > n {
			return 0
		}
		return 1000
	}
}

func playOut(t *testing.T, height, width int, moves ...board.Move) *board.Board {
	b, err := board.New(height, width)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range moves {
		if err := b.Apply(m); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

// scriptedBoard plays a deterministic but irregular sequence of moves.
func scriptedBoard(t *testing.T, plies int) *board.Board {
	b := playOut(t, 7, 7)
	for i := 0; i < plies; i++ {
		moves := b.ActiveMoves()
		if len(moves) == 0 {
			break
		}
		if err := b.Apply(moves[(i*7+3)%len(moves)]); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

var panicEval = equity.EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
	panic("evaluator should not be called")
})

func TestSingleMoveShortcut(t *testing.T) {
	is := is.New(t)
	// 1x4 strip: player 1 on the left edge, player 2 on column 2.
	// Player 1 can only go to (0,1).
	b := playOut(t, 1, 4, board.Move{Row: 0, Col: 0}, board.Move{Row: 0, Col: 2})
	s := NewSolver(panicEval)
	guardCalls := 0
	g := search.NewGuard(context.Background(), func() float64 {
		guardCalls++
		return 1000
	}, 10)
	m, stats, err := s.Decide(g, b)
	is.NoErr(err)
	is.Equal(m, board.Move{Row: 0, Col: 1})
	is.Equal(guardCalls, 0)
	is.Equal(stats.Nodes, uint64(0))
}

func TestNoMoveSentinel(t *testing.T) {
	is := is.New(t)
	b := playOut(t, 1, 3, board.Move{Row: 0, Col: 0}, board.Move{Row: 0, Col: 1})
	s := NewSolver(panicEval)
	m, _, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.Equal(m, board.NoMove)

	m, _, err = s.Search(unlimitedGuard(), b, 3)
	is.NoErr(err)
	is.Equal(m, board.NoMove)
}

func TestOpeningBookCenter(t *testing.T) {
	is := is.New(t)
	s := NewSolver(panicEval)
	b := playOut(t, 7, 7)
	m, stats, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.Equal(m, board.Move{Row: 3, Col: 3})
	is.True(stats.OpeningBook)

	is.NoErr(b.Apply(m))
	m, _, err = s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.Equal(m, board.Move{Row: 4, Col: 3})

	// even-sized boards round the center up and to the left.
	m, ok := OpeningMove(playOut(t, 6, 8))
	is.True(ok)
	is.Equal(m, board.Move{Row: 2, Col: 3})
}

func TestOpeningBookNextToOpponent(t *testing.T) {
	is := is.New(t)
	// Player 1 opened in the corner; the center is still open, so take it.
	m, ok := OpeningMove(playOut(t, 7, 7, board.Move{Row: 6, Col: 0}))
	is.True(ok)
	is.Equal(m, board.Move{Row: 3, Col: 3})

	b, err := board.New(7, 7, board.Move{Row: 4, Col: 3})
	is.NoErr(err)
	is.NoErr(b.Apply(board.Move{Row: 3, Col: 3}))
	// below is blocked, so go right.
	m, ok = OpeningMove(b)
	is.True(ok)
	is.Equal(m, board.Move{Row: 3, Col: 4})

	// opponent in the bottom-right corner with the center taken: neither
	// neighbour exists.
	b, err = board.New(7, 7, board.Move{Row: 3, Col: 3})
	is.NoErr(err)
	is.NoErr(b.Apply(board.Move{Row: 6, Col: 6}))
	_, ok = OpeningMove(b)
	is.True(!ok)

	// the first mover with a blocked center has no opponent to sit by.
	b, err = board.New(7, 7, board.Move{Row: 3, Col: 3})
	is.NoErr(err)
	_, ok = OpeningMove(b)
	is.True(!ok)

	// past the first two plies the book is closed.
	_, ok = OpeningMove(playOut(t, 7, 7, board.Move{Row: 0, Col: 0}, board.Move{Row: 6, Col: 6}))
	is.True(!ok)
}

func TestFindsForcedWin(t *testing.T) {
	is := is.New(t)
	b := playOut(t, 1, 5, board.Move{Row: 0, Col: 0}, board.Move{Row: 0, Col: 3})
	s := NewSolver(equity.Null)
	m, stats, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.Equal(m, board.Move{Row: 0, Col: 2})
	// three open cells, so three plies settle the game.
	is.Equal(stats.CompletedDepth, 3)
	is.True(!stats.Cancelled)
}

func TestMatchesMinimax(t *testing.T) {
	is := is.New(t)
	for _, plies := range []int{2, 5, 9, 14} {
		b := scriptedBoard(t, plies)
		for depth := 1; depth <= 3; depth++ {
			mm := minimax.NewSolver(equity.Improved)
			mmMove, err := mm.Decide(unlimitedGuard(), b, depth)
			is.NoErr(err)
			mmValue, err := mm.Value(unlimitedGuard(), b, depth)
			is.NoErr(err)

			ab := NewSolver(equity.Improved)
			abMove, abValue, err := ab.Search(unlimitedGuard(), b, depth)
			is.NoErr(err)
			is.Equal(abValue, mmValue)
			is.Equal(abMove, mmMove)
		}
	}
}

func TestPruningDoesLessWork(t *testing.T) {
	is := is.New(t)
	b := scriptedBoard(t, 4)
	mm := minimax.NewSolver(equity.Improved)
	_, err := mm.Decide(unlimitedGuard(), b, 3)
	is.NoErr(err)

	ab := NewSolver(equity.Improved)
	_, _, err = ab.Search(unlimitedGuard(), b, 3)
	is.NoErr(err)
	is.True(ab.nodes.Load() < mm.Nodes())
}

func TestCancelledBeforeFirstDepthReturnsFirstMove(t *testing.T) {
	is := is.New(t)
	b := scriptedBoard(t, 4)
	s := NewSolver(equity.Improved)
	m, stats, err := s.Decide(search.NewGuard(context.Background(), countdown(3), 10), b)
	is.NoErr(err)
	is.Equal(m, b.ActiveMoves()[0])
	is.True(stats.Cancelled)
	is.Equal(stats.CompletedDepth, 0)
}

func TestKeepsLastCompletedDepth(t *testing.T) {
	is := is.New(t)
	b := scriptedBoard(t, 6)

	probe := NewSolver(equity.Aggressive)
	depth1Move, _, err := probe.Search(unlimitedGuard(), b, 1)
	is.NoErr(err)
	depth1Nodes := int(probe.nodes.Load())

	s := NewSolver(equity.Aggressive)
	m, stats, err := s.Decide(search.NewGuard(context.Background(), countdown(depth1Nodes+5), 10), b)
	is.NoErr(err)
	is.Equal(m, depth1Move)
	is.Equal(stats.CompletedDepth, 1)
	is.True(stats.Cancelled)
}

func TestMaxDepth(t *testing.T) {
	is := is.New(t)
	b := scriptedBoard(t, 6)
	s := NewSolver(equity.Improved)
	s.SetMaxDepth(2)
	m, stats, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.Equal(stats.CompletedDepth, 2)
	is.True(b.MoveIsLegal(m))

	expected, _, err := NewSolver(equity.Improved).Search(unlimitedGuard(), b, 2)
	is.NoErr(err)
	is.Equal(m, expected)
}

func TestContextCancellation(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b := scriptedBoard(t, 4)
	m, stats, err := NewSolver(equity.Improved).Decide(
		search.NewGuard(ctx, search.Unlimited(), 10), b)
	is.NoErr(err)
	is.Equal(m, b.ActiveMoves()[0])
	is.True(stats.Cancelled)
}

func TestEvalCacheSameDecision(t *testing.T) {
	is := is.New(t)
	b := scriptedBoard(t, 5)
	s := NewSolver(equity.Weighted)
	s.SetMaxDepth(3)
	plain, _, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)

	c := evalcache.New(0)
	s.SetEvalCache(c)
	cached, _, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.Equal(plain, cached)
	is.Equal(c.Hits(), uint64(0))

	// the same position again is served from the cache.
	again, _, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.Equal(again, plain)
	is.True(c.Hits() > 0)
}

func TestDeterministic(t *testing.T) {
	is := is.New(t)
	b := scriptedBoard(t, 8)
	s := NewSolver(equity.Aggressive)
	s.SetMaxDepth(4)
	first, _, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	for i := 0; i < 3; i++ {
		m, _, err := s.Decide(unlimitedGuard(), b)
		is.NoErr(err)
		is.Equal(m, first)
	}
}

func TestKeysFollowHash(t *testing.T) {
	is := is.New(t)
	b := scriptedBoard(t, 5)
	s := NewSolver(equity.Improved)
	s.SetMaxDepth(3)
	c := evalcache.New(0)
	s.SetEvalCache(c)
	z := c.Zobrist(b)
	visited := 0
	s.visit = func(n *board.Board, key uint64) {
		visited++
		if key != z.Hash(n) {
			t.Errorf("key %x for a node at move %d, want %x", key, n.MoveCount(), z.Hash(n))
		}
	}
	_, stats, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.Equal(stats.CompletedDepth, 3)
	is.Equal(uint64(visited), stats.Nodes)
	is.True(c.Lookups() > 0)
}

func TestNoLeafScoredAfterTimeout(t *testing.T) {
	is := is.New(t)
	expired := false
	calls := 0
	budget := countdown(300)
	timeLeft := func() float64 {
		calls++
		left := budget()
		if left == 0 {
			expired = true
		}
		return left
	}
	eval := equity.EvaluatorFunc(func(b *board.Board, p board.Player) float64 {
		if expired {
			t.Error("scored a leaf after the time budget ran out")
		}
		return equity.Improved.Score(b, p)
	})
	b := scriptedBoard(t, 4)
	s := NewSolver(eval)
	m, stats, err := s.Decide(search.NewGuard(context.Background(), timeLeft, 10), b)
	is.NoErr(err)
	is.True(expired)
	is.True(stats.Cancelled)
	is.True(b.MoveIsLegal(m))
	// every frame but the one that saw the expired clock was counted.
	is.Equal(stats.Nodes, uint64(calls-1))
}

func TestOpeningBookOff(t *testing.T) {
	is := is.New(t)
	b := playOut(t, 5, 5)
	s := NewSolver(equity.Improved)
	s.SetOpeningBook(false)
	s.SetMaxDepth(1)
	m, stats, err := s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.True(!stats.OpeningBook)
	is.Equal(stats.CompletedDepth, 1)
	is.True(b.MoveIsLegal(m))

	s.SetOpeningBook(true)
	m, stats, err = s.Decide(unlimitedGuard(), b)
	is.NoErr(err)
	is.True(stats.OpeningBook)
	is.Equal(m, board.Move{Row: 2, Col: 2})
}
