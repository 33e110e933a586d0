// Package evalcache memoizes leaf evaluations by zobrist key. It is only
// valid for evaluators that are pure functions of the board.
package evalcache

import (
	"math"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/equity"
	"github.com/domino14/isolation/zobrist"
)

const entrySize = 16

const (
	minSizePowerOf2 = 12
	maxSizePowerOf2 = 22
)

// 16 bytes (entrySize)
type entry struct {
	key   uint64
	score float64
}

type Cache struct {
	table        []entry
	sizePowerOf2 int
	sizeMask     uint64
	created      atomic.Uint64
	lookups      atomic.Uint64
	hits         atomic.Uint64
	// two positions landing in the same bucket.
	collisions atomic.Uint64

	zobrist *zobrist.Zobrist
}

// New makes a cache using roughly fractionOfMemory of the system memory.
func New(fractionOfMemory float64) *Cache {
	c := &Cache{}
	c.Reset(fractionOfMemory)
	return c
}

func (c *Cache) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desiredNElems := fractionOfMemory * (float64(totalMem) / float64(entrySize))
	// find biggest power of 2 lower than desired.
	c.sizePowerOf2 = int(math.Log2(desiredNElems))
	if desiredNElems < 1 || c.sizePowerOf2 < minSizePowerOf2 {
		c.sizePowerOf2 = minSizePowerOf2
	}
	if c.sizePowerOf2 > maxSizePowerOf2 {
		c.sizePowerOf2 = maxSizePowerOf2
	}
	numElems := 1 << c.sizePowerOf2
	c.sizeMask = uint64(numElems - 1)
	reset := false
	if c.table != nil && len(c.table) == numElems {
		reset = true
		clear(c.table)
	} else {
		c.table = make([]entry, numElems)
	}

	log.Debug().Int("num-elems", numElems).
		Float64("desired-num-elems", desiredNElems).
		Int("estimated-total-memory-bytes", numElems*entrySize).
		Uint64("total-system-memory-bytes", totalMem).
		Bool("reset", reset).
		Msg("eval-cache-size")

	c.created.Store(0)
	c.lookups.Store(0)
	c.hits.Store(0)
	c.collisions.Store(0)
}

func (c *Cache) lookup(key uint64) (float64, bool) {
	c.lookups.Add(1)
	e := c.table[key&c.sizeMask]
	if e.key != key {
		if e.key != 0 {
			c.collisions.Add(1)
		}
		return 0, false
	}
	c.hits.Add(1)
	return e.score, true
}

func (c *Cache) store(key uint64, score float64) {
	// just overwrite whatever is there for now.
	c.table[key&c.sizeMask] = entry{key: key, score: score}
	c.created.Add(1)
}

// Zobrist returns the hasher for positions of b's size. Keys passed to
// Score must come from it. A board of a new size starts a fresh table.
func (c *Cache) Zobrist(b *board.Board) *zobrist.Zobrist {
	if c.zobrist == nil || !c.zobrist.Fits(b) {
		log.Debug().Int("height", b.Height()).Int("width", b.Width()).Msg("creating zobrist hash")
		c.zobrist = &zobrist.Zobrist{}
		c.zobrist.Initialize(b.Height(), b.Width())
		clear(c.table)
	}
	return c.zobrist
}

// Score returns eval's score of b for p, computing it only on a miss.
// posKey is the zobrist hash of b, usually carried down the search with
// AddMove rather than recomputed.
func (c *Cache) Score(eval equity.Evaluator, b *board.Board, posKey uint64, p board.Player) float64 {
	key := posKey ^ c.zobrist.PlayerKey(p)
	if key == 0 {
		return eval.Score(b, p)
	}
	if score, ok := c.lookup(key); ok {
		return score
	}
	score := eval.Score(b, p)
	c.store(key, score)
	return score
}

func (c *Cache) Hits() uint64    { return c.hits.Load() }
func (c *Cache) Lookups() uint64 { return c.lookups.Load() }
