package player

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/isolation/config"
	"github.com/domino14/isolation/equity"
	"github.com/domino14/isolation/search"
	"github.com/domino14/isolation/search/evalcache"
	"github.com/domino14/isolation/search/minimax"
)

const (
	AlphaBetaPlayerName = "alphabeta"
	MinimaxPlayerName   = "minimax"
	RandomPlayerName    = "random"
)

type Settings struct {
	// SearchDepth is the fixed depth of the minimax player.
	SearchDepth int
	// TimerThreshold is how many milliseconds must be left for a search
	// frame to keep going.
	TimerThreshold float64
	// MaxDepth caps iterative deepening; 0 leaves it to the clock.
	MaxDepth          int
	OpeningBook       bool
	EvalCache         bool
	EvalCacheFraction float64
	Seed              uint64
}

func DefaultSettings() Settings {
	return Settings{
		SearchDepth:       minimax.DefaultSearchDepth,
		TimerThreshold:    search.DefaultTimerThreshold,
		OpeningBook:       true,
		EvalCacheFraction: 0.01,
	}
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		SearchDepth:       cfg.GetInt(config.ConfigSearchDepth),
		TimerThreshold:    cfg.GetFloat64(config.ConfigTimerThreshold),
		MaxDepth:          cfg.GetInt(config.ConfigMaxDepth),
		OpeningBook:       cfg.GetBool(config.ConfigOpeningBook),
		EvalCache:         cfg.GetBool(config.ConfigEvalCache),
		EvalCacheFraction: cfg.GetFloat64(config.ConfigEvalCacheFraction),
		Seed:              cfg.GetUint64(config.ConfigSeed),
	}
}

func (s Settings) evalCache() *evalcache.Cache {
	if !s.EvalCache {
		return nil
	}
	return evalcache.New(s.EvalCacheFraction)
}

// New builds a player by name. eval is ignored by the random player.
func New(name string, eval equity.Evaluator, settings Settings) (Player, error) {
	switch strings.ToLower(name) {
	case AlphaBetaPlayerName:
		return NewAlphaBetaPlayer(eval, settings), nil
	case MinimaxPlayerName:
		return NewMinimaxPlayer(eval, settings), nil
	case RandomPlayerName:
		return NewRandomPlayer(settings.Seed), nil
	}
	log.Error().Str("name", name).Msg("unknown-player-type")
	return nil, fmt.Errorf("unknown player type %q", name)
}
