// Package automatic plays a game of isolation between two players, giving
// each a wall-clock budget per turn.
package automatic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/isolation/board"
	"github.com/domino14/isolation/config"
	"github.com/domino14/isolation/equity"
	"github.com/domino14/isolation/player"
	"github.com/domino14/isolation/search"
)

var ErrUnknownPlayer = errors.New("unknown player")

type Reason string

const (
	ReasonNoMoves     Reason = "no-legal-moves"
	ReasonTimeout     Reason = "forfeit-timeout"
	ReasonIllegalMove Reason = "forfeit-illegal-move"
)

// Outcome is how a game ended.
type Outcome struct {
	Winner     board.Player
	WinnerName string
	LoserName  string
	Reason     Reason
	History    []board.Move
	Final      *board.Board
	// Depths holds the completed search depth of every turn that ran an
	// iterative deepening search.
	Depths    [2][]float64
	MeanDepth [2]float64
	StdDepth  [2]float64
}

// GameRunner is the master struct here for the automatic game logic.
type GameRunner struct {
	board     *board.Board
	players   [2]player.Player
	names     [2]string
	timeLimit time.Duration
	history   []board.Move
	logchan   chan string
}

// NewGameRunner builds a board and both players from the config.
func NewGameRunner(logchan chan string, cfg *config.Config) (*GameRunner, error) {
	b, err := board.New(cfg.GetInt(config.ConfigBoardHeight), cfg.GetInt(config.ConfigBoardWidth))
	if err != nil {
		return nil, err
	}
	settings := player.SettingsFromConfig(cfg)
	var players [2]player.Player
	var names [2]string
	for idx, keys := range [2][2]string{
		{config.ConfigPlayer1, config.ConfigHeuristic1},
		{config.ConfigPlayer2, config.ConfigHeuristic2},
	} {
		eval, err := equity.ByName(cfg.GetString(keys[1]))
		if err != nil {
			return nil, err
		}
		players[idx], err = player.New(cfg.GetString(keys[0]), eval, settings)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnknownPlayer, err)
		}
		names[idx] = fmt.Sprintf("%s-%s-%d", cfg.GetString(keys[0]), cfg.GetString(keys[1]), idx+1)
	}
	r := NewGameRunnerWithPlayers(b, names, players,
		time.Duration(cfg.GetInt(config.ConfigTimeLimit))*time.Millisecond)
	r.logchan = logchan
	if opening := cfg.GetString(config.ConfigOpeningMoves); opening != "" {
		moves, err := board.ParseMoves(opening)
		if err != nil {
			return nil, err
		}
		if err := r.ApplyMoves(moves...); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func NewGameRunnerWithPlayers(b *board.Board, names [2]string, players [2]player.Player,
	timeLimit time.Duration) *GameRunner {

	return &GameRunner{board: b, names: names, players: players, timeLimit: timeLimit}
}

// ApplyMoves plays moves on the board before the players take over.
func (r *GameRunner) ApplyMoves(moves ...board.Move) error {
	for _, m := range moves {
		if err := r.board.Apply(m); err != nil {
			return err
		}
		r.history = append(r.history, m)
	}
	return nil
}

func (r *GameRunner) Board() *board.Board {
	return r.board
}

// Play runs the game to the end. A player forfeits by overrunning its
// time or by returning an illegal move.
func (r *GameRunner) Play(ctx context.Context) (*Outcome, error) {
	var depths [2][]float64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		onTurn := r.board.ActivePlayer()
		if r.board.IsTerminalFor(onTurn) {
			return r.finish(onTurn.Opponent(), ReasonNoMoves, depths), nil
		}
		deadline := time.Now().Add(r.timeLimit)
		timeLeft := search.Deadline(deadline)

		m, err := r.players[onTurn].SelectMove(ctx, r.board.Copy(), timeLeft)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.names[onTurn], err)
		}
		left := timeLeft()
		if left < 0 {
			log.Info().Str("player", r.names[onTurn]).Float64("ms-left", left).Msg("turn-forfeited")
			return r.finish(onTurn.Opponent(), ReasonTimeout, depths), nil
		}
		if !r.board.MoveIsLegal(m) {
			log.Info().Str("player", r.names[onTurn]).Str("move", m.String()).Msg("turn-forfeited")
			return r.finish(onTurn.Opponent(), ReasonIllegalMove, depths), nil
		}
		var stats search.Stats
		if sr, ok := r.players[onTurn].(player.StatsReporter); ok {
			stats = sr.LastStats()
			if !stats.OpeningBook && stats.CompletedDepth > 0 {
				depths[onTurn] = append(depths[onTurn], float64(stats.CompletedDepth))
			}
		}
		if err := r.board.Apply(m); err != nil {
			return nil, err
		}
		r.history = append(r.history, m)
		if r.logchan != nil {
			r.logchan <- fmt.Sprintf("%v,%v,%v,%v,%v,%.3f\n",
				r.names[onTurn], len(r.history), m, stats.CompletedDepth, stats.Nodes, left)
		}
	}
}

func (r *GameRunner) finish(winner board.Player, reason Reason, depths [2][]float64) *Outcome {
	o := &Outcome{
		Winner:     winner,
		WinnerName: r.names[winner],
		LoserName:  r.names[winner.Opponent()],
		Reason:     reason,
		History:    lo.Map(r.history, func(m board.Move, _ int) board.Move { return m }),
		Final:      r.board.Copy(),
		Depths:     depths,
	}
	for p := range depths {
		switch {
		case len(depths[p]) == 1:
			o.MeanDepth[p] = depths[p][0]
		case len(depths[p]) > 1:
			o.MeanDepth[p], o.StdDepth[p] = stat.MeanStdDev(depths[p], nil)
		}
	}
	log.Info().Str("winner", o.WinnerName).Str("reason", string(reason)).
		Int("plies", len(o.History)).
		Float64("mean-depth-1", o.MeanDepth[0]).Float64("mean-depth-2", o.MeanDepth[1]).
		Msg("game-over")
	return o
}
