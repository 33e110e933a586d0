package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigSearchDepth       = "search-depth"
	ConfigTimerThreshold    = "timer-threshold"
	ConfigTimeLimit         = "time-limit"
	ConfigMaxDepth          = "max-depth"
	ConfigOpeningBook       = "opening-book"
	ConfigBoardHeight       = "board-height"
	ConfigBoardWidth        = "board-width"
	ConfigPlayer1           = "player1"
	ConfigPlayer2           = "player2"
	ConfigHeuristic1        = "heuristic1"
	ConfigHeuristic2        = "heuristic2"
	ConfigEvalCache         = "eval-cache"
	ConfigEvalCacheFraction = "eval-cache-fraction"
	ConfigOpeningMoves      = "opening-moves"
	ConfigSeed              = "seed"
	ConfigDebug             = "debug"
)

type Config struct {
	*viper.Viper
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigSearchDepth, 3)
	c.SetDefault(ConfigTimerThreshold, 10.0)
	c.SetDefault(ConfigTimeLimit, 150)
	c.SetDefault(ConfigMaxDepth, 0)
	c.SetDefault(ConfigOpeningBook, true)
	c.SetDefault(ConfigBoardHeight, 7)
	c.SetDefault(ConfigBoardWidth, 7)
	c.SetDefault(ConfigPlayer1, "alphabeta")
	c.SetDefault(ConfigPlayer2, "minimax")
	c.SetDefault(ConfigHeuristic1, "aggressive")
	c.SetDefault(ConfigHeuristic2, "aggressive")
	c.SetDefault(ConfigEvalCache, false)
	c.SetDefault(ConfigEvalCacheFraction, 0.01)
	c.SetDefault(ConfigOpeningMoves, "")
	c.SetDefault(ConfigSeed, 0)
	c.SetDefault(ConfigDebug, false)
}

// Load reads configuration from, in increasing priority: defaults, an
// optional config.yaml, ISOLATION_* environment variables, and flags.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()
	c.SetEnvPrefix("isolation")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	c.SetConfigName("config")
	c.SetConfigType("yaml")
	c.AddConfigPath("$HOME/.isolation")
	c.AddConfigPath(".")
	if err := c.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	fs := pflag.NewFlagSet("isolation", pflag.ContinueOnError)
	fs.Int(ConfigSearchDepth, 3, "fixed search depth for the minimax player")
	fs.Float64(ConfigTimerThreshold, 10.0, "milliseconds of slack at which a search stops")
	fs.Int(ConfigTimeLimit, 150, "milliseconds per turn")
	fs.Int(ConfigMaxDepth, 0, "cap on iterative deepening depth; 0 for none")
	fs.Bool(ConfigOpeningBook, true, "alpha-beta player uses the opening book for its first move")
	fs.Int(ConfigBoardHeight, 7, "board height")
	fs.Int(ConfigBoardWidth, 7, "board width")
	fs.String(ConfigPlayer1, "alphabeta", "first player: alphabeta, minimax or random")
	fs.String(ConfigPlayer2, "minimax", "second player: alphabeta, minimax or random")
	fs.String(ConfigHeuristic1, "aggressive", "heuristic for the first player")
	fs.String(ConfigHeuristic2, "aggressive", "heuristic for the second player")
	fs.Bool(ConfigEvalCache, false, "cache leaf evaluations")
	fs.Float64(ConfigEvalCacheFraction, 0.01, "fraction of system memory for the evaluation cache")
	fs.String(ConfigOpeningMoves, "", "moves to play before the players take over, e.g. \"2,3 0,5\"")
	fs.Uint64(ConfigSeed, 0, "seed for random players; 0 for a random seed")
	fs.Bool(ConfigDebug, false, "debug logging on")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// only flags that were actually passed override the other sources.
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err == nil {
			err = c.BindPFlag(f.Name, f)
		}
	})
	return err
}

// DefaultConfig is the configuration with only defaults filled in.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

// SanitizedSettings is for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
