package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/isolation/automatic"
	"github.com/domino14/isolation/config"
)

var (
	GitVersion string
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	var logger zerolog.Logger
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		logger = zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		logger = zerolog.New(output).Level(zerolog.InfoLevel).With().Timestamp().Logger()
	}
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
	log.Info().Str("version", GitVersion).Interface("settings", cfg.SanitizedSettings()).Msg("loaded-config")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logchan := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		fmt.Println("player,ply,move,depth,nodes,ms-left")
		for line := range logchan {
			fmt.Print(line)
		}
	}()

	runner, err := automatic.NewGameRunner(logchan, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-create-game")
	}
	outcome, err := runner.Play(ctx)
	close(logchan)
	<-done
	if err != nil {
		log.Fatal().Err(err).Msg("game-aborted")
	}

	fmt.Println(outcome.Final.ToDisplayText())
	fmt.Printf("winner: %s (%s), loser: %s, plies: %d\n",
		outcome.WinnerName, outcome.Reason, outcome.LoserName, len(outcome.History))
	for _, p := range []int{int(outcome.Winner), 1 - int(outcome.Winner)} {
		if len(outcome.Depths[p]) == 0 {
			continue
		}
		fmt.Printf("player %d searched to a mean depth of %.2f (sd %.2f)\n",
			p+1, outcome.MeanDepth[p], outcome.StdDepth[p])
	}
}
