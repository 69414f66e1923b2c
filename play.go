package main

import (
	"fmt"

	"uctbot/config"
	"uctbot/experiments"
	"uctbot/experiments/metrics"
	"uctbot/game"
	"uctbot/game/nim"
	"uctbot/game/tictactoe"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	playGames    int
	playParallel int
	playOutput   string

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a series of games between the search agent and the configured opponent",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
)

func init() {
	playCmd.Flags().IntVar(&playGames, "games", 0, "number of games, overrides arena.games")
	playCmd.Flags().IntVar(&playParallel, "parallel", 1, "games played at once")
	playCmd.Flags().StringVar(&playOutput, "output", "", "directory for the CSV records, overrides arena.output_dir")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if playGames > 0 {
		cfg.Arena.Games = playGames
	}
	if playOutput != "" {
		cfg.Arena.OutputDir = playOutput
	}
	configs := cfg.AgentConfigs()

	a := cfg.Arena
	switch a.Game {
	case config.TicTacToe:
		g := tictactoe.New(a.Rows, a.Cols, a.K)
		return playSeries(cmd, g.String(), g, g.Start(), configs)
	case config.Nim:
		g := nim.New(a.MaxTake)
		return playSeries(cmd, fmt.Sprintf("nim(%d,%d)", a.Pile, a.MaxTake), g, g.Start(a.Pile), configs)
	}
	return fmt.Errorf("%w: unknown game %q", config.ErrInvalid, a.Game)
}

func playSeries[S any, A comparable](cmd *cobra.Command, name string, engine game.Engine[S, A], start S, configs []metrics.AgentConfig) error {
	setup := experiments.Setup[S, A]{
		Engine:    engine,
		Start:     start,
		Games:     cfg.Arena.Games,
		Alternate: cfg.Arena.Alternate,
		MaxMoves:  cfg.Arena.MaxMoves,
		Parallel:  playParallel,
		Logger:    log.Logger,
	}
	collector, err := experiments.Run(name, setup, [][2]metrics.AgentConfig{{configs[0], configs[1]}})
	if err != nil {
		return err
	}
	dir, err := experiments.Store(cfg.Arena.OutputDir, name, configs, collector)
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("stored records")

	s := collector.Summary()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d games, %.1f±%.1f moves\n", name, s.Games, s.MeanMoves, s.StdMoves)
	fmt.Fprintf(out, "  agent 1 (%s) won %d\n", configs[0].Kind, s.SideWins[0])
	fmt.Fprintf(out, "  agent 2 (%s) won %d\n", configs[1].Kind, s.SideWins[1])
	fmt.Fprintf(out, "  draws %d, unfinished %d\n", s.Draws, s.Truncated)
	fmt.Fprintf(out, "records in %s\n", dir)
	return nil
}
