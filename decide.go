package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"uctbot/game/tictactoe"
	"uctbot/searcher"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	decideBoard string
	decideDot   string
	decideDepth int

	decideCmd = &cobra.Command{
		Use:   "decide",
		Short: "Pick a move in a tic-tac-toe position",
		Example: `  uctbot decide --board "x.o/.x./..o"
  uctbot decide --board "xo./.o./..x" --dot tree.dot --depth 2`,
		Args: cobra.NoArgs,
		RunE: runDecide,
	}
)

func init() {
	decideCmd.Flags().StringVar(&decideBoard, "board", "", "board row by row with x, o and '.', rows may be separated by '/'")
	decideCmd.Flags().StringVar(&decideDot, "dot", "", "write the top of the search tree to this file in DOT format")
	decideCmd.Flags().IntVar(&decideDepth, "depth", 2, "plies drawn with --dot")
	_ = decideCmd.MarkFlagRequired("board")
}

func runDecide(cmd *cobra.Command, args []string) error {
	g := tictactoe.New(cfg.Arena.Rows, cfg.Arena.Cols, cfg.Arena.K)
	state, err := g.Parse(decideBoard)
	if err != nil {
		return err
	}

	options, err := cfg.SearchOptions()
	if err != nil {
		return err
	}
	options = append(options,
		searcher.WithSeed(cfg.Seed()),
		searcher.WithLogger(log.Logger),
		searcher.WithMetrics(),
	)
	if decideDot != "" {
		options = append(options, searcher.WithGraph(decideDepth))
	}

	report, err := searcher.NewMCTS[tictactoe.State, tictactoe.Cell](g, options...).Search(state)
	if err != nil {
		return err
	}
	if decideDot != "" {
		if err := os.WriteFile(decideDot, []byte(report.Graph), 0o644); err != nil {
			return fmt.Errorf("write tree: %w", err)
		}
	}
	return printReport(cmd.OutOrStdout(), g, state, report)
}

func printReport(out io.Writer, g *tictactoe.Game, state tictactoe.State, report searcher.Report[tictactoe.Cell]) error {
	next := g.NextState(state, report.Action)
	fmt.Fprintf(out, "%s plays cell %d\n\n%s\n", state.ToMove(), report.Action, g.Format(next))

	score := "visits"
	if report.FullyExplored {
		score = "win rate"
	}
	fmt.Fprintf(out, "%d iterations, %d nodes, ranked by %s\n", report.Iterations, report.Metrics.Nodes, score)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "cell\tvisits\twin rate\tsafe\twins\t")
	for _, c := range report.Children {
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%t\t%t\t\n", c.Action, c.Visits, c.WinRate, c.Safe, c.Wins)
	}
	return w.Flush()
}
