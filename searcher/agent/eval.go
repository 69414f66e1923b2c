package agent

import (
	"uctbot/searcher"
)

type searchAgent[S any, A comparable] struct {
	mcts *searcher.MCTS[S, A]
	last searcher.Report[A]
}

// NewSearchAgent returns an agent that runs a fresh MCTS search for every move.
func NewSearchAgent[S any, A comparable](mcts *searcher.MCTS[S, A]) Agent[S, A] {
	if mcts == nil {
		panic("Must specify a searcher")
	}
	return &searchAgent[S, A]{mcts: mcts}
}

func (a *searchAgent[S, A]) Act(state S) (A, error) {
	report, err := a.mcts.Search(state)
	a.last = report
	return report.Action, err
}

func (a *searchAgent[S, A]) LastReport() searcher.Report[A] {
	return a.last
}
