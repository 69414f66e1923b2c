package agent

import (
	"uctbot/searcher"
)

type Agent[S any, A comparable] interface {
	// Act returns the action to play in state
	Act(state S) (A, error)
}

// Reporter is implemented by agents that search before acting. LastReport returns the report
// of the latest Act call.
type Reporter[A comparable] interface {
	LastReport() searcher.Report[A]
}
