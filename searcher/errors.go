package searcher

import "errors"

// Engine contract violations. They are returned wrapped, so compare with errors.Is.
var (
	ErrGameOver       = errors.New("state is already ended")
	ErrNoLegalActions = errors.New("no legal actions in a state that is not ended")
	ErrMissingPoints  = errors.New("ended state has no points")
)
