package agent

import (
	"fmt"

	"uctbot/game"
	"uctbot/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent[S any, A comparable] struct {
	engine game.Engine[S, A]
	rng    *rand.Rand
}

// NewRandomAgent returns a baseline agent that plays uniformly random legal actions.
func NewRandomAgent[S any, A comparable](engine game.Engine[S, A], seed uint64) Agent[S, A] {
	if engine == nil {
		panic("Must specify a game engine")
	}
	return &randomAgent[S, A]{engine: engine, rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent[S, A]) Act(state S) (A, error) {
	var zero A
	if a.engine.IsEnded(state) {
		return zero, fmt.Errorf("random agent: %w", searcher.ErrGameOver)
	}
	actions := a.engine.LegalActions(state)
	if len(actions) == 0 {
		return zero, fmt.Errorf("random agent: %w", searcher.ErrNoLegalActions)
	}
	return actions[a.rng.Intn(len(actions))], nil
}
