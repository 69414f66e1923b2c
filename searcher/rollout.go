package searcher

import (
	"fmt"

	"uctbot/game"
)

// rollout plays from state until the game ends and returns the final points.
func (t *tree[S, A]) rollout(state S) (game.Points, error) {
	depth := 0
	for !t.engine.IsEnded(state) {
		actions := t.engine.LegalActions(state)
		if len(actions) == 0 {
			return nil, fmt.Errorf("rollout after %d plies: %w", depth, ErrNoLegalActions)
		}
		state = t.play(state, actions)
		depth++
	}
	t.metrics.AddRollout(depth)

	points, ok := t.engine.PointsValues(state)
	if !ok {
		return nil, fmt.Errorf("rollout after %d plies: %w", depth, ErrMissingPoints)
	}
	return points, nil
}

// play applies the rollout policy's choice among actions to state.
func (t *tree[S, A]) play(state S, actions []A) S {
	if t.rolloutPolicy == GreedyRollout {
		for _, action := range actions {
			next := t.engine.NextState(state, action)
			if points, ok := t.engine.PointsValues(next); ok && points[t.identity] == game.Win {
				return next
			}
		}
	}
	return t.engine.NextState(state, actions[t.rng.Intn(len(actions))])
}
