package searcher

import "fmt"

// Hyperparameters for MCTS

const DefaultIterations = 1000

const DefaultExploration = 2.0 // Exploration constant c in c*sqrt(ln(N)/n)

// Outcomes of a rollout from the searching player's perspective
const (
	Win  = 1.0
	Loss = 1 - Win
	Tie  = (Win + Loss) / 2
)

// RolloutPolicy picks moves during simulation.
type RolloutPolicy int

const (
	// RandomRollout plays uniformly random legal actions until the game ends.
	RandomRollout RolloutPolicy = iota
	// GreedyRollout plays an immediately winning action for the searching player when one
	// exists and a random action otherwise.
	GreedyRollout
)

func (p RolloutPolicy) String() string {
	switch p {
	case RandomRollout:
		return "random"
	case GreedyRollout:
		return "greedy"
	}
	return "unknown"
}

// ExpansionPolicy picks which untried action a frontier node expands next.
type ExpansionPolicy int

const (
	RandomExpansion  ExpansionPolicy = iota // uniformly random untried action
	OrderedExpansion                        // first untried action in engine order
)

func (p ExpansionPolicy) String() string {
	switch p {
	case RandomExpansion:
		return "random"
	case OrderedExpansion:
		return "ordered"
	}
	return "unknown"
}

// Scoring converts the engine's terminal points for the searching player into a rollout
// outcome in [Loss, Win].
type Scoring int

const (
	// WinOnly counts a rollout as Win when the player scored game.Win and Loss otherwise.
	WinOnly Scoring = iota
	// Scaled maps points in [game.Loss, game.Win] linearly onto [Loss, Win], so draws
	// count as Tie.
	Scaled
)

func (s Scoring) String() string {
	switch s {
	case WinOnly:
		return "win-only"
	case Scaled:
		return "scaled"
	}
	return "unknown"
}

// ParseRolloutPolicy reads a policy name as printed by RolloutPolicy.String.
func ParseRolloutPolicy(name string) (RolloutPolicy, error) {
	for _, p := range []RolloutPolicy{RandomRollout, GreedyRollout} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown rollout policy %q", name)
}

func ParseExpansionPolicy(name string) (ExpansionPolicy, error) {
	for _, p := range []ExpansionPolicy{RandomExpansion, OrderedExpansion} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown expansion policy %q", name)
}

func ParseScoring(name string) (Scoring, error) {
	for _, s := range []Scoring{WinOnly, Scaled} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scoring %q", name)
}
