package searcher

import (
	"slices"

	"uctbot/game"
)

// ChildStats describes one root action after a search.
type ChildStats[A comparable] struct {
	Action  A
	Visits  int
	Rewards float64
	WinRate float64
	// Score is the value the final choice ranks by: the win rate when the tree was fully
	// explored, the visit count otherwise.
	Score float64
	// Safe is false when an expanded reply of the opponent ends the game with a loss for the
	// searching player. Always true without the safety filter.
	Safe bool
	// Wins is true when the action ends the game with a win for the searching player.
	Wins bool
}

type Report[A comparable] struct {
	Action        A
	Children      []ChildStats[A] // best first
	Iterations    int
	FullyExplored bool
	Metrics       SearchMetric
	Graph         string // DOT rendering of the tree, see WithGraph
}

// decide ranks the root children and picks the best immediate win if there is one, else the
// best safe child, falling back to the best overall when every child is unsafe.
func (t *tree[S, A]) decide(state S, fullyExplored bool) Report[A] {
	if len(t.root.children) == 0 {
		panic("root has no children")
	}

	stats := make([]ChildStats[A], len(t.root.children))
	for i, child := range t.root.children {
		s := ChildStats[A]{
			Action:  child.action,
			Visits:  child.visits,
			Rewards: child.rewards,
			WinRate: child.rewards / float64(child.visits),
			Safe:    true,
			Wins:    t.wins(state, child),
		}
		if fullyExplored {
			s.Score = s.WinRate
		} else {
			s.Score = float64(s.Visits)
		}
		if t.safetyFilter {
			s.Safe = t.isSafe(state, child)
		}
		stats[i] = s
	}
	slices.SortStableFunc(stats, func(a, b ChildStats[A]) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		}
		return 0
	})

	best := stats[0]
	if i := slices.IndexFunc(stats, func(s ChildStats[A]) bool { return s.Wins }); i >= 0 {
		best = stats[i]
	} else if i := slices.IndexFunc(stats, func(s ChildStats[A]) bool { return s.Safe }); i >= 0 {
		best = stats[i]
	}
	return Report[A]{Action: best.Action, Children: stats}
}

// isSafe looks one ply past a root child: it is unsafe when any expanded reply leads to a
// position where the searching player has lost.
func (t *tree[S, A]) isSafe(rootState S, child *node[A]) bool {
	childState := t.engine.NextState(rootState, child.action)
	for _, reply := range child.children {
		points, ok := t.engine.PointsValues(t.engine.NextState(childState, reply.action))
		if ok && points[t.identity] == game.Loss {
			return false
		}
	}
	return true
}

// wins reports whether a root child ends the game with a win for the searching player. A
// terminal child is visited once and never selected again, so its visit count says nothing.
func (t *tree[S, A]) wins(rootState S, child *node[A]) bool {
	if len(child.untried) > 0 || len(child.children) > 0 {
		return false
	}
	points, ok := t.engine.PointsValues(t.engine.NextState(rootState, child.action))
	return ok && points[t.identity] == game.Win
}
