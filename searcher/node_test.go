package searcher

import (
	"slices"
	"sort"
	"testing"

	"uctbot/game"

	"github.com/stretchr/testify/require"
)

const (
	p1 game.Player = "p1"
	p2 game.Player = "p2"
)

// mockEngine is an explicit game tree. A state is the string of actions played from the
// root, every action is one letter, and p1 moves on even plies.
type mockEngine struct {
	moves  map[string][]string
	points map[string]game.Points
	ended  map[string]bool
}

// treeGame builds a mockEngine from its terminal paths and p1's points at each of them.
func treeGame(leaves map[string]float64) *mockEngine {
	m := &mockEngine{
		moves:  map[string][]string{},
		points: map[string]game.Points{},
		ended:  map[string]bool{},
	}
	paths := make([]string, 0, len(leaves))
	for path := range leaves {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, leaf := range paths {
		m.ended[leaf] = true
		m.points[leaf] = game.Points{p1: leaves[leaf], p2: -leaves[leaf]}
		for i := 0; i < len(leaf); i++ {
			prefix, action := leaf[:i], leaf[i:i+1]
			if !slices.Contains(m.moves[prefix], action) {
				m.moves[prefix] = append(m.moves[prefix], action)
			}
		}
	}
	return m
}

func (m *mockEngine) CurrentPlayer(state string) game.Player {
	if len(state)%2 == 0 {
		return p1
	}
	return p2
}

func (m *mockEngine) LegalActions(state string) []string {
	if m.ended[state] {
		return nil
	}
	return m.moves[state]
}

func (m *mockEngine) NextState(state string, action string) string {
	return state + action
}

func (m *mockEngine) IsEnded(state string) bool {
	return m.ended[state]
}

func (m *mockEngine) PointsValues(state string) (game.Points, bool) {
	if !m.ended[state] {
		return nil, false
	}
	p, ok := m.points[state]
	return p, ok
}

func TestNodeAddChild(t *testing.T) {
	t.Run("moves action from untried to children", func(t *testing.T) {
		root := newNode(nil, "", []string{"a", "b", "c"})
		child := root.addChild(1, []string{"x"})

		require.Equal(t, []string{"a", "c"}, root.untried)
		require.Equal(t, []*node[string]{child}, root.children)
		require.Equal(t, "b", child.action)
		require.Equal(t, root, child.parent)
		require.Equal(t, 1, child.depth)
		require.Equal(t, child, root.child("b"))
		require.Nil(t, root.child("a"), "Unexpanded action should have no child")
	})

	t.Run("does not share the legal slice", func(t *testing.T) {
		legal := []string{"a", "b"}
		root := newNode(nil, "", legal)
		root.addChild(0, nil)

		require.Equal(t, []string{"a", "b"}, legal)
	})

	t.Run("frontier until every action is expanded", func(t *testing.T) {
		root := newNode(nil, "", []string{"a", "b"})
		require.True(t, root.isFrontier())

		root.addChild(0, nil)
		require.True(t, root.isFrontier())

		root.addChild(0, nil)
		require.False(t, root.isFrontier())
		require.Len(t, root.children, 2)
	})

	t.Run("terminal child is never a frontier", func(t *testing.T) {
		root := newNode(nil, "", []string{"a"})
		child := root.addChild(0, nil)

		require.False(t, child.isFrontier())
		require.Empty(t, child.children)
	})

	t.Run("panics on an action expanded twice", func(t *testing.T) {
		root := newNode(nil, "", []string{"a", "a"})
		root.addChild(0, nil)

		require.Panics(t, func() {
			root.addChild(0, nil)
		})
	})
}

func TestNodeUpdate(t *testing.T) {
	root := newNode(nil, "", []string{"a"})
	child := root.addChild(0, []string{"b"})
	grandchild := child.addChild(0, nil)

	backup(grandchild, Win)
	backup(child, Loss)

	require.Equal(t, 2, root.visits)
	require.Equal(t, 1.0, root.rewards)
	require.Equal(t, 2, child.visits)
	require.Equal(t, 1.0, child.rewards)
	require.Equal(t, 1, grandchild.visits)
	require.Nil(t, root.update(Win), "Root should have no parent")
}

func TestNodeRank(t *testing.T) {
	newRoot := func() *node[string] {
		root := newNode(nil, "", []string{"a", "b", "c"})
		for range 3 {
			root.addChild(0, nil)
		}
		return root
	}

	t.Run("best value first", func(t *testing.T) {
		root := newRoot()
		backup(root.children[0], Loss)
		backup(root.children[1], Win)
		backup(root.children[2], Loss)

		ranked := root.rank(DefaultExploration, true)
		require.Equal(t, "b", ranked[0].action)
	})

	t.Run("opponent prefers the lowest win rate", func(t *testing.T) {
		root := newRoot()
		backup(root.children[0], Win)
		backup(root.children[1], Win)
		backup(root.children[2], Loss)

		ranked := root.rank(DefaultExploration, false)
		require.Equal(t, "c", ranked[0].action)
	})

	t.Run("ties keep insertion order", func(t *testing.T) {
		root := newRoot()
		for _, child := range root.children {
			backup(child, Win)
		}

		ranked := root.rank(DefaultExploration, true)
		require.Equal(t, []string{"a", "b", "c"},
			[]string{ranked[0].action, ranked[1].action, ranked[2].action})
	})
}

func TestNodeSize(t *testing.T) {
	root := newNode(nil, "", []string{"a", "b"})
	a := root.addChild(0, []string{"c", "d"})
	root.addChild(0, nil)
	a.addChild(0, nil)

	require.Equal(t, 4, root.size())
	require.Equal(t, 2, a.size())
}
