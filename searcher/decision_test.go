package searcher

import (
	"testing"

	"uctbot/game"

	"github.com/stretchr/testify/require"
)

/**
Final choice over the root children:
- not fully explored: most visited child
- fully explored: highest win rate
- ties: first expanded child
- an immediate win beats any ranking
- safety filter:
	- skips children with an expanded losing reply
	- falls back to the best child when every child is unsafe
*/

// decisionTree returns a tree over smallTree whose root has both children expanded with the
// given statistics.
func decisionTree(t *testing.T, safetyFilter bool, a, b [2]float64) *tree[string, string] {
	t.Helper()
	engine := treeGame(smallTree)
	m := NewMCTS[string, string](engine, quiet(WithSafetyFilter(safetyFilter))...)
	tr := m.newTree("", engine.LegalActions(""))
	for i, stats := range [][2]float64{a, b} {
		child := tr.root.addChild(0, engine.LegalActions(smallTreeRootActions[i]))
		child.rewards, child.visits = stats[0], int(stats[1])
	}
	return tr
}

var smallTreeRootActions = []string{"a", "b"}

func TestDecide(t *testing.T) {
	t.Run("most visited child when not fully explored", func(t *testing.T) {
		tr := decisionTree(t, false, [2]float64{2, 10}, [2]float64{3, 4})

		report := tr.decide("", false)
		require.Equal(t, "a", report.Action)
		require.Equal(t, 10.0, report.Children[0].Score)
		require.InDelta(t, 0.2, report.Children[0].WinRate, 0.0001)
	})

	t.Run("highest win rate when fully explored", func(t *testing.T) {
		tr := decisionTree(t, false, [2]float64{2, 10}, [2]float64{3, 4})

		report := tr.decide("", true)
		require.Equal(t, "b", report.Action)
		require.Equal(t, 0.75, report.Children[0].Score)
	})

	t.Run("ties keep expansion order", func(t *testing.T) {
		tr := decisionTree(t, false, [2]float64{1, 5}, [2]float64{4, 5})

		report := tr.decide("", false)
		require.Equal(t, "a", report.Action)
		require.Equal(t, "b", report.Children[1].Action)
	})

	t.Run("safety filter skips a child with a losing reply", func(t *testing.T) {
		tr := decisionTree(t, true, [2]float64{1, 2}, [2]float64{3, 6})
		b := tr.root.child("b")
		b.addChild(0, nil) // "ba" loses for p1

		report := tr.decide("", false)
		require.Equal(t, "a", report.Action)
		require.False(t, report.Children[0].Safe)
		require.True(t, report.Children[1].Safe)
	})

	t.Run("without the filter every child is safe", func(t *testing.T) {
		tr := decisionTree(t, false, [2]float64{1, 2}, [2]float64{3, 6})
		tr.root.child("b").addChild(0, nil)

		report := tr.decide("", false)
		require.Equal(t, "b", report.Action)
		require.True(t, report.Children[0].Safe)
	})

	t.Run("falls back to the best child when none is safe", func(t *testing.T) {
		engine := treeGame(map[string]float64{"aa": -1, "ba": -1})
		m := NewMCTS[string, string](engine, quiet(WithSafetyFilter(true))...)
		tr := m.newTree("", engine.LegalActions(""))
		for range 2 {
			child := tr.root.addChild(0, []string{"a"})
			child.addChild(0, nil)
			backup(child.children[0], Loss)
		}
		backup(tr.root.children[1].children[0], Loss)

		report := tr.decide("", false)
		require.Equal(t, "b", report.Action)
		require.False(t, report.Children[0].Safe)
		require.False(t, report.Children[1].Safe)
	})

	t.Run("immediate win beats the most visited child", func(t *testing.T) {
		engine := treeGame(map[string]float64{"a": game.Win, "ba": game.Loss, "bb": game.Win})
		for _, filter := range []bool{false, true} {
			m := NewMCTS[string, string](engine, quiet(WithSafetyFilter(filter))...)
			tr := m.newTree("", engine.LegalActions(""))
			a := tr.root.addChild(0, nil)
			backup(a, Win)
			b := tr.root.addChild(0, engine.LegalActions("b"))
			for range 9 {
				backup(b, Win)
			}

			report := tr.decide("", false)
			require.Equal(t, "a", report.Action, "filter %t", filter)
			require.Equal(t, "b", report.Children[0].Action)
			require.False(t, report.Children[0].Wins)
			require.True(t, report.Children[1].Wins)
		}
	})

	t.Run("a terminal loss is not a win", func(t *testing.T) {
		engine := treeGame(map[string]float64{"a": game.Loss, "ba": game.Win})
		m := NewMCTS[string, string](engine, quiet()...)
		tr := m.newTree("", engine.LegalActions(""))
		backup(tr.root.addChild(0, nil), Loss)
		b := tr.root.addChild(0, engine.LegalActions("b"))
		backup(b, Win)
		backup(b, Win)

		report := tr.decide("", false)
		require.Equal(t, "b", report.Action)
		require.False(t, report.Children[1].Wins)
	})

	t.Run("panics without children", func(t *testing.T) {
		engine := treeGame(smallTree)
		m := NewMCTS[string, string](engine, quiet()...)
		tr := m.newTree("", engine.LegalActions(""))

		require.Panics(t, func() {
			tr.decide("", false)
		})
	})
}

func TestSelectFrontier(t *testing.T) {
	engine := treeGame(smallTree)
	m := NewMCTS[string, string](engine, quiet()...)

	t.Run("root with untried actions", func(t *testing.T) {
		tr := m.newTree("", engine.LegalActions(""))

		leaf, state, ok := tr.selectFrontier("")
		require.True(t, ok)
		require.Equal(t, tr.root, leaf)
		require.Equal(t, "", state)
	})

	t.Run("skips an exhausted subtree", func(t *testing.T) {
		tr := m.newTree("", engine.LegalActions(""))
		a := tr.root.addChild(0, []string{"a"})
		aa := a.addChild(0, nil)
		b := tr.root.addChild(0, engine.LegalActions("b"))
		backup(aa, Win)
		backup(a, Win)
		backup(b, Loss)

		leaf, state, ok := tr.selectFrontier("")
		require.True(t, ok, "b still has untried actions")
		require.Equal(t, b, leaf)
		require.Equal(t, "b", state)
	})

	t.Run("descends to a deeper frontier", func(t *testing.T) {
		tr := m.newTree("", engine.LegalActions(""))
		a := tr.root.addChild(0, engine.LegalActions("a"))
		b := tr.root.addChild(0, nil)
		a.addChild(0, nil)
		a.addChild(0, nil)
		aa := a.children[0]
		aa.untried = []string{"b"}
		backup(b, Loss)
		backup(a, Win)
		backup(a.children[1], Win)
		backup(aa, Win)

		leaf, state, ok := tr.selectFrontier("")
		require.True(t, ok)
		require.Equal(t, aa, leaf)
		require.Equal(t, "aa", state)
	})

	t.Run("exhausted tree", func(t *testing.T) {
		tr := m.newTree("", []string{"a"})
		backup(tr.root.addChild(0, nil), Win)

		_, _, ok := tr.selectFrontier("")
		require.False(t, ok)
	})
}
