package nim

import (
	"testing"

	"uctbot/game"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	require.Panics(t, func() { New(0) })
	require.Panics(t, func() { New(3).Start(0) })
}

func TestLegalActions(t *testing.T) {
	g := New(3)
	require.Equal(t, []Take{1, 2, 3}, g.LegalActions(g.Start(10)))
	require.Equal(t, []Take{1, 2}, g.LegalActions(g.Start(2)))
	require.Empty(t, g.LegalActions(State{Pile: 0, ToMove: Second, Last: First}))
}

func TestPlay(t *testing.T) {
	g := New(3)
	start := g.Start(4)

	t.Run("takes and passes the turn", func(t *testing.T) {
		next := g.NextState(start, 3)
		require.Equal(t, State{Pile: 1, ToMove: Second, Last: First}, next)
		require.Equal(t, Second, g.CurrentPlayer(next))
		require.False(t, g.IsEnded(next))
		require.Equal(t, State{Pile: 4, ToMove: First}, start, "States are values")

		_, ok := g.PointsValues(next)
		require.False(t, ok)
	})

	t.Run("last take wins", func(t *testing.T) {
		end := g.NextState(g.NextState(start, 3), 1)
		require.True(t, g.IsEnded(end))

		points, ok := g.PointsValues(end)
		require.True(t, ok)
		require.Equal(t, game.Points{Second: game.Win, First: game.Loss}, points)
	})

	t.Run("panics on an illegal take", func(t *testing.T) {
		require.Panics(t, func() { g.NextState(start, 0) })
		require.Panics(t, func() { g.NextState(start, 4) })
		require.Panics(t, func() { g.NextState(g.Start(1), 2) })
	})
}

func TestWinning(t *testing.T) {
	g := New(3)
	for pile, want := range map[int]bool{1: true, 3: true, 4: false, 5: true, 8: false, 21: true} {
		require.Equal(t, want, g.Winning(g.Start(pile)), "pile %d", pile)
	}
}
