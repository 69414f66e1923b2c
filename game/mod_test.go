package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpponent(t *testing.T) {
	players := [2]Player{"a", "b"}
	require.Equal(t, Player("b"), Opponent(players, "a"))
	require.Equal(t, Player("a"), Opponent(players, "b"))
	require.Panics(t, func() {
		Opponent(players, "c")
	})
}

func TestWinner(t *testing.T) {
	tests := []struct {
		name   string
		points Points
		want   Player
	}{
		{"win", Points{"a": Win, "b": Loss}, "a"},
		{"second player wins", Points{"a": Loss, "b": Win}, "b"},
		{"draw", Points{"a": Draw, "b": Draw}, ""},
		{"tie below the leader", Points{"a": 0, "b": 0, "c": 1}, "c"},
		{"tie at the top", Points{"a": 1, "b": 1, "c": 0}, ""},
		{"no points", Points{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Winner(tt.points))
		})
	}
}
