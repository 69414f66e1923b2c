// Package nim implements a single-pile subtraction game: players alternately take between
// one and MaxTake objects from the pile, and whoever takes the last object wins. Positions
// whose pile is a multiple of MaxTake+1 are lost for the player to move.
package nim

import (
	"fmt"

	"uctbot/game"
)

const (
	First  game.Player = "first"
	Second game.Player = "second"
)

var players = [2]game.Player{First, Second}

// State is the pile size and the player to move.
type State struct {
	Pile   int
	ToMove game.Player
	// Last is the player who made the previous move; it wins once the pile is empty.
	Last game.Player
}

// Take is the number of objects removed by a move.
type Take int

// Game holds the rules and implements game.Engine.
type Game struct {
	MaxTake int
}

var _ game.Engine[State, Take] = Game{}

func New(maxTake int) Game {
	if maxTake < 1 {
		panic(fmt.Sprintf("invalid max take %d", maxTake))
	}
	return Game{MaxTake: maxTake}
}

// Start returns a pile of the given size with First to move.
func (g Game) Start(pile int) State {
	if pile < 1 {
		panic(fmt.Sprintf("invalid pile %d", pile))
	}
	return State{Pile: pile, ToMove: First}
}

func (g Game) CurrentPlayer(state State) game.Player { return state.ToMove }

func (g Game) LegalActions(state State) []Take {
	n := min(g.MaxTake, state.Pile)
	takes := make([]Take, 0, n)
	for t := 1; t <= n; t++ {
		takes = append(takes, Take(t))
	}
	return takes
}

func (g Game) NextState(state State, take Take) State {
	if take < 1 || int(take) > g.MaxTake || int(take) > state.Pile {
		panic(fmt.Sprintf("illegal take %d from pile %d", take, state.Pile))
	}
	return State{
		Pile:   state.Pile - int(take),
		ToMove: game.Opponent(players, state.ToMove),
		Last:   state.ToMove,
	}
}

func (g Game) IsEnded(state State) bool { return state.Pile == 0 }

func (g Game) PointsValues(state State) (game.Points, bool) {
	if state.Pile > 0 {
		return nil, false
	}
	return game.Points{
		state.Last:                         game.Win,
		game.Opponent(players, state.Last): game.Loss,
	}, true
}

// Winning reports whether the player to move can force a win.
func (g Game) Winning(state State) bool {
	return state.Pile%(g.MaxTake+1) != 0
}
