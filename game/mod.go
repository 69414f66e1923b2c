package game

// Player identifies one of the two sides of a game.
type Player string

// Points maps each player to its score in a terminal state.
type Points map[Player]float64

// Scores a terminal state can assign to a player.
const (
	Win  = 1.0
	Draw = 0.0
	Loss = -1.0
)

// Engine is the rules collaborator of the searcher. States are treated as immutable values:
// NextState never mutates its argument. Any game that aims to be playable by an MCTS agent
// implements this interface; the searcher never inspects S or A itself.
type Engine[S any, A comparable] interface {
	// CurrentPlayer returns the player whose turn it is in state.
	CurrentPlayer(state S) Player
	// LegalActions lists the actions available in state. It is never empty for a state
	// that is not ended.
	LegalActions(state S) []A
	// NextState returns the state reached by playing action in state.
	NextState(state S, action A) S
	// IsEnded reports whether state is terminal.
	IsEnded(state S) bool
	// PointsValues returns the score of every player when state is terminal, and false
	// otherwise.
	PointsValues(state S) (Points, bool)
}

// Opponent returns the player in players that is not p. It panics if players does not hold
// exactly two players or p is not one of them.
func Opponent(players [2]Player, p Player) Player {
	switch p {
	case players[0]:
		return players[1]
	case players[1]:
		return players[0]
	}
	panic("unknown player " + string(p))
}

// Winner returns the player with the strictly highest points, or "" on a tie.
func Winner(points Points) Player {
	var winner Player
	best, tied := 0.0, false
	for p, v := range points {
		switch {
		case winner == "" || v > best:
			winner, best, tied = p, v, false
		case v == best:
			tied = true
		}
	}
	if tied {
		return ""
	}
	return winner
}
