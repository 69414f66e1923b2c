// Package tictactoe implements m,n,k-games: two players alternately mark the cells of an
// m×n board and the first to get k marks in a row (horizontally, vertically or diagonally)
// wins. The classic game is 3,3,3.
package tictactoe

import (
	"errors"
	"fmt"
	"strings"

	"uctbot/game"
)

const (
	X game.Player = "x"
	O game.Player = "o"

	empty = '.'
)

var (
	ErrIllegalAction = errors.New("illegal action")
	ErrBadBoard      = errors.New("malformed board")
)

var players = [2]game.Player{X, O}

// Cell is the index of a board cell in row-major order.
type Cell int

// State is an immutable board position. X always moves first.
type State struct {
	cells  string
	toMove game.Player
}

func (s State) String() string { return s.cells }

// ToMove returns the player whose turn it is.
func (s State) ToMove() game.Player { return s.toMove }

// Game holds the rules of an m,n,k-game and implements game.Engine.
type Game struct {
	m, n, k int
}

var _ game.Engine[State, Cell] = (*Game)(nil)

// New creates a game played on an m×n board with k in a row to win.
func New(m, n, k int) *Game {
	if m <= 0 || n <= 0 || k <= 0 || (k > m && k > n) {
		panic(fmt.Sprintf("invalid m,n,k game %d,%d,%d", m, n, k))
	}
	return &Game{m: m, n: n, k: k}
}

// Standard creates the classic 3×3 tic-tac-toe.
func Standard() *Game { return New(3, 3, 3) }

func (g *Game) String() string { return fmt.Sprintf("tictactoe(%d,%d,%d)", g.m, g.n, g.k) }

// Start returns the empty board with X to move.
func (g *Game) Start() State {
	return State{cells: strings.Repeat(string(empty), g.m*g.n), toMove: X}
}

// Parse reads a board written row by row with 'x', 'o' and '.', ignoring whitespace and
// '/' row separators. The player to move is derived from the mark counts.
func (g *Game) Parse(board string) (State, error) {
	var b strings.Builder
	xs, os := 0, 0
	for _, r := range strings.ToLower(board) {
		switch r {
		case 'x':
			xs++
		case 'o':
			os++
		case empty:
		case ' ', '\t', '\n', '/':
			continue
		default:
			return State{}, fmt.Errorf("%w: unexpected %q", ErrBadBoard, r)
		}
		b.WriteRune(r)
	}
	if b.Len() != g.m*g.n {
		return State{}, fmt.Errorf("%w: want %d cells, got %d", ErrBadBoard, g.m*g.n, b.Len())
	}

	state := State{cells: b.String(), toMove: X}
	switch xs - os {
	case 0:
	case 1:
		state.toMove = O
	default:
		return State{}, fmt.Errorf("%w: %d x marks against %d o marks", ErrBadBoard, xs, os)
	}
	return state, nil
}

func (g *Game) CurrentPlayer(state State) game.Player {
	return state.toMove
}

// LegalActions returns the empty cells in ascending order, or nothing once the game is over.
func (g *Game) LegalActions(state State) []Cell {
	if _, over := g.outcome(state); over {
		return nil
	}
	cells := make([]Cell, 0, len(state.cells))
	for i := 0; i < len(state.cells); i++ {
		if state.cells[i] == empty {
			cells = append(cells, Cell(i))
		}
	}
	return cells
}

// NextState marks cell for the player to move. It panics on an illegal action; use Play to
// validate untrusted input.
func (g *Game) NextState(state State, cell Cell) State {
	next, err := g.Play(state, cell)
	if err != nil {
		panic(err)
	}
	return next
}

// Play is NextState with validation.
func (g *Game) Play(state State, cell Cell) (State, error) {
	if int(cell) < 0 || int(cell) >= len(state.cells) {
		return state, fmt.Errorf("%w: cell %d out of range", ErrIllegalAction, cell)
	}
	if state.cells[cell] != empty {
		return state, fmt.Errorf("%w: cell %d is taken", ErrIllegalAction, cell)
	}
	if _, over := g.outcome(state); over {
		return state, fmt.Errorf("%w: game is over", ErrIllegalAction)
	}

	cells := []byte(state.cells)
	cells[cell] = string(state.toMove)[0]
	return State{cells: string(cells), toMove: game.Opponent(players, state.toMove)}, nil
}

func (g *Game) IsEnded(state State) bool {
	_, over := g.outcome(state)
	return over
}

// PointsValues scores a finished game: 1 for the winner, -1 for the loser, 0 each for a draw.
func (g *Game) PointsValues(state State) (game.Points, bool) {
	winner, over := g.outcome(state)
	if !over {
		return nil, false
	}
	if winner == "" {
		return game.Points{X: game.Draw, O: game.Draw}, true
	}
	return game.Points{
		winner:                         game.Win,
		game.Opponent(players, winner): game.Loss,
	}, true
}

// Winner returns the winning player, or "" while the game is running or drawn.
func (g *Game) Winner(state State) game.Player {
	winner, _ := g.outcome(state)
	return winner
}

// Format renders the board one row per line.
func (g *Game) Format(state State) string {
	var b strings.Builder
	for row := 0; row < g.m; row++ {
		b.WriteString(state.cells[row*g.n : (row+1)*g.n])
		b.WriteByte('\n')
	}
	return b.String()
}

var directions = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

func (g *Game) outcome(state State) (winner game.Player, over bool) {
	full := true
	for i := 0; i < len(state.cells); i++ {
		mark := state.cells[i]
		if mark == empty {
			full = false
			continue
		}
		row, col := i/g.n, i%g.n
		for _, d := range directions {
			if g.run(state.cells, row, col, d[0], d[1], mark) >= g.k {
				return game.Player(state.cells[i : i+1]), true
			}
		}
	}
	return "", full
}

// run counts consecutive marks starting at (row, col) in direction (dr, dc).
func (g *Game) run(cells string, row, col, dr, dc int, mark byte) int {
	count := 0
	for row >= 0 && row < g.m && col >= 0 && col < g.n && cells[row*g.n+col] == mark {
		count++
		row += dr
		col += dc
	}
	return count
}
