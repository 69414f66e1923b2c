package engine

import (
	"fmt"
	"slices"
	"time"

	"uctbot/experiments/metrics"
	"uctbot/game"
	"uctbot/searcher"
	"uctbot/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Seat is an agent taking part in a local game.
type Seat[S any, A comparable] struct {
	ID    int // metrics.AgentConfig.ID
	Side  int // 1 or 2, position of the agent in its match up
	Agent agent.Agent[S, A]
}

type Option func(o *options)

type options struct {
	maxMoves int
	logger   zerolog.Logger
}

func WithMaxMoves(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxMoves = n
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Local plays one game between two agents in process. The first seat moves first.
type Local[S any, A comparable] struct {
	engine game.Engine[S, A]
	state  S
	seats  [2]Seat[S, A]
	options
}

var _ Engine = (*Local[string, int])(nil)

func NewLocal[S any, A comparable](engine game.Engine[S, A], start S, seats [2]Seat[S, A], opts ...Option) *Local[S, A] {
	if engine == nil {
		panic("Must specify a game engine")
	}
	if seats[0].Agent == nil || seats[1].Agent == nil {
		panic("need two agents")
	}
	o := options{maxMoves: MaxMoves, logger: log.Logger}
	for _, opt := range opts {
		opt(&o)
	}
	return &Local[S, A]{engine: engine, state: start, seats: seats, options: o}
}

// Run executes the game loop until the game ends or the move limit is hit. Every action is
// checked against the legal actions before it is applied.
func (e *Local[S, A]) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingAgent: e.seats[0].ID,
		WinnerAgent:   metrics.NoAgent,
		WinnerSide:    metrics.NoAgent,
		StartTime:     time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	players := make(map[game.Player]int, 2) // player -> seat index

	e.logger.Debug().Msgf("agent %d is starting", e.seats[0].ID)

	state := e.state
	step := 0
	for !e.engine.IsEnded(state) {
		if step == e.maxMoves {
			gameMetric.Truncated = true
			break
		}
		player := e.engine.CurrentPlayer(state)
		seat, err := seatOf(players, player)
		if err != nil {
			return gameMetric, moveMetrics, err
		}
		current := e.seats[seat]

		action, err := current.Agent.Act(state)
		if err != nil {
			return gameMetric, moveMetrics, fmt.Errorf("agent %d at move %d: %w", current.ID, step+1, err)
		}
		if !slices.Contains(e.engine.LegalActions(state), action) {
			return gameMetric, moveMetrics, fmt.Errorf("agent %d at move %d played %v: %w", current.ID, step+1, action, ErrIllegalAction)
		}

		moveMetric := metrics.MoveMetric{
			Step:   step + 1,
			Player: player,
			Agent:  current.ID,
			Action: fmt.Sprint(action),
		}
		if r, ok := current.Agent.(agent.Reporter[A]); ok {
			moveMetric.SearchMetric = r.LastReport().Metrics
		}
		moveMetrics = append(moveMetrics, moveMetric)

		e.logger.Debug().
			Int("step", step+1).
			Str("player", string(player)).
			Int("agent", current.ID).
			Str("action", moveMetric.Action).
			Msg("move")

		state = e.engine.NextState(state, action)
		step++
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = step
	if gameMetric.Truncated {
		e.logger.Debug().Msgf("stopped after %d moves (no winner yet)", step)
		return gameMetric, moveMetrics, nil
	}

	points, ok := e.engine.PointsValues(state)
	if !ok {
		return gameMetric, moveMetrics, fmt.Errorf("game over after %d moves: %w", step, searcher.ErrMissingPoints)
	}
	if winner := game.Winner(points); winner != "" {
		seat, err := seatOf(players, winner)
		if err != nil {
			return gameMetric, moveMetrics, err
		}
		gameMetric.Winner = winner
		gameMetric.WinnerAgent = e.seats[seat].ID
		gameMetric.WinnerSide = e.seats[seat].Side
	}
	return gameMetric, moveMetrics, nil
}

// seatOf returns the seat of player, giving the next free seat to a player seen for the
// first time.
func seatOf(players map[game.Player]int, player game.Player) (int, error) {
	if seat, ok := players[player]; ok {
		return seat, nil
	}
	if len(players) == 2 {
		return 0, fmt.Errorf("player %q: %w", player, ErrTooManyPlayers)
	}
	players[player] = len(players)
	return players[player], nil
}
