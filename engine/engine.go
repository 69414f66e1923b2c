package engine

import (
	"errors"

	"uctbot/experiments/metrics"
)

const MaxMoves = 10000

var (
	ErrIllegalAction  = errors.New("agent chose an illegal action")
	ErrTooManyPlayers = errors.New("game has more than two players")
)

type Engine interface {
	// Run plays a game till it ends or a max number of moves is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
