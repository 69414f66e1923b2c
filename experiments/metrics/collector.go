package metrics

import (
	"time"

	"uctbot/game"
	"uctbot/searcher"

	"gonum.org/v1/gonum/stat"
)

// Agent kinds
const (
	SearchAgent = "mcts"
	RandomAgent = "random"
)

// NoAgent marks a game without a winner.
const NoAgent = -1

type AgentConfig struct {
	ID           int
	Kind         string
	Iterations   int
	Exploration  float64
	Rollout      searcher.RolloutPolicy
	Expansion    searcher.ExpansionPolicy
	Scoring      searcher.Scoring
	SafetyFilter bool
	Seed         uint64
}

type MoveMetric struct {
	Step   int
	Player game.Player
	Agent  int // AgentConfig.ID
	Action string
	searcher.SearchMetric
}

type GameMetric struct {
	StartingAgent int // AgentConfig.ID
	Winner        game.Player
	WinnerAgent   int // AgentConfig.ID or NoAgent
	WinnerSide    int // match up side (1 or 2) or NoAgent
	StartTime     time.Time
	EndTime       time.Time
	Duration      time.Duration
	TotalMoves    int
	Truncated     bool // stopped by the move limit
}

type GameRecord struct {
	ID     int
	Agent1 int // AgentConfig.ID
	Agent2 int // AgentConfig.ID
	GameMetric
}

type MoveRecord struct {
	Game int // GameRecord.ID
	MoveMetric
}

// Summary tallies the results of a series of games.
type Summary struct {
	Games     int
	Draws     int
	Truncated int
	Moves     int
	Wins      map[int]int // by AgentConfig.ID
	// Wins by match up side. Unlike Wins it tells apart a config playing itself.
	SideWins [2]int
	// Mean and standard deviation of the game lengths
	MeanMoves float64
	StdMoves  float64
}

type Collector interface {
	AddGame(agent1, agent2 int, metric GameMetric, moves []MoveMetric) GameRecord
	GameRecords() []GameRecord
	MoveRecords() []MoveRecord
	Summary() Summary
}

type collector struct {
	games   []GameRecord
	moves   []MoveRecord
	summary Summary
}

func NewCollector() Collector {
	return &collector{summary: Summary{Wins: map[int]int{}}}
}

// AddGame records a finished game under the next game ID.
func (c *collector) AddGame(agent1, agent2 int, metric GameMetric, moves []MoveMetric) GameRecord {
	record := GameRecord{
		ID:         len(c.games) + 1,
		Agent1:     agent1,
		Agent2:     agent2,
		GameMetric: metric,
	}
	c.games = append(c.games, record)
	for _, mm := range moves {
		c.moves = append(c.moves, MoveRecord{Game: record.ID, MoveMetric: mm})
	}

	c.summary.Games++
	c.summary.Moves += metric.TotalMoves
	switch {
	case metric.Truncated:
		c.summary.Truncated++
	case metric.WinnerAgent == NoAgent:
		c.summary.Draws++
	default:
		c.summary.Wins[metric.WinnerAgent]++
		if metric.WinnerSide == 1 || metric.WinnerSide == 2 {
			c.summary.SideWins[metric.WinnerSide-1]++
		}
	}
	return record
}

func (c *collector) GameRecords() []GameRecord {
	return c.games
}

func (c *collector) MoveRecords() []MoveRecord {
	return c.moves
}

func (c *collector) Summary() Summary {
	summary := c.summary
	if len(c.games) > 1 {
		lengths := make([]float64, len(c.games))
		for i, record := range c.games {
			lengths[i] = float64(record.TotalMoves)
		}
		summary.MeanMoves, summary.StdMoves = stat.MeanStdDev(lengths, nil)
	} else if len(c.games) == 1 {
		summary.MeanMoves = float64(c.games[0].TotalMoves)
	}
	return summary
}
