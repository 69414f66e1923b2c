package experiments

import (
	"fmt"

	"uctbot/engine"
	"uctbot/experiments/metrics"
	"uctbot/game"
	"uctbot/searcher"
	"uctbot/searcher/agent"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const NumGames = 30 // Per match up

// Setup describes the game every match up of an experiment is played on.
type Setup[S any, A comparable] struct {
	Engine game.Engine[S, A]
	Start  S
	Games  int // per match up, NumGames when 0
	// Alternate swaps the starting agent on every other game.
	Alternate bool
	MaxMoves  int
	// Parallel is the number of games of a match up played at once, 1 when 0. Every game
	// has its own agents, so searches never share state.
	Parallel int
	Logger   zerolog.Logger
}

// side is an agent config at its position in a match up.
type side struct {
	config metrics.AgentConfig
	number int // 1 or 2
}

type result struct {
	gameMetric  metrics.GameMetric
	moveMetrics []metrics.MoveMetric
}

// SelfPlay pairs each config with itself.
func SelfPlay(configs []metrics.AgentConfig) [][2]metrics.AgentConfig {
	matchUps := make([][2]metrics.AgentConfig, len(configs))
	for i, config := range configs {
		matchUps[i] = [2]metrics.AgentConfig{config, config}
	}
	return matchUps
}

// AgainstBaseline pairs each config with the baseline, which takes the first seat.
func AgainstBaseline(baseline metrics.AgentConfig, configs []metrics.AgentConfig) [][2]metrics.AgentConfig {
	matchUps := make([][2]metrics.AgentConfig, len(configs))
	for i, config := range configs {
		matchUps[i] = [2]metrics.AgentConfig{baseline, config}
	}
	return matchUps
}

// Run plays every match up and collects the records of all games.
func Run[S any, A comparable](name string, setup Setup[S, A], matchUps [][2]metrics.AgentConfig) (metrics.Collector, error) {
	if setup.Engine == nil {
		panic("Must specify a game engine")
	}
	games := setup.Games
	if games <= 0 {
		games = NumGames
	}
	logger := setup.Logger
	collector := metrics.NewCollector()

	logger.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		config1, config2 := matchUp[0], matchUp[1]

		logger.Info().Msgf("starting matchup %d of %d between agent1=%d and agent2=%d...", mi+1, len(matchUps), config1.ID, config2.ID)

		results := make([]result, games)
		g := new(errgroup.Group)
		g.SetLimit(max(setup.Parallel, 1))
		for i := 0; i < games; i++ {
			first, second := side{config1, 1}, side{config2, 2}
			if setup.Alternate && i%2 == 1 {
				first, second = second, first
			}
			g.Go(func() error {
				gameMetric, moveMetrics, err := runGame(setup, first, second, uint64(i))
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				results[i] = result{gameMetric: gameMetric, moveMetrics: moveMetrics}
				logger.Debug().Msgf("completed matchup %d of %d game %d", mi+1, len(matchUps), i+1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return collector, err
		}

		for i, r := range results {
			record := collector.AddGame(config1.ID, config2.ID, r.gameMetric, r.moveMetrics)
			logger.Info().Msgf("matchup %d of %d game %d winner: %s", mi+1, len(matchUps), i+1, winnerName(record))
		}
		logger.Info().Msgf("completed matchup %d of %d", mi+1, len(matchUps))
	}

	logger.Info().Msgf("completed %s experiment", name)
	return collector, nil
}

// Store writes the agent configs and the collected records as CSV files under dir/name and
// returns the directory they were written to.
func Store(dir, name string, configs []metrics.AgentConfig, collector metrics.Collector) (string, error) {
	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(collector.GameRecords()); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	if err := writer.WriteMoveRecords(collector.MoveRecords()); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	return writer.Dir(), nil
}

// runGame executes a single game where first takes the first seat.
func runGame[S any, A comparable](setup Setup[S, A], first, second side, gameIndex uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	var seats [2]engine.Seat[S, A]
	for i, s := range []side{first, second} {
		seats[i] = engine.Seat[S, A]{
			ID:    s.config.ID,
			Side:  s.number,
			Agent: createAgent(setup, s.config, agentSeed(s.config, gameIndex, s.number)),
		}
	}
	var e engine.Engine = engine.NewLocal(setup.Engine, setup.Start, seats,
		engine.WithMaxMoves(setup.MaxMoves), engine.WithLogger(setup.Logger))
	return e.Run()
}

// agentSeed offsets the config's seed by the game number so that the games of a match up
// differ, and by the side so that a config playing itself gets two random streams.
func agentSeed(config metrics.AgentConfig, gameIndex uint64, side int) uint64 {
	return config.Seed + gameIndex + uint64(side-1)<<32
}

func createAgent[S any, A comparable](setup Setup[S, A], config metrics.AgentConfig, seed uint64) agent.Agent[S, A] {
	if config.Kind == metrics.RandomAgent {
		return agent.NewRandomAgent(setup.Engine, seed)
	}

	options := []searcher.Option{
		searcher.WithRollout(config.Rollout),
		searcher.WithExpansion(config.Expansion),
		searcher.WithScoring(config.Scoring),
		searcher.WithSafetyFilter(config.SafetyFilter),
		searcher.WithSeed(seed),
		searcher.WithLogger(setup.Logger),
	}
	if config.Iterations > 0 {
		options = append(options, searcher.WithIterations(config.Iterations))
	}
	if config.Exploration > 0 {
		options = append(options, searcher.WithExploration(config.Exploration))
	}

	options = append(options, searcher.WithMetrics())
	return agent.NewSearchAgent(searcher.NewMCTS(setup.Engine, options...))
}

func winnerName(record metrics.GameRecord) string {
	switch {
	case record.Truncated:
		return "none (move limit)"
	case record.WinnerAgent == metrics.NoAgent:
		return "draw"
	}
	return fmt.Sprintf("agent %d on side %d (%s)", record.WinnerAgent, record.WinnerSide, record.Winner)
}
