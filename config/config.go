// Package config loads the settings of the uctbot command from defaults, an optional YAML file
// and UCTBOT_* environment variables, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"uctbot/experiments/metrics"
	"uctbot/searcher"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Games and opponents the arena can set up
const (
	TicTacToe = "tictactoe"
	Nim       = "nim"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Search   SearchConfig `yaml:"search"`
	Arena    ArenaConfig  `yaml:"arena"`
	LogLevel string       `yaml:"log_level"`
}

// SearchConfig holds the settings of the searching agent.
type SearchConfig struct {
	Iterations   int     `yaml:"iterations"`
	Exploration  float64 `yaml:"exploration"`
	Rollout      string  `yaml:"rollout"`
	Expansion    string  `yaml:"expansion"`
	Scoring      string  `yaml:"scoring"`
	SafetyFilter bool    `yaml:"safety_filter"`
	// Seed 0 picks a time-based seed.
	Seed uint64 `yaml:"seed"`
}

// ArenaConfig holds the settings of a play series.
type ArenaConfig struct {
	Game string `yaml:"game"`
	// Board of the tictactoe game: Rows x Cols, K in a row wins
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
	K    int `yaml:"k"`
	// Nim pile and largest take
	Pile    int `yaml:"pile"`
	MaxTake int `yaml:"max_take"`

	Games              int    `yaml:"games"`
	Opponent           string `yaml:"opponent"`
	OpponentIterations int    `yaml:"opponent_iterations"`
	Alternate          bool   `yaml:"alternate"`
	MaxMoves           int    `yaml:"max_moves"`
	OutputDir          string `yaml:"output_dir"`
}

func Default() Config {
	return Config{
		Search: SearchConfig{
			Iterations:  searcher.DefaultIterations,
			Exploration: searcher.DefaultExploration,
			Rollout:     searcher.RandomRollout.String(),
			Expansion:   searcher.RandomExpansion.String(),
			Scoring:     searcher.WinOnly.String(),
		},
		Arena: ArenaConfig{
			Game:               TicTacToe,
			Rows:               3,
			Cols:               3,
			K:                  3,
			Pile:               21,
			MaxTake:            3,
			Games:              10,
			Opponent:           metrics.RandomAgent,
			OpponentIterations: 100,
			Alternate:          true,
			OutputDir:          "experiments",
		},
		LogLevel: zerolog.LevelInfoValue,
	}
}

// Load returns the defaults overridden by the file at path, if it exists, and then by the
// environment.
func Load(path string) (Config, error) {
	config := Default()

	if path != "" {
		if err := loadFile(path, &config); err != nil {
			return config, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&config); err != nil {
		return config, err
	}

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}
	return yaml.Unmarshal(data, config)
}

func loadEnv(config *Config) error {
	var errs []error
	envInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			i, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s=%q is not an integer", ErrInvalid, key, v))
				return
			}
			*dst = i
		}
	}
	envString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	// Search
	envInt("UCTBOT_ITERATIONS", &config.Search.Iterations)
	if v := os.Getenv("UCTBOT_EXPLORATION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			config.Search.Exploration = f
		} else {
			errs = append(errs, fmt.Errorf("%w: UCTBOT_EXPLORATION=%q is not a number", ErrInvalid, v))
		}
	}
	envString("UCTBOT_ROLLOUT", &config.Search.Rollout)
	envString("UCTBOT_EXPANSION", &config.Search.Expansion)
	envString("UCTBOT_SCORING", &config.Search.Scoring)
	if v := os.Getenv("UCTBOT_SAFETY_FILTER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.Search.SafetyFilter = b
		} else {
			errs = append(errs, fmt.Errorf("%w: UCTBOT_SAFETY_FILTER=%q is not a boolean", ErrInvalid, v))
		}
	}
	if v := os.Getenv("UCTBOT_SEED"); v != "" {
		if u, err := strconv.ParseUint(v, 10, 64); err == nil {
			config.Search.Seed = u
		} else {
			errs = append(errs, fmt.Errorf("%w: UCTBOT_SEED=%q is not an unsigned integer", ErrInvalid, v))
		}
	}

	// Arena
	envString("UCTBOT_GAME", &config.Arena.Game)
	envInt("UCTBOT_GAMES", &config.Arena.Games)
	envString("UCTBOT_OPPONENT", &config.Arena.Opponent)
	envString("UCTBOT_OUTPUT_DIR", &config.Arena.OutputDir)

	envString("UCTBOT_LOG_LEVEL", &config.LogLevel)
	return errors.Join(errs...)
}

// Validate checks that the configuration is valid.
func (c Config) Validate() error {
	if _, err := c.SearchOptions(); err != nil {
		return err
	}
	if c.Search.Iterations < 1 {
		return fmt.Errorf("%w: iterations must be >= 1", ErrInvalid)
	}
	if c.Search.Exploration <= 0 {
		return fmt.Errorf("%w: exploration must be > 0", ErrInvalid)
	}

	a := c.Arena
	switch a.Game {
	case TicTacToe:
		if a.Rows < 1 || a.Cols < 1 || a.K < 1 || a.K > max(a.Rows, a.Cols) {
			return fmt.Errorf("%w: no %d in a row on a %dx%d board", ErrInvalid, a.K, a.Rows, a.Cols)
		}
	case Nim:
		if a.Pile < 1 || a.MaxTake < 1 {
			return fmt.Errorf("%w: pile and max_take must be >= 1", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown game %q", ErrInvalid, a.Game)
	}
	if a.Games < 1 {
		return fmt.Errorf("%w: games must be >= 1", ErrInvalid)
	}
	if a.MaxMoves < 0 {
		return fmt.Errorf("%w: max_moves must be >= 0", ErrInvalid)
	}
	switch a.Opponent {
	case metrics.RandomAgent:
	case metrics.SearchAgent:
		if a.OpponentIterations < 1 {
			return fmt.Errorf("%w: opponent_iterations must be >= 1", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown opponent %q", ErrInvalid, a.Opponent)
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the log level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err == nil && level == zerolog.NoLevel {
		err = errors.New("empty log level")
	}
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return level, nil
}

// SearchOptions converts the search section into searcher options. The seed is left out.
func (c Config) SearchOptions() ([]searcher.Option, error) {
	rollout, err := searcher.ParseRolloutPolicy(c.Search.Rollout)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	expansion, err := searcher.ParseExpansionPolicy(c.Search.Expansion)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	scoring, err := searcher.ParseScoring(c.Search.Scoring)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return []searcher.Option{
		searcher.WithIterations(c.Search.Iterations),
		searcher.WithExploration(c.Search.Exploration),
		searcher.WithRollout(rollout),
		searcher.WithExpansion(expansion),
		searcher.WithScoring(scoring),
		searcher.WithSafetyFilter(c.Search.SafetyFilter),
	}, nil
}

// Seed returns the configured seed, or a time-based one when it is 0.
func (c Config) Seed() uint64 {
	if c.Search.Seed != 0 {
		return c.Search.Seed
	}
	return uint64(time.Now().UnixNano())
}

// AgentConfigs returns the configs of the searching agent (ID 1) and its opponent (ID 2).
// It assumes a valid config.
func (c Config) AgentConfigs() []metrics.AgentConfig {
	rollout, _ := searcher.ParseRolloutPolicy(c.Search.Rollout)
	expansion, _ := searcher.ParseExpansionPolicy(c.Search.Expansion)
	scoring, _ := searcher.ParseScoring(c.Search.Scoring)
	seed := c.Seed()

	bot := metrics.AgentConfig{
		ID:           1,
		Kind:         metrics.SearchAgent,
		Iterations:   c.Search.Iterations,
		Exploration:  c.Search.Exploration,
		Rollout:      rollout,
		Expansion:    expansion,
		Scoring:      scoring,
		SafetyFilter: c.Search.SafetyFilter,
		Seed:         seed,
	}
	opponent := metrics.AgentConfig{ID: 2, Kind: metrics.RandomAgent, Seed: seed + 1<<32}
	if c.Arena.Opponent == metrics.SearchAgent {
		opponent = bot
		opponent.ID = 2
		opponent.Iterations = c.Arena.OpponentIterations
		opponent.Seed = seed + 1<<32
	}
	return []metrics.AgentConfig{bot, opponent}
}
