package searcher

import (
	"errors"
	"fmt"
	"time"

	"uctbot/game"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type settings struct {
	iterations      int
	exploration     float64
	rolloutPolicy   RolloutPolicy
	expansionPolicy ExpansionPolicy
	scoring         Scoring
	safetyFilter    bool
	seed            uint64
	logger          zerolog.Logger
	collect         bool
	graphDepth      int
}

type Option func(s *settings)

func WithIterations(iterations int) Option {
	return func(s *settings) {
		if iterations > 0 {
			s.iterations = iterations
		}
	}
}

func WithExploration(c float64) Option {
	return func(s *settings) {
		if c >= 0 {
			s.exploration = c
		}
	}
}

func WithRollout(policy RolloutPolicy) Option {
	return func(s *settings) {
		s.rolloutPolicy = policy
	}
}

func WithExpansion(policy ExpansionPolicy) Option {
	return func(s *settings) {
		s.expansionPolicy = policy
	}
}

func WithScoring(scoring Scoring) Option {
	return func(s *settings) {
		s.scoring = scoring
	}
}

// WithSafetyFilter makes the final choice avoid root actions after which the opponent has an
// expanded reply that wins on the spot.
func WithSafetyFilter(enabled bool) Option {
	return func(s *settings) {
		s.safetyFilter = enabled
	}
}

func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.collect = true
	}
}

// MCTS decides moves for the player to move by building a fresh UCT tree on every call.
// It is not safe for concurrent use.
type MCTS[S any, A comparable] struct {
	engine game.Engine[S, A]
	settings
	rng     *rand.Rand
	metrics MetricsCollector
}

func NewMCTS[S any, A comparable](engine game.Engine[S, A], options ...Option) *MCTS[S, A] {
	if engine == nil {
		panic("Must specify a game engine")
	}
	s := settings{ // Default values
		iterations:  DefaultIterations,
		exploration: DefaultExploration,
		seed:        uint64(time.Now().UnixNano()),
		logger:      log.Logger,
	}
	for _, option := range options {
		option(&s)
	}

	m := &MCTS[S, A]{
		engine:   engine,
		settings: s,
		rng:      rand.New(rand.NewSource(s.seed)),
		metrics:  NewNoMetricsCollector(),
	}
	if s.collect {
		m.metrics = NewMetricsCollector()
	}
	return m
}

// Decide returns the action to play in state.
func (m *MCTS[S, A]) Decide(state S) (A, error) {
	report, err := m.Search(state)
	return report.Action, err
}

// Search runs up to the iteration budget from state and reports the chosen action together
// with the statistics of every root child.
func (m *MCTS[S, A]) Search(state S) (Report[A], error) {
	start := time.Now()
	if m.engine.IsEnded(state) {
		return Report[A]{}, m.fail(fmt.Errorf("search: %w", ErrGameOver))
	}
	legal := m.engine.LegalActions(state)
	if len(legal) == 0 {
		return Report[A]{}, m.fail(fmt.Errorf("search root: %w", ErrNoLegalActions))
	}

	t := m.newTree(state, legal)
	m.metrics.Start()
	iterations, fullyExplored, err := t.run(state)
	if err != nil {
		return Report[A]{}, m.fail(err)
	}
	if fullyExplored {
		m.metrics.SetFullyExplored()
	}

	report := t.decide(state, fullyExplored)
	report.Iterations = iterations
	report.FullyExplored = fullyExplored
	report.Metrics = m.metrics.Complete()
	if m.graphDepth > 0 {
		if report.Graph, err = t.toDot(m.graphDepth); err != nil {
			return Report[A]{}, m.fail(fmt.Errorf("render tree: %w", err))
		}
	}

	m.logger.Debug().
		Str("player", string(t.identity)).
		Int("iterations", iterations).
		Bool("fully_explored", fullyExplored).
		Int("nodes", t.root.size()).
		Interface("action", report.Action).
		Dur("elapsed", time.Since(start)).
		Msg("search complete")
	return report, nil
}

func (m *MCTS[S, A]) fail(err error) error {
	m.logger.Error().Err(err).Msg("search aborted")
	return err
}

// tree holds the state of a single decision. It is discarded when the decision returns.
type tree[S any, A comparable] struct {
	*MCTS[S, A]
	root     *node[A]
	identity game.Player
}

func (m *MCTS[S, A]) newTree(state S, legal []A) *tree[S, A] {
	var zero A
	return &tree[S, A]{
		MCTS:     m,
		root:     newNode(nil, zero, legal),
		identity: m.engine.CurrentPlayer(state),
	}
}

// run simulates until the iteration budget is spent or the tree is exhausted.
func (t *tree[S, A]) run(state S) (iterations int, fullyExplored bool, err error) {
	for iterations < t.iterations {
		if err := t.simulate(state); err != nil {
			if errors.Is(err, errExhausted) {
				return iterations, true, nil
			}
			return iterations, false, err
		}
		iterations++
		t.metrics.AddIteration()
	}
	return iterations, false, nil
}

// simulate runs one iteration: selection, expansion, rollout and backup.
func (t *tree[S, A]) simulate(state S) error {
	leaf, leafState, ok := t.selectFrontier(state)
	if !ok {
		return errExhausted
	}
	child, childState, err := t.expand(leaf, leafState)
	if err != nil {
		return err
	}
	points, err := t.rollout(childState)
	if err != nil {
		return err
	}
	outcome, err := t.outcome(points)
	if err != nil {
		return err
	}
	backup(child, outcome)
	return nil
}

func (t *tree[S, A]) expand(leaf *node[A], state S) (*node[A], S, error) {
	i := 0
	if t.expansionPolicy == RandomExpansion {
		i = t.rng.Intn(len(leaf.untried))
	}
	next := t.engine.NextState(state, leaf.untried[i])

	var legal []A
	if !t.engine.IsEnded(next) {
		legal = t.engine.LegalActions(next)
		if len(legal) == 0 {
			return nil, next, fmt.Errorf("expand at depth %d: %w", leaf.depth+1, ErrNoLegalActions)
		}
	}

	child := leaf.addChild(i, legal)
	t.metrics.AddNode(child.depth)
	return child, next, nil
}

// outcome converts terminal points into a rollout outcome for the searching player.
func (t *tree[S, A]) outcome(points game.Points) (float64, error) {
	p, ok := points[t.identity]
	if !ok {
		return 0, fmt.Errorf("no points for player %q: %w", t.identity, ErrMissingPoints)
	}

	switch t.scoring {
	case Scaled:
		scaled := Loss + (p-game.Loss)/(game.Win-game.Loss)*(Win-Loss)
		return min(max(scaled, Loss), Win), nil
	default:
		if p == game.Win {
			return Win, nil
		}
		return Loss, nil
	}
}

// backup adds outcome to every node from leaf up to the root.
func backup[A comparable](leaf *node[A], outcome float64) {
	n := leaf
	for n != nil {
		n = n.update(outcome)
	}
}
