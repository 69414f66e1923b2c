package searcher

import (
	"time"
)

type SearchMetric struct {
	StartTime     time.Time
	Duration      time.Duration
	Iterations    int
	Rollouts      int
	RolloutPlies  int
	Nodes         int
	MaxDepth      int
	FullyExplored bool
}

type MetricsCollector interface {
	Start()
	AddIteration()
	AddRollout(plies int)
	AddNode(depth int)
	SetFullyExplored()
	Complete() SearchMetric
}

type metricsCollector struct {
	metric SearchMetric
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.metric = SearchMetric{StartTime: time.Now(), Nodes: 1}
}

func (m *metricsCollector) AddIteration() {
	m.metric.Iterations++
}

func (m *metricsCollector) AddRollout(plies int) {
	m.metric.Rollouts++
	m.metric.RolloutPlies += plies
}

func (m *metricsCollector) AddNode(depth int) {
	m.metric.Nodes++
	m.metric.MaxDepth = max(m.metric.MaxDepth, depth)
}

func (m *metricsCollector) SetFullyExplored() {
	m.metric.FullyExplored = true
}

func (m *metricsCollector) Complete() SearchMetric {
	metric := m.metric
	metric.Duration = time.Since(metric.StartTime)
	return metric
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                 {}
func (m *noMetricsCollector) AddIteration()          {}
func (m *noMetricsCollector) AddRollout(int)         {}
func (m *noMetricsCollector) AddNode(int)            {}
func (m *noMetricsCollector) SetFullyExplored()      {}
func (m *noMetricsCollector) Complete() SearchMetric { return SearchMetric{} }
