package metric

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockComponent simulates a component that registers its own metrics
type MockComponent struct {
	name    string
	metrics struct {
		itemsProcessed prometheus.Counter
		queueDepth     prometheus.Gauge
	}
}

func NewMockComponent(name string) *MockComponent {
	return &MockComponent{name: name}
}

// RegisterMetrics registers component-specific metrics through the registrar
func (m *MockComponent) RegisterMetrics(registrar MetricsRegistrar) error {
	m.metrics.itemsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "wordmill",
		Subsystem: "mock_component",
		Name:      "items_processed_total",
		Help:      "Total number of items processed",
	})

	if err := registrar.RegisterCounter(m.name, "items_processed_total", m.metrics.itemsProcessed); err != nil {
		return err
	}

	m.metrics.queueDepth = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "wordmill",
		Subsystem: "mock_component",
		Name:      "queue_depth",
		Help:      "Current queue depth",
	})

	return registrar.RegisterGauge(m.name, "queue_depth", m.metrics.queueDepth)
}

// TestComponentMetricsIntegration exercises the registrar interface the way
// the worker pool does: a component registering and updating its own metrics
// next to the core runner set.
func TestComponentMetricsIntegration(t *testing.T) {
	registry := NewMetricsRegistry()

	component := NewMockComponent("mock")
	require.NoError(t, component.RegisterMetrics(registry))

	component.metrics.itemsProcessed.Add(5)
	component.metrics.queueDepth.Set(2)

	items := gatherFamily(t, registry, "wordmill_mock_component_items_processed_total")
	require.NotNil(t, items)
	assert.Equal(t, 5.0, items.GetMetric()[0].GetCounter().GetValue())

	depth := gatherFamily(t, registry, "wordmill_mock_component_queue_depth")
	require.NotNil(t, depth)
	assert.Equal(t, 2.0, depth.GetMetric()[0].GetGauge().GetValue())

	// Second component with the same metric names collides
	duplicate := NewMockComponent("mock")
	assert.Error(t, duplicate.RegisterMetrics(registry))
}

// TestGoRuntimeMetricsPresent verifies the registry carries the standard
// process and Go collectors alongside the runner set.
func TestGoRuntimeMetricsPresent(t *testing.T) {
	registry := NewMetricsRegistry()

	families, err := registry.PrometheusRegistry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}

	assert.True(t, names["go_goroutines"], "Go collector should be registered")
}
