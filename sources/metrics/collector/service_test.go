package collector

import (
	"context"
	"errors"
	"reportassist/sources/metrics"
	"reportassist/sources/platform"
	"reportassist/sources/resilience"
	"reportassist/sources/tracing"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gauge(t *testing.T, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := 0
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric.GetGauge().GetValue()
			}
		}
	}

	t.Fatalf("metric %s %v not found", name, labels)
	return 0
}

func TestCollectStatsMirrorsExecutor(t *testing.T) {
	config := resilience.DefaultResilienceConfig()
	config.MaxRetries = 0
	config.FailureThreshold = 1

	clock := platform.NewManualClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	executor := resilience.NewExecutor(config, clock, resilience.TimerSleeper{}, resilience.NewRandom(), tracing.NewNopLogger())

	err := executor.Execute(context.Background(), "op", func(context.Context) error { return errors.New("boom") })
	require.Error(t, err)
	err = executor.Execute(context.Background(), "op", func(context.Context) error { return nil })
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)

	s := &StatsCollector{
		log:      tracing.NewNopLogger(),
		metrics:  metrics.NewMetricsService(tracing.NewNopLogger()),
		executor: executor,
	}
	s.collectStats()

	assert.Equal(t, 1.0, gauge(t, "reportassist_circuit_state", nil))
	assert.Equal(t, 2.0, gauge(t, "reportassist_resilience_requests", map[string]string{"kind": "total"}))
	assert.Equal(t, 1.0, gauge(t, "reportassist_resilience_requests", map[string]string{"kind": "failed"}))
	assert.Equal(t, 1.0, gauge(t, "reportassist_resilience_requests", map[string]string{"kind": "rejected"}))
	assert.Equal(t, 1.0, gauge(t, "reportassist_resilience_requests", map[string]string{"kind": "circuit_opens"}))
}
