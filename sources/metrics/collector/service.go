package collector

import (
	"context"
	"reportassist/sources/metrics"
	"reportassist/sources/resilience"
	"reportassist/sources/tracing"
	"time"

	"go.uber.org/fx"
)

// StatsCollector mirrors the resilience executor counters into Prometheus gauges.
type StatsCollector struct {
	log      *tracing.Logger
	metrics  *metrics.MetricsService
	executor *resilience.Executor
	stop     chan struct{}
	done     chan struct{}
}

func NewStatsCollector(
	lc fx.Lifecycle,
	log *tracing.Logger,
	metrics *metrics.MetricsService,
	executor *resilience.Executor,
) *StatsCollector {
	s := &StatsCollector{
		log:      log,
		metrics:  metrics,
		executor: executor,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go s.start(15 * time.Second)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(s.stop)
			select {
			case <-s.done:
			case <-ctx.Done():
			}
			return nil
		},
	})

	return s
}

func (s *StatsCollector) start(interval time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.collectStats()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.collectStats()
		}
	}
}

func (s *StatsCollector) collectStats() {
	m := s.executor.Metrics()

	s.metrics.SetCircuitState(int(m.State))
	s.metrics.SetResilienceCounter("total", m.TotalRequests)
	s.metrics.SetResilienceCounter("successful", m.SuccessfulRequests)
	s.metrics.SetResilienceCounter("failed", m.FailedRequests)
	s.metrics.SetResilienceCounter("retried", m.RetriedRequests)
	s.metrics.SetResilienceCounter("rejected", m.RejectedRequests)
	s.metrics.SetResilienceCounter("circuit_opens", m.CircuitOpens)
	s.metrics.SetResilienceCounter("circuit_closes", m.CircuitCloses)
	s.metrics.SetResilienceLatency("average", m.AverageLatency)
	s.metrics.SetResilienceLatency("p95", m.P95Latency)

	if m.State != resilience.CircuitClosed {
		s.log.W("upstream circuit is not closed", tracing.CircuitState, m.State.String(), "recent_failures", m.RecentFailures)
	}
}
