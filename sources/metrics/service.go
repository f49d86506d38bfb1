package metrics

import (
	"reportassist/sources/tracing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MetricsService struct {
	log *tracing.Logger
}

var (
	turnsHandled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportassist_turns_handled_total",
			Help: "Total number of assistant turns handled",
		},
		[]string{"status"},
	)

	admissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportassist_admissions_total",
			Help: "Total number of rate limiter admission checks",
		},
		[]string{"result"},
	)

	routingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportassist_routing_decisions_total",
			Help: "Total number of routing decisions by model and complexity",
		},
		[]string{"model", "complexity"},
	)

	routingSavings = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "reportassist_routing_estimated_savings_total",
			Help: "Estimated cost saved by routing to the cheap tier",
		},
	)

	tokenUsage = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportassist_token_usage_total",
			Help: "Total number of tokens used",
		},
		[]string{"model", "type"},
	)

	costUsage = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reportassist_cost_usage_total",
			Help: "Total cost incurred",
		},
		[]string{"model", "type"},
	)

	contextReduction = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reportassist_context_reduction_percent",
			Help:    "Share of the knowledge document removed by context optimization",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"complexity"},
	)

	aiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reportassist_ai_request_duration_seconds",
			Help:    "Duration of AI provider requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	turnProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reportassist_turn_processing_duration_seconds",
			Help:    "Total duration of assistant turn processing",
			Buckets: prometheus.DefBuckets,
		},
	)

	circuitState = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "reportassist_circuit_state",
			Help: "Circuit breaker state (0 closed, 1 open, 2 half open)",
		},
	)

	resilienceRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reportassist_resilience_requests",
			Help: "Resilience executor counters since start",
		},
		[]string{"kind"},
	)

	resilienceLatency = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reportassist_resilience_latency_seconds",
			Help: "Latency of successful upstream calls over the recent sample",
		},
		[]string{"stat"},
	)
)

func init() {
	prometheus.MustRegister(turnsHandled)
	prometheus.MustRegister(admissions)
	prometheus.MustRegister(routingDecisions)
	prometheus.MustRegister(routingSavings)
	prometheus.MustRegister(tokenUsage)
	prometheus.MustRegister(costUsage)
	prometheus.MustRegister(contextReduction)
	prometheus.MustRegister(aiRequestDuration)
	prometheus.MustRegister(turnProcessingDuration)
	prometheus.MustRegister(circuitState)
	prometheus.MustRegister(resilienceRequests)
	prometheus.MustRegister(resilienceLatency)
}

func NewMetricsService(log *tracing.Logger) *MetricsService {
	return &MetricsService{
		log: log,
	}
}

func (s *MetricsService) RecordTurnHandled(status string) {
	turnsHandled.WithLabelValues(status).Inc()
}

func (s *MetricsService) RecordAdmission(allowed bool) {
	if allowed {
		admissions.WithLabelValues("allowed").Inc()
		return
	}
	admissions.WithLabelValues("denied").Inc()
}

func (s *MetricsService) RecordRoutingDecision(model string, complexity string, savings float64) {
	routingDecisions.WithLabelValues(model, complexity).Inc()
	if savings > 0 {
		routingSavings.Add(savings)
	}
}

func (s *MetricsService) RecordUsage(tokens int, cost float64, model string, usageType string) {
	tokenUsage.WithLabelValues(model, usageType).Add(float64(tokens))
	costUsage.WithLabelValues(model, usageType).Add(cost)
}

func (s *MetricsService) RecordContextReduction(complexity string, percent float64) {
	contextReduction.WithLabelValues(complexity).Observe(percent)
}

func (s *MetricsService) RecordAIRequestDuration(duration time.Duration, model string) {
	aiRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

func (s *MetricsService) RecordTurnProcessingDuration(duration time.Duration) {
	turnProcessingDuration.Observe(duration.Seconds())
}

func (s *MetricsService) SetCircuitState(state int) {
	circuitState.Set(float64(state))
}

func (s *MetricsService) SetResilienceCounter(kind string, value int64) {
	resilienceRequests.WithLabelValues(kind).Set(float64(value))
}

func (s *MetricsService) SetResilienceLatency(stat string, latency time.Duration) {
	resilienceLatency.WithLabelValues(stat).Set(latency.Seconds())
}
