package external

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reportassist/sources/artificial"
	"reportassist/sources/platform"
	"reportassist/sources/resilience"
	"reportassist/sources/tracing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// listener is one HTTP server owned by Outsiders, tagged with its log kind.
type listener struct {
	kind   string
	server *http.Server
}

type Outsiders struct {
	log       *tracing.Logger
	config    *OutsidersConfig
	assistant *artificial.Assistant
	executor  *resilience.Executor
	registry  *prometheus.Registry
	listeners []listener
}

func NewOutsiders(log *tracing.Logger, config *OutsidersConfig, assistant *artificial.Assistant, executor *resilience.Executor) *Outsiders {
	systemRegistry := prometheus.NewRegistry()

	systemRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)

	x := &Outsiders{
		log:       log,
		config:    config,
		assistant: assistant,
		executor:  executor,
		registry:  systemRegistry,
	}

	x.listeners = []listener{
		{kind: "startup", server: &http.Server{
			Addr:    fmt.Sprintf(":%d", config.StartupPort),
			Handler: x.routes(),
		}},
		{kind: "system_metrics", server: &http.Server{
			Addr:    fmt.Sprintf(":%d", config.SystemMetricsPort),
			Handler: x.systemRoutes(),
		}},
		{kind: "application_metrics", server: &http.Server{
			Addr: fmt.Sprintf(":%d", config.ApplicationMetricsPort),
			Handler: platform.Curry(http.NewServeMux, func(m *http.ServeMux) {
				m.Handle("/metrics", promhttp.Handler())
			}),
		}},
	}

	return x
}

func (x *Outsiders) routes() http.Handler {
	return platform.Curry(http.NewServeMux, func(m *http.ServeMux) {
		m.HandleFunc("GET /health", x.health)
		m.HandleFunc("GET /resilience", x.resilienceMetrics)
		m.HandleFunc("POST /assistant/reply", x.reply)
	})
}

// systemRoutes serves the operator-only port: process metrics and breaker control.
func (x *Outsiders) systemRoutes() http.Handler {
	return platform.Curry(http.NewServeMux, func(m *http.ServeMux) {
		m.Handle("/metrics", promhttp.HandlerFor(x.registry, promhttp.HandlerOpts{}))
		m.HandleFunc("POST /resilience/reset", x.resilienceReset)
	})
}

// Start launches every listener in its own goroutine.
func (x *Outsiders) Start() {
	for _, l := range x.listeners {
		go x.serve(l)
	}
}

func (x *Outsiders) serve(l listener) {
	x.log.I("Outsider server is starting", tracing.OutsiderKind, l.kind, "addr", l.server.Addr)

	if err := l.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		x.log.F("Failed to start outsider server", tracing.OutsiderKind, l.kind, tracing.InnerError, err)
	}
}

// Stop shuts every listener down, logging failures instead of aborting the remaining ones.
func (x *Outsiders) Stop(ctx context.Context) {
	for _, l := range x.listeners {
		if err := l.server.Shutdown(ctx); err != nil {
			x.log.E("Failed to shutdown outsider server", tracing.OutsiderKind, l.kind, tracing.InnerError, err)
		}
	}
}
