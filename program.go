package main

import (
	"context"
	"reportassist/sources/artificial"
	"reportassist/sources/configuration"
	"reportassist/sources/external"
	"reportassist/sources/features"
	"reportassist/sources/metrics"
	"reportassist/sources/metrics/collector"
	"reportassist/sources/network"
	"reportassist/sources/optimizer"
	"reportassist/sources/persistence"
	"reportassist/sources/platform"
	"reportassist/sources/resilience"
	"reportassist/sources/routing"
	"reportassist/sources/texting"
	"reportassist/sources/throttler"
	"reportassist/sources/tracing"
	"time"

	"go.uber.org/fx"
)

var (
	version   = "0.0.0"
	buildTime = "1970-01-01"
)

func main() {
	platform.SetAppManifest(version, buildTime, time.Now())

	fx.New(
		tracing.Module,
		configuration.Module,
		platform.Module,
		texting.Module,
		network.Module,
		persistence.Module,
		features.Module,
		metrics.Module,
		collector.Module,
		routing.Module,
		optimizer.Module,
		throttler.Module,
		resilience.Module,
		artificial.Module,
		external.Module,

		fx.Invoke(func(lc fx.Lifecycle, log *tracing.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.I("Report assistant started successfully", "version", version, "build_time", buildTime)
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.I("Report assistant stopped", "version", version, "build_time", buildTime)
					return nil
				},
			})
		}),
	).Run()
}
