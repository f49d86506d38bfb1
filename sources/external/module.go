package external

import (
	"context"

	"go.uber.org/fx"
)

var Module = fx.Module("external",
	fx.Provide(
		NewOutsidersConfig,
		NewOutsiders,
	),

	fx.Invoke(func(outsiders *Outsiders, lc fx.Lifecycle) {
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				outsiders.log.I("Starting outsiders services", "listeners", len(outsiders.listeners))
				outsiders.Start()
				return nil
			},
			OnStop: func(ctx context.Context) error {
				outsiders.log.I("Stopping outsiders services")
				outsiders.Stop(ctx)
				return nil
			},
		})
	}),
)
