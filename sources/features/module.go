package features

import (
	"context"
	"reportassist/sources/tracing"

	"go.uber.org/fx"
)

func NewToggles(lc fx.Lifecycle, config *FeatureConfig, log *tracing.Logger) (Toggles, error) {
	if !config.Enabled {
		log.I("Feature toggles served from defaults, Unleash is not configured")
		return StaticToggles{}, nil
	}

	fm, err := NewFeatureManager(config, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.I("Feature toggles initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return fm.OnStop(ctx)
		},
	})

	return fm, nil
}

var Module = fx.Module("features",
	fx.Provide(
		NewFeatureConfig,
		NewToggles,
	),
)
