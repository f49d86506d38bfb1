package resilience

import (
	"go.uber.org/fx"
)

var Module = fx.Module("resilience",
	fx.Provide(
		NewResilienceConfig,
		func() Sleeper { return TimerSleeper{} },
		NewRandom,
		NewExecutor,
	),
)
