package optimizer

import "go.uber.org/fx"

var Module = fx.Module("optimizer",
	fx.Provide(
		NewOptimizerConfig,
		DefaultStopwords,
		NewOptimizer,
	),
)
