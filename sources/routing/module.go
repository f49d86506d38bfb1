package routing

import "go.uber.org/fx"

var Module = fx.Module("routing",
	fx.Provide(
		NewCatalogFromConfig,
		NewRouterConfig,
		func() *Classifier { return NewClassifier(DefaultKeywords()) },
		NewRouter,
	),
)
