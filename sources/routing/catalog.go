package routing

import (
	"fmt"
	"reportassist/sources/configuration"

	"github.com/shopspring/decimal"
)

// ModelProfile describes one model tier. Profiles are values and never change after construction.
type ModelProfile struct {
	ID                   string
	InputCostPerMillion  decimal.Decimal
	OutputCostPerMillion decimal.Decimal
	SpeedRating          int
	QualityRating        int
	ContextWindowTokens  int
}

// Catalog holds exactly two tiers: a cheap/fast one and an expensive/high-quality one.
type Catalog struct {
	cheap     ModelProfile
	expensive ModelProfile
}

func NewCatalog(cheap, expensive ModelProfile) (*Catalog, error) {
	if cheap.ID == "" || expensive.ID == "" {
		return nil, fmt.Errorf("model catalog requires both tier ids")
	}
	if cheap.ID == expensive.ID {
		return nil, fmt.Errorf("model catalog tiers must differ, both are %s", cheap.ID)
	}
	return &Catalog{cheap: cheap, expensive: expensive}, nil
}

func NewCatalogFromConfig(config *configuration.Config) (*Catalog, error) {
	cheap, err := profileFromConfig(config.Router.CheapModel)
	if err != nil {
		return nil, fmt.Errorf("invalid cheap model: %w", err)
	}
	expensive, err := profileFromConfig(config.Router.ExpensiveModel)
	if err != nil {
		return nil, fmt.Errorf("invalid expensive model: %w", err)
	}
	return NewCatalog(cheap, expensive)
}

func profileFromConfig(m configuration.ModelConfig) (ModelProfile, error) {
	input, err := decimal.NewFromString(m.InputCostPerMillion)
	if err != nil {
		return ModelProfile{}, fmt.Errorf("input cost %q: %w", m.InputCostPerMillion, err)
	}
	output, err := decimal.NewFromString(m.OutputCostPerMillion)
	if err != nil {
		return ModelProfile{}, fmt.Errorf("output cost %q: %w", m.OutputCostPerMillion, err)
	}
	return ModelProfile{
		ID:                   m.ID,
		InputCostPerMillion:  input,
		OutputCostPerMillion: output,
		SpeedRating:          m.SpeedRating,
		QualityRating:        m.QualityRating,
		ContextWindowTokens:  m.ContextWindowTokens,
	}, nil
}

func (x *Catalog) Cheap() ModelProfile {
	return x.cheap
}

func (x *Catalog) Expensive() ModelProfile {
	return x.expensive
}

func (x *Catalog) Models() []ModelProfile {
	return []ModelProfile{x.cheap, x.expensive}
}

func (x *Catalog) ByID(id string) (ModelProfile, bool) {
	switch id {
	case x.cheap.ID:
		return x.cheap, true
	case x.expensive.ID:
		return x.expensive, true
	}
	return ModelProfile{}, false
}
