package features

import (
	"reportassist/sources/configuration"
	"time"
)

type FeatureConfig struct {
	Enabled           bool
	UnleashAPIURL     string
	UnleashInstanceID string
	UnleashAppName    string
	RefreshInterval   time.Duration
}

func NewFeatureConfig(config *configuration.Config) *FeatureConfig {
	return &FeatureConfig{
		Enabled:           config.Features.Enabled && config.Features.UnleashAPIURL != "",
		UnleashAPIURL:     config.Features.UnleashAPIURL,
		UnleashInstanceID: config.Features.UnleashInstanceID,
		UnleashAppName:    config.Features.UnleashAppName,
		RefreshInterval:   time.Duration(config.Features.RefreshInterval) * time.Second,
	}
}
