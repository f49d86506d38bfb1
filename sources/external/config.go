package external

import "reportassist/sources/configuration"

type OutsidersConfig struct {
	ServiceName            string
	StartupPort            int
	SystemMetricsPort      int
	ApplicationMetricsPort int
}

func NewOutsidersConfig(config *configuration.Config) *OutsidersConfig {
	return &OutsidersConfig{
		ServiceName:            config.Service.Name,
		StartupPort:            config.Service.StartupPort,
		SystemMetricsPort:      config.Service.SystemMetricsPort,
		ApplicationMetricsPort: config.Service.ApplicationMetricsPort,
	}
}
