package configuration

import "time"

// Default returns the configuration used when no file is present.
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

func applyDefaults(c *Config) {
	if c.Service.Name == "" {
		c.Service.Name = "reportassist"
	}
	if c.Service.StartupPort == 0 {
		c.Service.StartupPort = 10000
	}
	if c.Service.SystemMetricsPort == 0 {
		c.Service.SystemMetricsPort = 10001
	}
	if c.Service.ApplicationMetricsPort == 0 {
		c.Service.ApplicationMetricsPort = 10002
	}

	if c.Redis.Host == "" {
		c.Redis.Host = "redis"
	}
	if c.Redis.Port == 0 {
		c.Redis.Port = 6379
	}
	if c.Redis.MaxRetries == 0 {
		c.Redis.MaxRetries = 3
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}

	defaultModel(&c.Router.CheapModel, ModelConfig{
		ID:                   "claude-3-5-haiku-20241022",
		InputCostPerMillion:  "0.80",
		OutputCostPerMillion: "4.00",
		SpeedRating:          9,
		QualityRating:        7,
		ContextWindowTokens:  200000,
	})
	defaultModel(&c.Router.ExpensiveModel, ModelConfig{
		ID:                   "claude-sonnet-4-20250514",
		InputCostPerMillion:  "3.00",
		OutputCostPerMillion: "15.00",
		SpeedRating:          6,
		QualityRating:        10,
		ContextWindowTokens:  200000,
	})
	if c.Router.ContextOverheadTokens == 0 {
		c.Router.ContextOverheadTokens = 10000
	}
	if c.Router.AssumedOutputTokens == 0 {
		c.Router.AssumedOutputTokens = 500
	}

	if c.Optimizer.MinChunkChars == 0 {
		c.Optimizer.MinChunkChars = 50
	}
	if c.Optimizer.MaxParagraphChunkChars == 0 {
		c.Optimizer.MaxParagraphChunkChars = 1500
	}
	if c.Optimizer.SimpleTopK == 0 {
		c.Optimizer.SimpleTopK = 3
	}
	if c.Optimizer.MediumTopK == 0 {
		c.Optimizer.MediumTopK = 5
	}

	if c.Throttler.Namespace == "" {
		c.Throttler.Namespace = c.Service.Name
	}
	if c.Throttler.Capacity == 0 {
		c.Throttler.Capacity = 10
	}
	if c.Throttler.RefillWindow == 0 {
		c.Throttler.RefillWindow = 60 * time.Second
	}
	if c.Throttler.IdleTTL == 0 {
		c.Throttler.IdleTTL = 24 * time.Hour
	}
	if c.Throttler.EvictAfter == 0 {
		c.Throttler.EvictAfter = c.Throttler.RefillWindow
	}

	if c.Resilience.FailureThreshold == 0 {
		c.Resilience.FailureThreshold = 5
	}
	if c.Resilience.ResetTimeout == 0 {
		c.Resilience.ResetTimeout = 60 * time.Second
	}
	if c.Resilience.MonitoringPeriod == 0 {
		c.Resilience.MonitoringPeriod = 120 * time.Second
	}
	if c.Resilience.MaxRetries == 0 {
		c.Resilience.MaxRetries = 3
	}
	if c.Resilience.InitialDelay == 0 {
		c.Resilience.InitialDelay = time.Second
	}
	if c.Resilience.MaxDelay == 0 {
		c.Resilience.MaxDelay = 10 * time.Second
	}
	if c.Resilience.BackoffMultiplier == 0 {
		c.Resilience.BackoffMultiplier = 2
	}
	if c.Resilience.Jitter == nil {
		jitter := true
		c.Resilience.Jitter = &jitter
	}
	if c.Resilience.CancelOnContextDone == nil {
		cancel := true
		c.Resilience.CancelOnContextDone = &cancel
	}

	if c.AI.Provider == "" {
		c.AI.Provider = "openrouter"
	}
	if c.AI.Tokenizer == "" {
		c.AI.Tokenizer = "heuristic"
	}
	if c.AI.RequestTimeout == 0 {
		c.AI.RequestTimeout = 2 * time.Minute
	}
	if c.AI.MaxOutputTokens == 0 {
		c.AI.MaxOutputTokens = 1024
	}
	if c.AI.ModelAliases == nil && c.AI.Provider == "openrouter" {
		c.AI.ModelAliases = map[string]string{
			"claude-3-5-haiku-20241022": "anthropic/claude-3.5-haiku",
			"claude-sonnet-4-20250514":  "anthropic/claude-sonnet-4",
		}
	}

	if c.Proxy.Timeout == 0 {
		c.Proxy.Timeout = 3 * time.Minute
	}

	if c.Features.UnleashAppName == "" {
		c.Features.UnleashAppName = c.Service.Name
	}
	if c.Features.UnleashInstanceID == "" {
		c.Features.UnleashInstanceID = c.Service.Name
	}
	if c.Features.RefreshInterval == 0 {
		c.Features.RefreshInterval = 15
	}
}

func defaultModel(m *ModelConfig, d ModelConfig) {
	if m.ID == "" {
		*m = d
		return
	}
	if m.InputCostPerMillion == "" {
		m.InputCostPerMillion = "0"
	}
	if m.OutputCostPerMillion == "" {
		m.OutputCostPerMillion = "0"
	}
	if m.ContextWindowTokens == 0 {
		m.ContextWindowTokens = d.ContextWindowTokens
	}
}
