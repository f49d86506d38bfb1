package configuration

import (
	"time"
)

type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Redis      RedisConfig      `yaml:"redis"`
	Router     RouterConfig     `yaml:"router"`
	Optimizer  OptimizerConfig  `yaml:"optimizer"`
	Throttler  ThrottlerConfig  `yaml:"throttler"`
	Resilience ResilienceConfig `yaml:"resilience"`
	AI         AIConfig         `yaml:"ai"`
	Proxy      ProxyConfig      `yaml:"proxy"`
	Features   FeaturesConfig   `yaml:"features"`
}

type ServiceConfig struct {
	Name                   string `yaml:"name"`
	StartupPort            int    `yaml:"startup_port"`
	SystemMetricsPort      int    `yaml:"system_metrics_port"`
	ApplicationMetricsPort int    `yaml:"application_metrics_port"`
}

type RedisConfig struct {
	Enabled     bool          `yaml:"enabled"`
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	Password    string        `yaml:"password"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries"`
	DialTimeout time.Duration `yaml:"dial_timeout"`
}

type ModelConfig struct {
	ID                   string `yaml:"id"`
	InputCostPerMillion  string `yaml:"input_cost_per_million"`
	OutputCostPerMillion string `yaml:"output_cost_per_million"`
	SpeedRating          int    `yaml:"speed_rating"`
	QualityRating        int    `yaml:"quality_rating"`
	ContextWindowTokens  int    `yaml:"context_window_tokens"`
}

type RouterConfig struct {
	CheapModel            ModelConfig `yaml:"cheap_model"`
	ExpensiveModel        ModelConfig `yaml:"expensive_model"`
	ContextOverheadTokens int         `yaml:"context_overhead_tokens"`
	AssumedOutputTokens   int         `yaml:"assumed_output_tokens"`
}

type OptimizerConfig struct {
	MinChunkChars          int `yaml:"min_chunk_chars"`
	MaxParagraphChunkChars int `yaml:"max_paragraph_chunk_chars"`
	SimpleTopK             int `yaml:"simple_top_k"`
	MediumTopK             int `yaml:"medium_top_k"`
}

type ThrottlerConfig struct {
	Namespace    string        `yaml:"namespace"`
	Capacity     int           `yaml:"capacity"`
	RefillWindow time.Duration `yaml:"refill_window"`
	IdleTTL      time.Duration `yaml:"idle_ttl"`
	EvictAfter   time.Duration `yaml:"evict_after"`
}

type ResilienceConfig struct {
	FailureThreshold    int           `yaml:"failure_threshold"`
	ResetTimeout        time.Duration `yaml:"reset_timeout"`
	MonitoringPeriod    time.Duration `yaml:"monitoring_period"`
	MaxRetries          int           `yaml:"max_retries"`
	InitialDelay        time.Duration `yaml:"initial_delay"`
	MaxDelay            time.Duration `yaml:"max_delay"`
	BackoffMultiplier   float64       `yaml:"backoff_multiplier"`
	Jitter              *bool         `yaml:"jitter"`
	CancelOnContextDone *bool         `yaml:"cancel_on_context_done"`
}

type AIConfig struct {
	Provider        string        `yaml:"provider"`
	OpenRouterToken string        `yaml:"open_router_token"`
	OpenAIToken     string        `yaml:"openai_token"`
	Tokenizer       string        `yaml:"tokenizer"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	SystemPrompt    string        `yaml:"system_prompt"`
	// ModelAliases maps catalog model ids to the provider's own model names.
	ModelAliases map[string]string `yaml:"model_aliases"`
}

type ProxyConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Address  string        `yaml:"address"`
	User     string        `yaml:"user"`
	Password string        `yaml:"password"`
	Timeout  time.Duration `yaml:"timeout"`
}

type FeaturesConfig struct {
	Enabled           bool   `yaml:"enabled"`
	UnleashAPIURL     string `yaml:"unleash_api_url"`
	UnleashAppName    string `yaml:"unleash_app_name"`
	UnleashInstanceID string `yaml:"unleash_instance_id"`
	RefreshInterval   int    `yaml:"refresh_interval"`
}
