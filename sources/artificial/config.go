package artificial

import (
	"reportassist/sources/configuration"
	"time"
)

type AIConfig struct {
	Provider        string
	OpenRouterToken string
	OpenAIToken     string

	RequestTimeout  time.Duration
	MaxOutputTokens int
	SystemPrompt    string
	ModelAliases    map[string]string
}

func NewAIConfig(config *configuration.Config) *AIConfig {
	prompt := config.AI.SystemPrompt
	if prompt == "" {
		prompt = DefaultSystemPrompt
	}

	return &AIConfig{
		Provider:        config.AI.Provider,
		OpenRouterToken: config.AI.OpenRouterToken,
		OpenAIToken:     config.AI.OpenAIToken,
		RequestTimeout:  config.AI.RequestTimeout,
		MaxOutputTokens: config.AI.MaxOutputTokens,
		SystemPrompt:    prompt,
		ModelAliases:    config.AI.ModelAliases,
	}
}

// ProviderModel translates a catalog model id into the name the provider expects.
func (c *AIConfig) ProviderModel(id string) string {
	if alias, ok := c.ModelAliases[id]; ok && alias != "" {
		return alias
	}
	return id
}
