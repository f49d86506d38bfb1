package artificial

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reportassist/sources/resilience"
	"reportassist/sources/tracing"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/sashabaranov/go-openai"
)

var ErrEmptyCompletion = errors.New("provider returned no choices")

// Provider performs one chat completion against a language model vendor.
type Provider interface {
	Name() string
	Complete(ctx context.Context, request CompletionRequest) (Completion, error)
}

func NewProvider(config *AIConfig, openRouter *openrouter.Client, openAI *openai.Client, log *tracing.Logger) (Provider, error) {
	switch config.Provider {
	case "openrouter":
		return NewOpenRouterProvider(openRouter, config, log), nil
	case "openai":
		return NewOpenAIProvider(openAI, config, log), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", config.Provider)
	}
}

// classifyStatus marks client errors as final. Timeouts and throttling stay retryable.
func classifyStatus(err error, status int) error {
	if status >= 400 && status < 500 && status != http.StatusRequestTimeout && status != http.StatusTooManyRequests {
		return resilience.NonRetryable(err)
	}
	return err
}
