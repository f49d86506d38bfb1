package artificial

import (
	"context"
	"errors"
	"net/http"
	"reportassist/sources/tracing"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/shopspring/decimal"
)

func NewOpenRouterClient(config *AIConfig, client *http.Client) *openrouter.Client {
	clientConfig := openrouter.DefaultConfig(config.OpenRouterToken)
	clientConfig.HTTPClient = client
	clientConfig.XTitle = "Report Assistant"

	return openrouter.NewClientWithConfig(*clientConfig)
}

type OpenRouterProvider struct {
	ai     *openrouter.Client
	config *AIConfig
	log    *tracing.Logger
}

func NewOpenRouterProvider(ai *openrouter.Client, config *AIConfig, log *tracing.Logger) *OpenRouterProvider {
	return &OpenRouterProvider{ai: ai, config: config, log: log}
}

func (x *OpenRouterProvider) Name() string {
	return "openrouter"
}

func (x *OpenRouterProvider) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	request := openrouter.ChatCompletionRequest{
		Model:     x.config.ProviderModel(req.Model),
		Messages:  MessagesToOpenRouter(req.System, req.Messages),
		MaxTokens: req.MaxTokens,
		Usage:     &openrouter.IncludeUsage{Include: true},
		Provider: &openrouter.ChatProvider{
			DataCollection: openrouter.DataCollectionDeny,
			Sort:           openrouter.ProviderSortingLatency,
		},
	}

	log := x.log.With(tracing.AiKind, "openrouter/chat", tracing.AiModel, request.Model)
	log.D("ai requested")

	response, err := x.ai.CreateChatCompletion(ctx, request)
	if err != nil {
		var apiErr *openrouter.APIError
		if errors.As(err, &apiErr) {
			log.E("OpenRouter API error", "code", apiErr.Code, "message", apiErr.Message, "http_status", apiErr.HTTPStatusCode, tracing.InnerError, err)
			return Completion{}, classifyStatus(err, apiErr.HTTPStatusCode)
		}
		log.E("OpenRouter request failed", tracing.InnerError, err)
		return Completion{}, err
	}

	if len(response.Choices) == 0 {
		return Completion{}, ErrEmptyCompletion
	}

	completion := Completion{
		Text:         response.Choices[0].Message.Content.Text,
		Model:        req.Model,
		InputTokens:  response.Usage.PromptTokens,
		OutputTokens: response.Usage.CompletionTokens,
		Cost:         decimal.NewFromFloat(response.Usage.Cost),
	}

	log.I("ai completed", tracing.AiCost, completion.Cost.String(), tracing.AiTokens, response.Usage.TotalTokens)
	return completion, nil
}
