package artificial

import (
	"context"
	"errors"
	"net/http"
	"reportassist/sources/tracing"

	"github.com/sashabaranov/go-openai"
)

func NewOpenAIClient(client *http.Client, config *AIConfig) *openai.Client {
	openaiConfig := openai.DefaultConfig(config.OpenAIToken)
	openaiConfig.HTTPClient = client
	return openai.NewClientWithConfig(openaiConfig)
}

// OpenAIProvider talks to the OpenAI chat API. It does not report cost; the assistant prices
// usage from the catalog instead.
type OpenAIProvider struct {
	ai     *openai.Client
	config *AIConfig
	log    *tracing.Logger
}

func NewOpenAIProvider(ai *openai.Client, config *AIConfig, log *tracing.Logger) *OpenAIProvider {
	return &OpenAIProvider{ai: ai, config: config, log: log}
}

func (x *OpenAIProvider) Name() string {
	return "openai"
}

func (x *OpenAIProvider) Complete(ctx context.Context, req CompletionRequest) (Completion, error) {
	request := openai.ChatCompletionRequest{
		Model:               x.config.ProviderModel(req.Model),
		Messages:            MessagesToOpenAI(req.System, req.Messages),
		MaxCompletionTokens: req.MaxTokens,
	}

	log := x.log.With(tracing.AiKind, "openai/chat", tracing.AiModel, request.Model)
	log.D("ai requested")

	response, err := x.ai.CreateChatCompletion(ctx, request)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.E("OpenAI API error", "code", apiErr.Code, "message", apiErr.Message, "http_status", apiErr.HTTPStatusCode, tracing.InnerError, err)
			return Completion{}, classifyStatus(err, apiErr.HTTPStatusCode)
		}
		log.E("OpenAI request failed", tracing.InnerError, err)
		return Completion{}, err
	}

	if len(response.Choices) == 0 {
		return Completion{}, ErrEmptyCompletion
	}

	log.I("ai completed", tracing.AiTokens, response.Usage.TotalTokens)

	return Completion{
		Text:         response.Choices[0].Message.Content,
		Model:        req.Model,
		InputTokens:  response.Usage.PromptTokens,
		OutputTokens: response.Usage.CompletionTokens,
	}, nil
}
