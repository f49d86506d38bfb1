package artificial

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reportassist/sources/platform"
	"reportassist/sources/resilience"
	"reportassist/sources/tracing"
	"testing"

	openrouter "github.com/revrost/go-openrouter"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStatus(t *testing.T) {
	err := errors.New("boom")

	assert.True(t, resilience.IsNonRetryable(classifyStatus(err, http.StatusBadRequest)))
	assert.True(t, resilience.IsNonRetryable(classifyStatus(err, http.StatusUnauthorized)))
	assert.False(t, resilience.IsNonRetryable(classifyStatus(err, http.StatusTooManyRequests)))
	assert.False(t, resilience.IsNonRetryable(classifyStatus(err, http.StatusRequestTimeout)))
	assert.False(t, resilience.IsNonRetryable(classifyStatus(err, http.StatusBadGateway)))
	assert.False(t, resilience.IsNonRetryable(classifyStatus(err, 0)))
}

func TestNewProviderSelectsByName(t *testing.T) {
	log := tracing.NewNopLogger()
	orClient := openrouter.NewClientWithConfig(*openrouter.DefaultConfig("token"))
	oaClient := openai.NewClient("token")

	provider, err := NewProvider(&AIConfig{Provider: "openrouter"}, orClient, oaClient, log)
	require.NoError(t, err)
	assert.Equal(t, "openrouter", provider.Name())

	provider, err = NewProvider(&AIConfig{Provider: "openai"}, orClient, oaClient, log)
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())

	_, err = NewProvider(&AIConfig{Provider: "carrier-pigeon"}, orClient, oaClient, log)
	assert.Error(t, err)
}

func TestProviderModelAliases(t *testing.T) {
	config := &AIConfig{ModelAliases: map[string]string{"claude-sonnet-4-20250514": "anthropic/claude-sonnet-4"}}

	assert.Equal(t, "anthropic/claude-sonnet-4", config.ProviderModel("claude-sonnet-4-20250514"))
	assert.Equal(t, "gpt-4o-mini", config.ProviderModel("gpt-4o-mini"))
}

func newOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-token")
	config.BaseURL = server.URL
	return NewOpenAIProvider(openai.NewClientWithConfig(config), &AIConfig{}, tracing.NewNopLogger())
}

func TestOpenAIProviderComplete(t *testing.T) {
	provider := newOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"1","object":"chat.completion","model":"gpt-4o-mini","choices":[{"index":0,"message":{"role":"assistant","content":"42 sites"},"finish_reason":"stop"}],"usage":{"prompt_tokens":120,"completion_tokens":8,"total_tokens":128}}`)
	})

	completion, err := provider.Complete(context.Background(), CompletionRequest{
		Model:    "gpt-4o-mini",
		System:   "system",
		Messages: []platform.Message{platform.UserMessage("Combien de sites ?")},
	})
	require.NoError(t, err)

	assert.Equal(t, "42 sites", completion.Text)
	assert.Equal(t, 120, completion.InputTokens)
	assert.Equal(t, 8, completion.OutputTokens)
	assert.True(t, completion.Cost.IsZero())
}

func TestOpenAIProviderClientErrorIsFinal(t *testing.T) {
	provider := newOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"model not found","type":"invalid_request_error","code":"model_not_found"}}`)
	})

	_, err := provider.Complete(context.Background(), CompletionRequest{Model: "nope", Messages: []platform.Message{platform.UserMessage("hi")}})

	require.Error(t, err)
	assert.True(t, resilience.IsNonRetryable(err))
}

func TestOpenAIProviderServerErrorIsRetryable(t *testing.T) {
	provider := newOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	})

	_, err := provider.Complete(context.Background(), CompletionRequest{Model: "gpt-4o-mini", Messages: []platform.Message{platform.UserMessage("hi")}})

	require.Error(t, err)
	assert.False(t, resilience.IsNonRetryable(err))
}
