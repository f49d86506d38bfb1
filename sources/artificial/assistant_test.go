package artificial

import (
	"context"
	"errors"
	"fmt"
	"reportassist/sources/configuration"
	"reportassist/sources/features"
	"reportassist/sources/metrics"
	"reportassist/sources/optimizer"
	"reportassist/sources/persistence"
	"reportassist/sources/platform"
	"reportassist/sources/resilience"
	"reportassist/sources/routing"
	"reportassist/sources/throttler"
	"reportassist/sources/tracing"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	mu       sync.Mutex
	requests []CompletionRequest
	answer   func(call int) (Completion, error)
}

func (p *fakeProvider) Name() string {
	return "fake"
}

func (p *fakeProvider) Complete(_ context.Context, request CompletionRequest) (Completion, error) {
	p.mu.Lock()
	p.requests = append(p.requests, request)
	call := len(p.requests)
	p.mu.Unlock()

	if p.answer == nil {
		return Completion{Text: "answer", Model: request.Model, InputTokens: 1000, OutputTokens: 200}, nil
	}
	return p.answer(call)
}

func (p *fakeProvider) calls() []CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]CompletionRequest(nil), p.requests...)
}

type noSleep struct{}

func (noSleep) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

type fixture struct {
	assistant *Assistant
	provider  *fakeProvider
	executor  *resilience.Executor
	clock     *platform.ManualClock
	router    *routing.Router
}

func newFixture(t *testing.T, toggles features.Toggles, tune func(*configuration.Config)) *fixture {
	t.Helper()

	config := configuration.Default()
	config.Resilience.MaxRetries = 1
	if tune != nil {
		tune(config)
	}

	log := tracing.NewNopLogger()
	clock := platform.NewManualClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	catalog, err := routing.NewCatalogFromConfig(config)
	require.NoError(t, err)
	router := routing.NewRouter(catalog, routing.NewClassifier(routing.DefaultKeywords()), routing.NewRouterConfig(config), nil)

	limiter := throttler.NewThrottler(throttler.NewThrottlerConfig(config), persistence.NewMemoryStore(), clock, log)
	reducer := optimizer.NewOptimizer(optimizer.NewOptimizerConfig(config), optimizer.DefaultStopwords())
	executor := resilience.NewExecutor(resilience.NewResilienceConfig(config), clock, noSleep{}, func() float64 { return 0.5 }, log)
	provider := &fakeProvider{}

	assistant := NewAssistant(NewAIConfig(config), limiter, router, reducer, executor, provider, toggles, metrics.NewMetricsService(log), log)
	return &fixture{assistant: assistant, provider: provider, executor: executor, clock: clock, router: router}
}

func section(title, topic string) string {
	return fmt.Sprintf("## %s\n\n%s", title, strings.Repeat(fmt.Sprintf("Le rapport détaille %s sur l'exercice écoulé. ", topic), 10))
}

func reportDocument() string {
	return strings.Join([]string{
		section("Émissions de carbone", "les émissions de carbone du scope 1"),
		section("Diversité", "la diversité des équipes et la parité"),
		section("Gouvernance", "le conseil d'administration"),
		section("Gestion de l'eau", "la consommation d'eau des usines"),
		section("Achats responsables", "les fournisseurs et les achats"),
		section("Mobilité", "les déplacements des salariés"),
	}, "\n\n")
}

func turn(question string) Turn {
	return Turn{
		CallerID: "session-1",
		Messages: []platform.Message{platform.UserMessage(question)},
		Document: reportDocument(),
		Page:     "Environnement, page 12",
	}
}

func TestReplySimpleQuestionUsesCheapTierAndReducedContext(t *testing.T) {
	f := newFixture(t, features.StaticToggles{}, nil)

	reply, err := f.assistant.Reply(context.Background(), turn("Combien d'eau consomment les usines ?"))
	require.NoError(t, err)

	assert.Equal(t, "answer", reply.Text)
	assert.False(t, reply.Denied)
	assert.False(t, reply.Degraded)
	assert.NotEmpty(t, reply.OperationID)
	assert.Equal(t, routing.LevelSimple, reply.Decision.Complexity.Level)
	assert.Equal(t, f.router.Catalog().Cheap().ID, reply.Decision.SelectedModel.ID)
	assert.Equal(t, 3, reply.Context.ChunksUsed)
	assert.Less(t, reply.Context.OptimizedTokens, reply.Context.OriginalTokens)

	calls := f.provider.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, f.router.Catalog().Cheap().ID, calls[0].Model)
	assert.Contains(t, calls[0].System, "Gestion de l'eau")
	assert.Contains(t, calls[0].System, "Environnement, page 12")
	assert.Equal(t, 1024, calls[0].MaxTokens)

	expected := routing.CalculateCost(1000, 200, f.router.Catalog().Cheap())
	assert.True(t, expected.Equal(reply.Usage.Cost), "cost %s, expected %s", reply.Usage.Cost, expected)
}

func TestReplyReestimatesWithOptimizedContext(t *testing.T) {
	f := newFixture(t, features.StaticToggles{}, nil)
	messages := turn("Combien d'eau consomment les usines ?").Messages

	reply, err := f.assistant.Reply(context.Background(), turn("Combien d'eau consomment les usines ?"))
	require.NoError(t, err)

	initial := f.router.SelectModel(messages)
	assert.Less(t, reply.Decision.EstimatedInputTokens, initial.EstimatedInputTokens)
	assert.Equal(t, f.router.Reestimate(initial, messages, reply.Context.OptimizedTokens).EstimatedInputTokens, reply.Decision.EstimatedInputTokens)
}

func TestReplyComplexQuestionKeepsWholeReport(t *testing.T) {
	f := newFixture(t, features.StaticToggles{}, nil)

	reply, err := f.assistant.Reply(context.Background(), turn("Analyser en profondeur la stratégie ESG et comparer avec 2023"))
	require.NoError(t, err)

	assert.Equal(t, f.router.Catalog().Expensive().ID, reply.Decision.SelectedModel.ID)
	assert.Equal(t, reply.Context.OriginalTokens, reply.Context.OptimizedTokens)
	assert.Contains(t, f.provider.calls()[0].System, "Mobilité")
}

func TestReplyDeniedWhenBudgetExhausted(t *testing.T) {
	f := newFixture(t, features.StaticToggles{}, func(c *configuration.Config) {
		c.Throttler.Capacity = 2
	})

	for i := 0; i < 2; i++ {
		reply, err := f.assistant.Reply(context.Background(), turn("Bonjour"))
		require.NoError(t, err)
		require.False(t, reply.Denied)
	}

	reply, err := f.assistant.Reply(context.Background(), turn("Bonjour"))
	require.NoError(t, err)
	assert.True(t, reply.Denied)
	assert.Equal(t, 30*time.Second, reply.RetryAfter)
	assert.Contains(t, reply.Notice, "please wait 30s")
	assert.Len(t, f.provider.calls(), 2)

	f.clock.Advance(30 * time.Second)
	reply, err = f.assistant.Reply(context.Background(), turn("Bonjour"))
	require.NoError(t, err)
	assert.False(t, reply.Denied)
}

func TestReplyRetriesTransientFailure(t *testing.T) {
	f := newFixture(t, features.StaticToggles{}, nil)
	f.provider.answer = func(call int) (Completion, error) {
		if call == 1 {
			return Completion{}, errors.New("connection reset")
		}
		return Completion{Text: "recovered", InputTokens: 10, OutputTokens: 5, Cost: decimal.RequireFromString("0.01")}, nil
	}

	reply, err := f.assistant.Reply(context.Background(), turn("Bonjour"))
	require.NoError(t, err)

	assert.Equal(t, "recovered", reply.Text)
	assert.True(t, decimal.RequireFromString("0.01").Equal(reply.Usage.Cost))
	assert.Len(t, f.provider.calls(), 2)
	assert.Equal(t, int64(1), f.executor.Metrics().RetriedRequests)
}

func TestReplyDegradedWhenCircuitOpen(t *testing.T) {
	f := newFixture(t, features.StaticToggles{}, func(c *configuration.Config) {
		c.Resilience.FailureThreshold = 2
	})
	upstream := errors.New("upstream unavailable")
	f.provider.answer = func(int) (Completion, error) { return Completion{}, upstream }

	_, err := f.assistant.Reply(context.Background(), turn("Bonjour"))
	require.ErrorIs(t, err, upstream)
	require.Equal(t, resilience.CircuitOpen, f.executor.State())

	reply, err := f.assistant.Reply(context.Background(), turn("Bonjour"))
	require.NoError(t, err)
	assert.True(t, reply.Degraded)
	assert.Equal(t, DegradedNotice, reply.Notice)
	assert.Len(t, f.provider.calls(), 2)
}

func TestReplyDoesNotRetryClientErrors(t *testing.T) {
	f := newFixture(t, features.StaticToggles{}, nil)
	badRequest := errors.New("invalid model")
	f.provider.answer = func(int) (Completion, error) { return Completion{}, classifyStatus(badRequest, 400) }

	_, err := f.assistant.Reply(context.Background(), turn("Bonjour"))

	assert.ErrorIs(t, err, badRequest)
	assert.Len(t, f.provider.calls(), 1)
}

func TestReplyHonoursFeatureToggles(t *testing.T) {
	toggles := features.StaticToggles{
		features.FeatureContextOptimization: false,
		features.FeatureAdaptiveRouting:     false,
	}
	f := newFixture(t, toggles, nil)

	reply, err := f.assistant.Reply(context.Background(), turn("Combien d'eau consomment les usines ?"))
	require.NoError(t, err)

	assert.Equal(t, f.router.Catalog().Expensive().ID, reply.Decision.SelectedModel.ID)
	assert.Equal(t, 0, reply.Context.ChunksUsed)
	assert.Equal(t, reply.Context.OriginalTokens, reply.Context.OptimizedTokens)
	assert.Contains(t, f.provider.calls()[0].System, "Achats responsables")
}

func TestReplyWithoutDocument(t *testing.T) {
	f := newFixture(t, features.StaticToggles{}, nil)

	request := turn("Bonjour")
	request.Document, request.Page = "", ""
	reply, err := f.assistant.Reply(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, 0, reply.Context.OriginalTokens)
	assert.Equal(t, DefaultSystemPrompt, f.provider.calls()[0].System)
}
