package artificial

import (
	"context"
	"errors"
	"fmt"
	"reportassist/sources/features"
	"reportassist/sources/metrics"
	"reportassist/sources/optimizer"
	"reportassist/sources/platform"
	"reportassist/sources/resilience"
	"reportassist/sources/routing"
	"reportassist/sources/texting"
	"reportassist/sources/throttler"
	"reportassist/sources/tracing"
	"time"

	"github.com/google/uuid"
)

// Assistant runs one user turn through admission, routing, context reduction and the
// resilient provider call.
type Assistant struct {
	config    *AIConfig
	throttler *throttler.Throttler
	router    *routing.Router
	optimizer *optimizer.Optimizer
	executor  *resilience.Executor
	provider  Provider
	toggles   features.Toggles
	metrics   *metrics.MetricsService
	log       *tracing.Logger
}

func NewAssistant(
	config *AIConfig,
	throttler *throttler.Throttler,
	router *routing.Router,
	optimizer *optimizer.Optimizer,
	executor *resilience.Executor,
	provider Provider,
	toggles features.Toggles,
	metrics *metrics.MetricsService,
	log *tracing.Logger,
) *Assistant {
	return &Assistant{
		config:    config,
		throttler: throttler,
		router:    router,
		optimizer: optimizer,
		executor:  executor,
		provider:  provider,
		toggles:   toggles,
		metrics:   metrics,
		log:       log,
	}
}

// Reply answers a turn. A rate-limited caller or an open circuit is not an error: the reply
// carries a notice for the user instead. Errors are returned only when the provider call failed.
func (x *Assistant) Reply(ctx context.Context, turn Turn) (Reply, error) {
	started := time.Now()
	reply := Reply{OperationID: uuid.NewString()}
	log := x.log.With(tracing.CallerId, turn.CallerID, tracing.OperationId, reply.OperationID)
	defer tracing.ProfilePoint(log, "turn processed", "assistant.reply")()

	admission := x.throttler.Admit(ctx, turn.CallerID)
	x.metrics.RecordAdmission(admission.Allowed)
	if !admission.Allowed {
		reply.Denied = true
		reply.RetryAfter = admission.RetryAfter
		reply.Notice = fmt.Sprintf(RateLimitedNoticeTemplate, texting.Secondsify(admission.RetryAfter))
		x.metrics.RecordTurnHandled("denied")
		log.I("turn denied by rate limiter", tracing.RetryAfter, admission.RetryAfter.String())
		return reply, nil
	}

	decision := x.router.SelectModel(turn.Messages)
	if !x.toggles.IsEnabledDefault(features.FeatureAdaptiveRouting, true) {
		decision = x.router.Escalate(decision)
	}

	optimized := x.optimize(turn, decision.Complexity.Level)
	decision = x.router.Reestimate(decision, turn.Messages, optimized.Metadata.OptimizedTokens)
	reply.Decision, reply.Context = decision, optimized.Metadata

	x.metrics.RecordRoutingDecision(decision.SelectedModel.ID, string(decision.Complexity.Level), decision.PotentialSavings.InexactFloat64())
	x.metrics.RecordContextReduction(string(decision.Complexity.Level), optimized.Metadata.Reduction)

	log = log.With(tracing.AiModel, decision.SelectedModel.ID, tracing.AiProvider, x.provider.Name())
	log.I("turn routed",
		tracing.Complexity, string(decision.Complexity.Level),
		tracing.ComplexityScore, decision.Complexity.Score,
		tracing.AiAlternative, decision.AlternativeModel.ID,
		tracing.AiCost, texting.CurrencifyDecimal(decision.EstimatedCost),
		tracing.AiSavings, texting.CurrencifyDecimal(decision.PotentialSavings),
		tracing.ContextReduction, optimized.Metadata.Reduction,
		tracing.ContextChunks, optimized.Metadata.ChunksUsed,
		"reasoning", decision.Reasoning,
	)

	request := CompletionRequest{
		Model:     decision.SelectedModel.ID,
		System:    buildSystemPrompt(x.config.SystemPrompt, optimized.Context, turn.Page),
		Messages:  turn.Messages,
		MaxTokens: x.config.MaxOutputTokens,
	}

	completion, err := resilience.Execute(ctx, x.executor, reply.OperationID, func(ctx context.Context) (Completion, error) {
		return x.complete(ctx, log, request)
	})
	if err != nil {
		if errors.Is(err, resilience.ErrCircuitOpen) {
			reply.Degraded = true
			reply.Notice = DegradedNotice
			x.metrics.RecordTurnHandled("degraded")
			return reply, nil
		}

		x.metrics.RecordTurnHandled("failed")
		log.E("turn failed", tracing.InnerError, err)
		return reply, fmt.Errorf("assistant turn %s failed: %w", reply.OperationID, err)
	}

	if completion.Cost.IsZero() {
		completion.Cost = routing.CalculateCost(completion.InputTokens, completion.OutputTokens, decision.SelectedModel)
	}

	reply.Text, reply.Usage = completion.Text, completion
	x.metrics.RecordUsage(completion.InputTokens, 0, decision.SelectedModel.ID, "input")
	x.metrics.RecordUsage(completion.OutputTokens, completion.Cost.InexactFloat64(), decision.SelectedModel.ID, "output")
	x.metrics.RecordTurnHandled("answered")
	x.metrics.RecordTurnProcessingDuration(time.Since(started))

	return reply, nil
}

func (x *Assistant) complete(ctx context.Context, log *tracing.Logger, request CompletionRequest) (Completion, error) {
	if x.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = platform.ContextTimeoutVal(ctx, x.config.RequestTimeout)
		defer cancel()
	}

	started := time.Now()
	defer func() { x.metrics.RecordAIRequestDuration(time.Since(started), request.Model) }()

	return tracing.ReportExecutionForRE(log,
		func() (Completion, error) { return x.provider.Complete(ctx, request) },
		func(l *tracing.Logger) { l.D("provider call finished") },
	)
}

func (x *Assistant) optimize(turn Turn, level routing.Level) optimizer.OptimizedContext {
	if turn.Document == "" {
		return optimizer.OptimizedContext{}
	}

	if !x.toggles.IsEnabledDefault(features.FeatureContextOptimization, true) {
		tokens := texting.EstimateTokens(turn.Document)
		return optimizer.OptimizedContext{
			Context:  turn.Document,
			Metadata: optimizer.ContextMetadata{OriginalTokens: tokens, OptimizedTokens: tokens},
		}
	}

	return x.optimizer.OptimizeContext(turn.Document, latestQuery(turn.Messages), level)
}
