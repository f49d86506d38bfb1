package tracing

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

const (
	ExecutionTime     = "exe_time"
	OutsiderKind      = "outsider_kind"
	ProxyUrl          = "proxy_url"
	ProxyRes          = "proxy_res"
	AiKind            = "ai_kind"
	AiModel           = "ai_model"
	AiAlternative     = "ai_alternative"
	AiAttempt         = "ai_attempt"
	AiBackoff         = "ai_backoff"
	AiTokens          = "ai_tokens"
	AiCost            = "ai_cost"
	AiSavings         = "ai_savings"
	AiProvider        = "ai_provider"
	InnerError        = "inner_error"
	CallerId          = "caller_id"
	OperationId       = "operation_id"
	StorageKey        = "storage_key"
	Complexity        = "complexity"
	ComplexityScore   = "complexity_score"
	CircuitState      = "circuit_state"
	RemainingTokens   = "remaining_tokens"
	RetryAfter        = "retry_after"
	ContextReduction  = "context_reduction"
	ContextChunks     = "context_chunks"
	Scope             = "scope"
)

type Logger struct {
	log *slog.Logger
	ctx context.Context
}

func NewConsoleLogger() *Logger {
	logger := NewLogger(os.Stdout, slog.LevelDebug)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	logger.log.InfoContext(ctx, "Initializing logger")
	return logger
}

// NewLogger builds a JSON logger writing to w. Tests pass io.Discard or a buffer.
func NewLogger(w io.Writer, level slog.Level) *Logger {
	return &Logger{
		log: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})),
		ctx: context.Background(),
	}
}

func NewNopLogger() *Logger {
	return NewLogger(io.Discard, slog.LevelError+1)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{log: l.log.With(args...), ctx: l.ctx}
}

func (l *Logger) D(msg string, args ...any) {
	l.log.DebugContext(l.ctx, msg, args...)
}

func (l *Logger) I(msg string, args ...any) {
	l.log.InfoContext(l.ctx, msg, args...)
}

func (l *Logger) W(msg string, args ...any) {
	l.log.WarnContext(l.ctx, msg, args...)
}

func (l *Logger) E(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
}

func (l *Logger) F(msg string, args ...any) {
	l.log.ErrorContext(l.ctx, msg, args...)
	panic(msg)
}
