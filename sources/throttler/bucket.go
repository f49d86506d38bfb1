package throttler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"reportassist/sources/persistence"
	"reportassist/sources/platform"
	"reportassist/sources/tracing"
	"sync"
	"time"
)

// Admission is the outcome of one admission check. A denial is a normal result, not an error.
type Admission struct {
	Allowed         bool
	RemainingTokens int
	RetryAfter      time.Duration
}

type bucketState struct {
	Tokens     float64 `json:"tokens"`
	LastUpdate int64   `json:"lastUpdate"`
}

// TokenBucket is a persisted token bucket. Every operation reads the stored state, mutates it and
// writes it back under one lock, so instances sharing a key do not lose updates within a process.
// A missing, corrupted or unreachable store never blocks a caller: the bucket falls back to full.
type TokenBucket struct {
	mu       sync.Mutex
	key      string
	capacity float64
	window   time.Duration
	ttl      time.Duration
	storage  persistence.KeyValueStore
	clock    platform.Clock
	log      *tracing.Logger

	tokens     float64
	lastRefill time.Time
}

func NewTokenBucket(
	ctx context.Context,
	key string,
	config *ThrottlerConfig,
	storage persistence.KeyValueStore,
	clock platform.Clock,
	log *tracing.Logger,
) *TokenBucket {
	capacity := config.Capacity
	if capacity <= 0 {
		capacity = 10
	}
	window := config.RefillWindow
	if window <= 0 {
		window = time.Minute
	}

	x := &TokenBucket{
		key:      key,
		capacity: float64(capacity),
		window:   window,
		ttl:      config.IdleTTL,
		storage:  storage,
		clock:    clock,
		log:      log.With(tracing.StorageKey, key),
	}
	x.tokens, x.lastRefill = x.capacity, clock.Now()

	x.mu.Lock()
	defer x.mu.Unlock()
	x.restore(ctx)

	return x
}

// CheckAndConsume refills the bucket for the elapsed time and takes one token if available.
func (x *TokenBucket) CheckAndConsume(ctx context.Context) Admission {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.restore(ctx)
	now := x.clock.Now()
	x.tokens, x.lastRefill = x.refilled(now), now

	if x.tokens >= 1 {
		x.tokens--
		x.persist(ctx)
		return Admission{Allowed: true, RemainingTokens: int(math.Floor(x.tokens))}
	}

	x.persist(ctx)
	retryAfter := x.retryAfter()
	x.log.I("rate limit exceeded", tracing.RemainingTokens, x.tokens, tracing.RetryAfter, retryAfter.String())

	return Admission{Allowed: false, RemainingTokens: 0, RetryAfter: retryAfter}
}

// RemainingCapacity reports the current token count including refill, without consuming.
func (x *TokenBucket) RemainingCapacity(ctx context.Context) float64 {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.restore(ctx)
	return x.refilled(x.clock.Now())
}

// Reset fills the bucket and persists it immediately.
func (x *TokenBucket) Reset(ctx context.Context) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.tokens, x.lastRefill = x.capacity, x.clock.Now()
	x.persist(ctx)
	x.log.I("rate limiter reset")
}

func (x *TokenBucket) Capacity() int {
	return int(x.capacity)
}

func (x *TokenBucket) refilled(now time.Time) float64 {
	elapsed := now.Sub(x.lastRefill)
	if elapsed <= 0 {
		return x.tokens
	}
	added := elapsed.Seconds() * x.capacity / x.window.Seconds()
	return math.Min(x.capacity, x.tokens+added)
}

// retryAfter is the whole number of seconds until one token is back.
func (x *TokenBucket) retryAfter() time.Duration {
	missing := 1 - x.tokens
	seconds := math.Ceil(missing * x.window.Seconds() / x.capacity)
	return time.Duration(math.Max(1, seconds)) * time.Second
}

func (x *TokenBucket) restore(ctx context.Context) {
	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	raw, err := x.storage.Get(ctx, x.key)
	if errors.Is(err, persistence.ErrNotFound) {
		x.tokens, x.lastRefill = x.capacity, x.clock.Now()
		return
	}
	if err != nil {
		x.log.W("failed to read rate limiter state, using in-memory state", tracing.InnerError, err)
		return
	}

	var state bucketState
	if err := json.Unmarshal([]byte(raw), &state); err != nil || state.LastUpdate <= 0 {
		x.log.W("corrupted rate limiter state, resetting bucket", "raw", raw, tracing.InnerError, err)
		x.tokens, x.lastRefill = x.capacity, x.clock.Now()
		return
	}

	x.tokens = math.Max(0, math.Min(x.capacity, state.Tokens))
	x.lastRefill = time.UnixMilli(state.LastUpdate)
}

func (x *TokenBucket) persist(ctx context.Context) {
	ctx, cancel := platform.ContextTimeout(ctx)
	defer cancel()

	raw, err := json.Marshal(bucketState{Tokens: x.tokens, LastUpdate: x.lastRefill.UnixMilli()})
	if err != nil {
		x.log.E("failed to encode rate limiter state", tracing.InnerError, err)
		return
	}
	if err := x.storage.Set(ctx, x.key, string(raw), x.ttl); err != nil {
		x.log.W("failed to persist rate limiter state", tracing.InnerError, err)
	}
}
