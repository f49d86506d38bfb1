package throttler

import (
	"context"
	"fmt"
	"reportassist/sources/persistence"
	"reportassist/sources/platform"
	"reportassist/sources/tracing"
	"sync"
	"time"
)

type registered struct {
	bucket   *TokenBucket
	lastUsed time.Time
}

// Throttler hands out one token bucket per caller, keyed under the deployment namespace.
// Buckets untouched for EvictAfter are dropped from memory and restored from storage on next use.
type Throttler struct {
	mu        sync.Mutex
	buckets   map[string]*registered
	lastSweep time.Time
	config    *ThrottlerConfig
	storage   persistence.KeyValueStore
	clock     platform.Clock
	log       *tracing.Logger
}

func NewThrottler(config *ThrottlerConfig, storage persistence.KeyValueStore, clock platform.Clock, log *tracing.Logger) *Throttler {
	return &Throttler{
		buckets:   make(map[string]*registered),
		lastSweep: clock.Now(),
		config:    config,
		storage:   storage,
		clock:     clock,
		log:       log,
	}
}

func (x *Throttler) Key(caller string) string {
	return fmt.Sprintf("%s:rate_limiter:%s", x.config.Namespace, caller)
}

func (x *Throttler) Bucket(ctx context.Context, caller string) *TokenBucket {
	x.mu.Lock()
	defer x.mu.Unlock()

	now := x.clock.Now()
	x.sweep(now)

	if entry, ok := x.buckets[caller]; ok {
		entry.lastUsed = now
		return entry.bucket
	}

	bucket := NewTokenBucket(ctx, x.Key(caller), x.config, x.storage, x.clock, x.log.With(tracing.CallerId, caller))
	x.buckets[caller] = &registered{bucket: bucket, lastUsed: now}
	return bucket
}

// sweep must be called with mu held. It runs at most once per eviction age.
func (x *Throttler) sweep(now time.Time) {
	age := x.config.evictAfter()
	if now.Sub(x.lastSweep) < age {
		return
	}
	x.lastSweep = now

	evicted := 0
	for caller, entry := range x.buckets {
		if now.Sub(entry.lastUsed) >= age {
			delete(x.buckets, caller)
			evicted++
		}
	}
	if evicted > 0 {
		x.log.D("evicted idle rate limiter buckets", "evicted", evicted, "remaining", len(x.buckets))
	}
}

// Tracked reports how many callers currently hold an in-memory bucket.
func (x *Throttler) Tracked() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.buckets)
}

func (x *Throttler) Admit(ctx context.Context, caller string) Admission {
	return x.Bucket(ctx, caller).CheckAndConsume(ctx)
}

func (x *Throttler) Reset(ctx context.Context, caller string) {
	x.Bucket(ctx, caller).Reset(ctx)
}
