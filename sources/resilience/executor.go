package resilience

import (
	"context"
	"fmt"
	"math"
	"reportassist/sources/platform"
	"reportassist/sources/tracing"
	"sync"
	"time"
)

const jitterRatio = 0.25

// admission is what a call was let in under. Results and retries of a call admitted before
// the circuit last opened no longer count towards the breaker.
type admission struct {
	probe      bool
	generation uint64
}

type failureRecord struct {
	at      time.Time
	message string
}

// Executor wraps calls to a flaky upstream with a circuit breaker and bounded
// exponential-backoff retries. One instance is shared by every caller of that upstream.
type Executor struct {
	mu     sync.Mutex
	config *ResilienceConfig
	clock  platform.Clock
	sleep  Sleeper
	random Random
	log    *tracing.Logger

	state    CircuitState
	openedAt time.Time
	// generation advances every time the circuit opens.
	generation uint64
	probing    bool
	failures   []failureRecord

	counters  counters
	latencies latencySample
}

func NewExecutor(config *ResilienceConfig, clock platform.Clock, sleeper Sleeper, random Random, log *tracing.Logger) *Executor {
	return &Executor{
		config: config,
		clock:  clock,
		sleep:  sleeper,
		random: random,
		log:    log,
		state:  CircuitClosed,
	}
}

// Execute runs op with breaker admission and retries. While the breaker is open op is not
// called and a *CircuitOpenError is returned. After the last attempt the last error is returned wrapped.
func (x *Executor) Execute(ctx context.Context, operationID string, op func(ctx context.Context) error) error {
	log := x.log.With(tracing.OperationId, operationID)

	admitted, err := x.admit(operationID)
	if err != nil {
		log.W("operation rejected by circuit breaker", tracing.InnerError, err)
		return err
	}
	if admitted.probe {
		defer x.finishProbe(admitted)
	}

	sleepCtx := ctx
	if !x.config.CancelOnContextDone {
		sleepCtx = context.WithoutCancel(ctx)
	}

	var lastErr error
	attempts := x.config.MaxRetries + 1

	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := x.jittered(x.Backoff(attempt))
			log.I("retrying operation", tracing.AiAttempt, attempt+1, tracing.AiBackoff, delay.String())

			if err := x.sleep.Sleep(sleepCtx, delay); err != nil {
				return fmt.Errorf("operation %s abandoned during backoff: %w: %w", operationID, err, lastErr)
			}
			x.markRetry()

			if !x.stillAdmitted(admitted) {
				log.W("circuit changed while waiting, giving up", tracing.InnerError, lastErr)
				return fmt.Errorf("operation %s aborted, circuit opened: %w", operationID, lastErr)
			}
		}

		start := x.clock.Now()
		lastErr = op(ctx)
		if lastErr == nil {
			x.onSuccess(admitted, x.clock.Now().Sub(start))
			return nil
		}

		x.onFailure(admitted, lastErr)
		log.W("operation attempt failed", tracing.AiAttempt, attempt+1, tracing.InnerError, lastErr)

		if IsNonRetryable(lastErr) {
			return fmt.Errorf("operation %s failed: %w", operationID, lastErr)
		}
	}

	log.E("operation failed after all attempts", tracing.AiAttempt, attempts, tracing.InnerError, lastErr)
	return fmt.Errorf("operation %s failed after %d attempts: %w", operationID, attempts, lastErr)
}

// Execute is the value-returning form of Executor.Execute.
func Execute[T any](ctx context.Context, x *Executor, operationID string, op func(ctx context.Context) (T, error)) (T, error) {
	var result T
	err := x.Execute(ctx, operationID, func(ctx context.Context) error {
		value, err := op(ctx)
		if err != nil {
			return err
		}
		result = value
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// Backoff is the un-jittered delay slept before attempt number attempt, counted from 0 for the
// first call: min(InitialDelay * BackoffMultiplier^attempt, MaxDelay).
func (x *Executor) Backoff(attempt int) time.Duration {
	delay := float64(x.config.InitialDelay) * math.Pow(x.config.BackoffMultiplier, float64(attempt))
	if delay > float64(x.config.MaxDelay) || math.IsInf(delay, 1) {
		return x.config.MaxDelay
	}
	return time.Duration(delay)
}

func (x *Executor) jittered(delay time.Duration) time.Duration {
	if !x.config.Jitter {
		return delay
	}
	spread := (x.random()*2 - 1) * jitterRatio
	return time.Duration(float64(delay) * (1 + spread))
}

func (x *Executor) admit(operationID string) (admission, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.counters.total++
	now := x.clock.Now()

	if x.state == CircuitOpen && now.Sub(x.openedAt) >= x.config.ResetTimeout {
		x.transition(CircuitHalfOpen)
	}

	switch x.state {
	case CircuitOpen:
		x.counters.rejected++
		return admission{}, &CircuitOpenError{
			OperationID: operationID,
			State:       x.state,
			RetryAfter:  x.config.ResetTimeout - now.Sub(x.openedAt),
		}
	case CircuitHalfOpen:
		if x.probing {
			x.counters.rejected++
			return admission{}, &CircuitOpenError{OperationID: operationID, State: x.state}
		}
		x.probing = true
		return admission{probe: true, generation: x.generation}, nil
	default:
		return admission{generation: x.generation}, nil
	}
}

// stillAdmitted reports whether a call woken from backoff may run another attempt. The probe keeps
// its slot while the circuit stays half-open; any other call needs the circuit closed and never
// reopened since it was admitted.
func (x *Executor) stillAdmitted(a admission) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	if x.generation != a.generation {
		return false
	}
	switch x.state {
	case CircuitClosed:
		return true
	case CircuitHalfOpen:
		return a.probe
	default:
		return false
	}
}

func (x *Executor) current(a admission) bool {
	return x.generation == a.generation
}

func (x *Executor) finishProbe(a admission) {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.current(a) {
		x.probing = false
	}
}

func (x *Executor) markRetry() {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.counters.retried++
}

func (x *Executor) onSuccess(a admission, latency time.Duration) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.counters.successful++
	x.latencies.add(latency)
	if !x.current(a) {
		return
	}

	x.failures = nil
	if x.state == CircuitHalfOpen && a.probe {
		x.transition(CircuitClosed)
	}
}

func (x *Executor) onFailure(a admission, err error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	now := x.clock.Now()
	x.counters.failed++
	x.failures = append(x.failures, failureRecord{at: now, message: err.Error()})
	x.pruneFailures(now)

	switch x.state {
	case CircuitHalfOpen:
		if a.probe && x.current(a) {
			x.transition(CircuitOpen)
		}
	case CircuitClosed:
		if len(x.failures) >= x.config.FailureThreshold {
			x.transition(CircuitOpen)
		}
	}
}

func (x *Executor) pruneFailures(now time.Time) {
	cutoff := now.Add(-x.config.MonitoringPeriod)
	kept := x.failures[:0]
	for _, f := range x.failures {
		if f.at.After(cutoff) {
			kept = append(kept, f)
		}
	}
	x.failures = kept
}

// transition must be called with mu held.
func (x *Executor) transition(to CircuitState) {
	from := x.state
	if from == to {
		return
	}
	x.state = to

	switch to {
	case CircuitOpen:
		x.openedAt = x.clock.Now()
		x.generation++
		x.probing = false
		x.counters.opens++
		x.log.W("circuit breaker opened", tracing.CircuitState, to.String(), "recent_failures", len(x.failures))
	case CircuitClosed:
		x.failures = nil
		x.probing = false
		x.counters.closes++
		x.log.I("circuit breaker closed", tracing.CircuitState, to.String())
	case CircuitHalfOpen:
		x.log.I("circuit breaker probing upstream", tracing.CircuitState, to.String())
	}
}

func (x *Executor) State() CircuitState {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state
}

// ResetCircuit forces the breaker closed and forgets recorded failures.
func (x *Executor) ResetCircuit() {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.transition(CircuitClosed)
	x.failures = nil
	x.probing = false
	x.log.I("circuit breaker reset", tracing.CircuitState, x.state.String())
}

func (x *Executor) Metrics() ResilienceMetrics {
	x.mu.Lock()
	defer x.mu.Unlock()

	return ResilienceMetrics{
		State:              x.state,
		TotalRequests:      x.counters.total,
		SuccessfulRequests: x.counters.successful,
		FailedRequests:     x.counters.failed,
		RetriedRequests:    x.counters.retried,
		RejectedRequests:   x.counters.rejected,
		CircuitOpens:       x.counters.opens,
		CircuitCloses:      x.counters.closes,
		RecentFailures:     len(x.failures),
		AverageLatency:     x.latencies.average(),
		P95Latency:         x.latencies.p95(),
	}
}
