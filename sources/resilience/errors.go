package resilience

import (
	"errors"
	"fmt"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitOpenError is returned without invoking the operation while the breaker rejects traffic.
type CircuitOpenError struct {
	OperationID string
	State       CircuitState
	RetryAfter  time.Duration
}

func (e *CircuitOpenError) Error() string {
	return fmt.Sprintf("operation %s rejected: circuit breaker is %s, next probe in %s", e.OperationID, e.State, e.RetryAfter)
}

func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

type nonRetryableError struct {
	err error
}

func (e *nonRetryableError) Error() string {
	return e.err.Error()
}

func (e *nonRetryableError) Unwrap() error {
	return e.err
}

// NonRetryable marks err so the executor gives up after the current attempt.
// The failure still counts towards the breaker.
func NonRetryable(err error) error {
	if err == nil {
		return nil
	}
	return &nonRetryableError{err: err}
}

func IsNonRetryable(err error) bool {
	var target *nonRetryableError
	return errors.As(err, &target)
}
