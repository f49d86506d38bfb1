package resilience

import "fmt"

type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitClosed:
		return "CLOSED"
	case CircuitOpen:
		return "OPEN"
	case CircuitHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

func (s CircuitState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *CircuitState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "CLOSED":
		*s = CircuitClosed
	case "OPEN":
		*s = CircuitOpen
	case "HALF_OPEN":
		*s = CircuitHalfOpen
	default:
		return fmt.Errorf("unknown circuit state %q", text)
	}
	return nil
}
