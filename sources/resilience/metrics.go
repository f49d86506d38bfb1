package resilience

import (
	"slices"
	"time"
)

const latencySampleSize = 1000

// ResilienceMetrics is a point-in-time copy of the executor counters.
type ResilienceMetrics struct {
	State              CircuitState  `json:"state"`
	TotalRequests      int64         `json:"totalRequests"`
	SuccessfulRequests int64         `json:"successfulRequests"`
	FailedRequests     int64         `json:"failedRequests"`
	RetriedRequests    int64         `json:"retriedRequests"`
	RejectedRequests   int64         `json:"rejectedRequests"`
	CircuitOpens       int64         `json:"circuitOpens"`
	CircuitCloses      int64         `json:"circuitCloses"`
	RecentFailures     int           `json:"recentFailures"`
	AverageLatency     time.Duration `json:"averageLatency"`
	P95Latency         time.Duration `json:"p95Latency"`
}

type counters struct {
	total      int64
	successful int64
	failed     int64
	retried    int64
	rejected   int64
	opens      int64
	closes     int64
}

// latencySample keeps the most recent latencies in a ring.
type latencySample struct {
	values []time.Duration
	next   int
}

func (s *latencySample) add(d time.Duration) {
	if len(s.values) < latencySampleSize {
		s.values = append(s.values, d)
		return
	}
	s.values[s.next] = d
	s.next = (s.next + 1) % latencySampleSize
}

func (s *latencySample) average() time.Duration {
	if len(s.values) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range s.values {
		sum += v
	}
	return sum / time.Duration(len(s.values))
}

// p95 uses the nearest-rank method.
func (s *latencySample) p95() time.Duration {
	n := len(s.values)
	if n == 0 {
		return 0
	}
	sorted := slices.Clone(s.values)
	slices.Sort(sorted)

	rank := (95*n + 99) / 100
	return sorted[rank-1]
}

func (s *latencySample) len() int {
	return len(s.values)
}
