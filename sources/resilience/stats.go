package resilience

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Stats renders the metrics for an operations dashboard.
func (x *Executor) Stats() string {
	m := x.Metrics()

	var b strings.Builder
	fmt.Fprintf(&b, "Circuit: %s\n", m.State)
	fmt.Fprintf(&b, "Requests: %s total, %s succeeded, %s failed attempts, %s rejected\n",
		humanize.Comma(m.TotalRequests),
		humanize.Comma(m.SuccessfulRequests),
		humanize.Comma(m.FailedRequests),
		humanize.Comma(m.RejectedRequests),
	)
	fmt.Fprintf(&b, "Retries: %s\n", humanize.Comma(m.RetriedRequests))
	fmt.Fprintf(&b, "Success rate: %s\n", successRate(m))
	fmt.Fprintf(&b, "Latency: avg %s, p95 %s\n", m.AverageLatency, m.P95Latency)
	fmt.Fprintf(&b, "Circuit opened %s times, closed %s times\n", humanize.Comma(m.CircuitOpens), humanize.Comma(m.CircuitCloses))

	return b.String()
}

func successRate(m ResilienceMetrics) string {
	attempts := m.SuccessfulRequests + m.FailedRequests
	if attempts == 0 {
		return "n/a"
	}
	return humanize.FormatFloat("#.##", float64(m.SuccessfulRequests)*100/float64(attempts)) + "%"
}
