package throttler

import (
	"reportassist/sources/configuration"
	"time"
)

type ThrottlerConfig struct {
	Namespace string
	Capacity  int
	// RefillWindow is the time an empty bucket needs to become full again.
	RefillWindow time.Duration
	// IdleTTL lets the store forget buckets nobody touched for a while.
	IdleTTL time.Duration
	// EvictAfter drops idle buckets from memory. Zero means one RefillWindow, after which an idle
	// bucket is full again whatever the store holds.
	EvictAfter time.Duration
}

func NewThrottlerConfig(config *configuration.Config) *ThrottlerConfig {
	return &ThrottlerConfig{
		Namespace:    config.Throttler.Namespace,
		Capacity:     config.Throttler.Capacity,
		RefillWindow: config.Throttler.RefillWindow,
		IdleTTL:      config.Throttler.IdleTTL,
		EvictAfter:   config.Throttler.EvictAfter,
	}
}

func (x *ThrottlerConfig) evictAfter() time.Duration {
	if x.EvictAfter > 0 {
		return x.EvictAfter
	}
	if x.RefillWindow > 0 {
		return x.RefillWindow
	}
	return time.Minute
}
