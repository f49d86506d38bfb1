package resilience

import (
	"reportassist/sources/configuration"
	"time"
)

type ResilienceConfig struct {
	FailureThreshold int
	ResetTimeout     time.Duration
	MonitoringPeriod time.Duration

	MaxRetries        int
	InitialDelay      time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
	Jitter            bool

	// CancelOnContextDone makes a cancelled context abort the backoff sleep.
	// When false, retries run to completion even if the caller went away.
	CancelOnContextDone bool
}

func DefaultResilienceConfig() *ResilienceConfig {
	return &ResilienceConfig{
		FailureThreshold:    5,
		ResetTimeout:        60 * time.Second,
		MonitoringPeriod:    120 * time.Second,
		MaxRetries:          3,
		InitialDelay:        time.Second,
		MaxDelay:            10 * time.Second,
		BackoffMultiplier:   2,
		Jitter:              true,
		CancelOnContextDone: true,
	}
}

func NewResilienceConfig(config *configuration.Config) *ResilienceConfig {
	c := config.Resilience
	x := DefaultResilienceConfig()

	if c.FailureThreshold > 0 {
		x.FailureThreshold = c.FailureThreshold
	}
	if c.ResetTimeout > 0 {
		x.ResetTimeout = c.ResetTimeout
	}
	if c.MonitoringPeriod > 0 {
		x.MonitoringPeriod = c.MonitoringPeriod
	}
	if c.MaxRetries >= 0 {
		x.MaxRetries = c.MaxRetries
	}
	if c.InitialDelay > 0 {
		x.InitialDelay = c.InitialDelay
	}
	if c.MaxDelay > 0 {
		x.MaxDelay = c.MaxDelay
	}
	if c.BackoffMultiplier >= 1 {
		x.BackoffMultiplier = c.BackoffMultiplier
	}
	if c.Jitter != nil {
		x.Jitter = *c.Jitter
	}
	if c.CancelOnContextDone != nil {
		x.CancelOnContextDone = *c.CancelOnContextDone
	}

	return x
}
