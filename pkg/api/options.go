package api

import (
	"math"
	"time"
)

// RetryPolicy describes how the orchestrator retries a failed activity.
// MaxAttempts includes the first attempt.
type RetryPolicy struct {
	MaxAttempts        int
	InitialInterval    time.Duration
	BackoffCoefficient float64
	MaxInterval        time.Duration
}

// DefaultRetryPolicy returns the policy applied to activities that do not
// declare one: 3 attempts, 1s initial interval, coefficient 2, 100s cap.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:        3,
		InitialInterval:    time.Second,
		BackoffCoefficient: 2.0,
		MaxInterval:        100 * time.Second,
	}
}

// Backoff returns the delay before the given retry attempt (1-based: the
// delay after the first failure is Backoff(1)). MaxInterval <= 0 means no cap.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt <= 0 || p.InitialInterval <= 0 {
		return 0
	}
	coeff := p.BackoffCoefficient
	if coeff <= 0 {
		coeff = 1
	}
	d := float64(p.InitialInterval) * math.Pow(coeff, float64(attempt-1))
	if p.MaxInterval > 0 && d > float64(p.MaxInterval) {
		return p.MaxInterval
	}
	if d > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(d)
}

// ActivityOptions configures how the orchestrator runs an activity.
// Zero durations mean "not set".
type ActivityOptions struct {
	TaskQueue       string
	ScheduleToClose time.Duration
	ScheduleToStart time.Duration
	StartToClose    time.Duration
	Retry           *RetryPolicy
}

// WithDefaults fills every unset field of o from def.
func (o ActivityOptions) WithDefaults(def ActivityOptions) ActivityOptions {
	if o.TaskQueue == "" {
		o.TaskQueue = def.TaskQueue
	}
	if o.ScheduleToClose == 0 {
		o.ScheduleToClose = def.ScheduleToClose
	}
	if o.ScheduleToStart == 0 {
		o.ScheduleToStart = def.ScheduleToStart
	}
	if o.StartToClose == 0 {
		o.StartToClose = def.StartToClose
	}
	if o.Retry == nil {
		o.Retry = def.Retry
	}
	return o
}
