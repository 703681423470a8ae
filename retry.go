package flowwire

import "time"

// RetryBuilder provides a fluent way to construct RetryPolicy values
// for ActivityOptions.Retry.
type RetryBuilder struct {
	policy RetryPolicy
}

// Retry creates a RetryBuilder with the given maxAttempts and the default
// backoff (1s initial, coefficient 2, 100s cap).
//
// maxAttempts <= 0 is treated as 1 (no retries).
func Retry(maxAttempts int) RetryBuilder {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	p := DefaultRetryPolicy()
	p.MaxAttempts = maxAttempts
	return RetryBuilder{policy: p}
}

// WithExponentialBackoff configures exponential backoff:
//
//   - initial is the delay before the first retry.
//   - coefficient > 1 grows the delay each attempt (default 2.0 if <= 0).
//   - max caps the delay; if <= 0, there is no cap.
//
// Example:
//
//	Retry(3).WithExponentialBackoff(100*time.Millisecond, 2.0, 2*time.Second)
func (r RetryBuilder) WithExponentialBackoff(initial time.Duration, coefficient float64, max time.Duration) RetryBuilder {
	p := r.policy
	p.InitialInterval = initial
	p.MaxInterval = max
	if coefficient <= 0 {
		coefficient = 2.0
	}
	p.BackoffCoefficient = coefficient
	return RetryBuilder{policy: p}
}

// WithConstantBackoff configures a constant backoff between retries.
func (r RetryBuilder) WithConstantBackoff(delay time.Duration) RetryBuilder {
	p := r.policy
	p.InitialInterval = delay
	p.MaxInterval = 0
	p.BackoffCoefficient = 1.0
	return RetryBuilder{policy: p}
}

// Immediate disables any delay between retries.
// Retries will still respect MaxAttempts.
func (r RetryBuilder) Immediate() RetryBuilder {
	p := r.policy
	p.InitialInterval = 0
	p.MaxInterval = 0
	p.BackoffCoefficient = 0
	return RetryBuilder{policy: p}
}

// Policy returns the underlying RetryPolicy.
func (r RetryBuilder) Policy() RetryPolicy {
	return r.policy
}

// Ptr returns a pointer to a copy of the policy, ready for
// ActivityOptions.Retry.
func (r RetryBuilder) Ptr() *RetryPolicy {
	p := r.policy
	return &p
}
