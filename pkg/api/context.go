package api

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// Random is the deterministic random-number surface exposed to workflows.
type Random interface {
	Int() int
	Intn(n int) int
	IntRange(lo, hi int) int
	Float64() float64
	Uint64() uint64
	Read(p []byte) (int, error)
}

// Codec serializes activity inputs, timer durations and activity results.
// Encode must write the whole value to w.
type Codec interface {
	Name() string
	Encode(w io.Writer, v any) error
	Decode(data []byte, v any) error
}

// WorkflowContext is the only gateway workflow code has to time, identity,
// randomness, activities and timers.
//
// A context is bound to one activation. Once the activation ends, accessors
// panic with ErrInvalidContext and operations return it.
type WorkflowContext interface {
	// Now returns the activation's fixed clock value.
	Now() time.Time

	// NewGUID draws a 16-byte identifier from the deterministic random stream.
	NewGUID() uuid.UUID

	// Random returns the activation's deterministic generator.
	Random() Random

	// Cancellation returns the activation's cancellation signal.
	Cancellation() context.Context

	// IsReplaying reports whether unread history remains.
	IsReplaying() bool

	// CallActivity resolves an activity from history or schedules it.
	// opts may be nil. The returned error is reserved for misuse and
	// encoding failures; the tri-state result is in the Resolution.
	CallActivity(name string, input any, opts *ActivityOptions) (Resolution, error)

	// ExecuteActivity is CallActivity plus result decoding. A nil result
	// discards the recorded payload. A scheduled activity returns a
	// *SuspendedError.
	ExecuteActivity(name string, input any, opts *ActivityOptions, result any) error

	// StartTimer resolves a durable timer from history or schedules it.
	// ctx is observed for cancellation in addition to the activation's own
	// signal; nil means the activation signal only.
	StartTimer(ctx context.Context, d time.Duration) (Resolution, error)

	// Delay is StartTimer(nil, d) converted with Resolution.Err.
	Delay(d time.Duration) error

	// DelayContext is StartTimer(ctx, d) converted with Resolution.Err.
	DelayContext(ctx context.Context, d time.Duration) error
}
