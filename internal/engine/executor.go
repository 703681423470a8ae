// Package engine drives workflow activations: it checks a context out of the
// pool, runs the workflow body against it, classifies the outcome and hands
// the context back.
package engine

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/petrijr/flowwire/internal/replay"
	"github.com/petrijr/flowwire/pkg/api"
	"github.com/petrijr/flowwire/pkg/codec"
)

// Config holds the parameters of an Executor.
type Config struct {
	// PoolSize bounds concurrently running activations.
	PoolSize int32

	// ArenaSize is the initial arena capacity of each pooled context.
	ArenaSize int

	// CommandCapacity is the initial command queue capacity.
	CommandCapacity int

	// Codec serializes payloads. Nil selects JSON.
	Codec api.Codec

	// Observer receives activation callbacks. Nil disables them.
	Observer api.Observer

	// Clock supplies the activation time when a request does not carry one.
	// Nil selects time.Now.
	Clock func() time.Time

	// AcquireTimeout bounds how long an activation waits for a free context.
	// Zero waits as long as the caller's context allows.
	AcquireTimeout time.Duration

	// StrictActivities rejects activity names that are not registered.
	StrictActivities bool
}

// Request describes one activation.
type Request struct {
	RunID string

	// Workflow and Version select the registered workflow for Execute.
	Workflow string
	Version  string

	// History is the run's recorded events. It is borrowed for the duration
	// of the call.
	History []byte

	// Input is the codec-encoded workflow input for Execute.
	Input []byte

	// Seed drives the deterministic random stream. Zero derives a seed from
	// RunID so every activation of a run sees the same stream.
	Seed int64

	// Now fixes the workflow clock. Zero uses Config.Clock.
	Now time.Time
}

// RunFunc is a workflow body bound to its input.
type RunFunc func(wctx api.WorkflowContext) (any, error)

// Executor runs activations. It is safe for concurrent use.
type Executor struct {
	pool           *replay.Pool
	registry       *Registry
	codec          api.Codec
	observer       api.Observer
	clock          func() time.Time
	acquireTimeout time.Duration
}

// NewExecutor creates an Executor with its own Registry and context pool.
func NewExecutor(cfg Config) (*Executor, error) {
	if cfg.Codec == nil {
		cfg.Codec = codec.JSON{}
	}
	if cfg.Observer == nil {
		cfg.Observer = api.NoopObserver{}
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	reg := NewRegistry()
	pool, err := replay.NewPool(cfg.PoolSize, replay.Options{
		ArenaSize:        cfg.ArenaSize,
		CommandCapacity:  cfg.CommandCapacity,
		Codec:            cfg.Codec,
		Activities:       reg,
		StrictActivities: cfg.StrictActivities,
	})
	if err != nil {
		return nil, fmt.Errorf("create context pool: %w", err)
	}

	return &Executor{
		pool:           pool,
		registry:       reg,
		codec:          cfg.Codec,
		observer:       cfg.Observer,
		clock:          cfg.Clock,
		acquireTimeout: cfg.AcquireTimeout,
	}, nil
}

// Registry returns the executor's workflow and activity registry.
func (e *Executor) Registry() *Registry { return e.registry }

// Codec returns the payload codec.
func (e *Executor) Codec() api.Codec { return e.codec }

// Close releases the context pool. Activations in flight finish first.
func (e *Executor) Close() { e.pool.Close() }

// ExecuteBatch runs one activation of run against req.History.
//
// The returned error is non-nil only when no context could be acquired.
// Workflow failures, including panics, are reported through a Failed result.
// Commands and payloads are captured for every status.
func (e *Executor) ExecuteBatch(ctx context.Context, req Request, run RunFunc) (*api.ExecutionResult, error) {
	acquireCtx := ctx
	if e.acquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, e.acquireTimeout)
		defer cancel()
	}

	wctx, err := e.pool.Get(acquireCtx)
	if err != nil {
		return nil, fmt.Errorf("acquire workflow context: %w", err)
	}
	defer e.pool.Put(wctx)

	seed := SeedFor(req)
	now := req.Now
	if now.IsZero() {
		now = e.clock()
	}
	wctx.Initialize(req.History, seed, now, ctx)

	info := &api.ActivationInfo{
		RunID:        req.RunID,
		Workflow:     req.Workflow,
		HistoryBytes: len(req.History),
		Seed:         seed,
		StartedAt:    now,
	}
	e.observer.OnActivationStart(ctx, info)

	start := time.Now()
	out, runErr := invoke(run, wctx.Handle())

	res := &api.ExecutionResult{
		RunID:    req.RunID,
		Commands: wctx.Commands().Clone(),
		Payloads: bytes.Clone(wctx.Payloads()),
		Replayed: wctx.Replayed(),
	}
	classify(res, out, runErr)
	res.Duration = time.Since(start)

	e.observer.OnActivationFinished(ctx, info, res)
	return res, nil
}

// Execute runs one activation of the registered workflow named by req.
func (e *Executor) Execute(ctx context.Context, req Request) (*api.ExecutionResult, error) {
	def, err := e.registry.Workflow(req.Workflow, req.Version)
	if err != nil {
		return nil, err
	}
	input, err := e.decodeInput(def.InputType, req.Input)
	if err != nil {
		return nil, fmt.Errorf("decode input of workflow %q: %w", def.Name, err)
	}
	if req.Version == "" {
		req.Version = def.Version
	}
	return e.ExecuteBatch(ctx, req, func(wctx api.WorkflowContext) (any, error) {
		return def.Fn(wctx, input)
	})
}

// SeedFor returns the random seed an activation of req uses.
func SeedFor(req Request) int64 {
	if req.Seed != 0 || req.RunID == "" {
		return req.Seed
	}
	return int64(xxhash.Sum64String(req.RunID))
}

func (e *Executor) decodeInput(typ reflect.Type, data []byte) (any, error) {
	if typ == nil {
		if len(data) == 0 {
			return nil, nil
		}
		var v any
		if err := e.codec.Decode(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	ptr := reflect.New(typ)
	if len(data) > 0 {
		if err := e.codec.Decode(data, ptr.Interface()); err != nil {
			return nil, err
		}
	}
	return ptr.Elem().Interface(), nil
}

func invoke(run RunFunc, wctx api.WorkflowContext) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			if rerr, ok := r.(error); ok {
				err = fmt.Errorf("workflow panicked: %w", rerr)
				return
			}
			err = fmt.Errorf("workflow panicked: %v", r)
		}
	}()
	return run(wctx)
}

func classify(res *api.ExecutionResult, out any, err error) {
	if err == nil {
		res.Status = api.StatusCompleted
		res.Output = out
		return
	}
	if api.IsSuspended(err) {
		res.Status = api.StatusSuspended
		return
	}
	if input, ok := api.IsContinueAsNew(err); ok {
		res.Status = api.StatusContinuedAsNew
		res.Output = input
		return
	}
	res.Status = api.StatusFailed
	res.Err = err
}
