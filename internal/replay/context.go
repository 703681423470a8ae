// Package replay implements the workflow context: the object workflow code
// talks to during an activation. It resolves operations from history and,
// past the end of history, records commands into the activation arena.
package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/puddle/v2"

	"github.com/petrijr/flowwire/internal/arena"
	"github.com/petrijr/flowwire/internal/random"
	"github.com/petrijr/flowwire/pkg/api"
	"github.com/petrijr/flowwire/pkg/codec"
	"github.com/petrijr/flowwire/pkg/history"
)

// invalidGeneration never equals a live generation.
const invalidGeneration int64 = -1

// ActivityLookup resolves registered activity descriptors by name.
type ActivityLookup interface {
	Activity(name string) (api.ActivityDefinition, bool)
}

// Options configures a Context.
type Options struct {
	ArenaSize       int
	CommandCapacity int

	// Codec serializes inputs and decodes results. Nil selects JSON.
	Codec api.Codec

	// Activities supplies default options for registered activities.
	Activities ActivityLookup

	// StrictActivities rejects activity names Activities does not know.
	StrictActivities bool
}

// Context is a reusable api.WorkflowContext.
//
// It moves through three states: uninitialized (fresh), active (after
// Initialize) and invalidated (after Reset). Validity is tracked with a pair
// of generation counters; between Reset and the next Initialize every
// accessor panics and every operation fails with api.ErrInvalidContext.
// A Context is used by one goroutine at a time.
type Context struct {
	generation int64
	active     int64

	history  []byte
	cursor   int
	replayed int

	arena    *arena.Arena
	writer   *arena.Writer
	commands *api.CommandQueue
	rng      *random.Rand
	codec    api.Codec
	acts     ActivityLookup
	strict   bool

	now    time.Time
	cancel context.Context

	// set while the context is checked out of a Pool
	res *puddle.Resource[*Context]
}

var _ api.WorkflowContext = (*Context)(nil)

// NewContext returns an uninitialized Context.
func NewContext(opts Options) *Context {
	c := opts.Codec
	if c == nil {
		c = codec.JSON{}
	}
	a := arena.New(opts.ArenaSize)
	return &Context{
		active:   invalidGeneration,
		arena:    a,
		writer:   arena.NewWriter(a),
		commands: api.NewCommandQueue(opts.CommandCapacity),
		rng:      random.New(0),
		codec:    c,
		acts:     opts.Activities,
		strict:   opts.StrictActivities,
	}
}

// Initialize binds the context to a new activation. The history buffer is
// borrowed, not copied, and must stay unchanged until Reset. A nil cancel
// means the activation cannot be cancelled.
func (c *Context) Initialize(hist []byte, seed int64, now time.Time, cancel context.Context) {
	if cancel == nil {
		cancel = context.Background()
	}
	c.history = hist
	c.cursor = 0
	c.replayed = 0
	c.rng.Reset(uint64(seed))
	c.now = now
	c.cancel = cancel

	c.generation++
	c.active = c.generation
}

// Reset invalidates every handle to the current activation and releases the
// per-activation state. The arena shrinks back to its initial size.
func (c *Context) Reset() {
	c.active = invalidGeneration
	c.arena.Reset(true)
	c.commands.Clear()
	c.history = nil
	c.cursor = 0
	c.replayed = 0
	c.cancel = nil
	c.now = time.Time{}
}

// Valid reports whether the context is bound to a live activation.
func (c *Context) Valid() bool {
	return c.active != invalidGeneration && c.active == c.generation
}

// Generation returns the number of times the context has been initialized.
func (c *Context) Generation() int64 { return c.generation }

// Commands returns the commands emitted so far in this activation.
func (c *Context) Commands() *api.CommandQueue { return c.commands }

// Payloads returns the arena bytes command offsets refer to.
func (c *Context) Payloads() []byte { return c.arena.Bytes() }

// Replayed counts history records consumed in this activation.
func (c *Context) Replayed() int { return c.replayed }

// HistoryOffset is the byte offset of the next unread record.
func (c *Context) HistoryOffset() int { return c.cursor }

func (c *Context) mustBeValid() {
	if !c.Valid() {
		panic(api.ErrInvalidContext)
	}
}

func (c *Context) Now() time.Time {
	c.mustBeValid()
	return c.now
}

func (c *Context) Random() api.Random {
	c.mustBeValid()
	return c.rng
}

func (c *Context) NewGUID() uuid.UUID {
	c.mustBeValid()
	var id uuid.UUID
	_, _ = c.rng.Read(id[:])
	return id
}

func (c *Context) Cancellation() context.Context {
	c.mustBeValid()
	return c.cancel
}

func (c *Context) IsReplaying() bool {
	c.mustBeValid()
	_, ok := c.peek()
	return ok
}

func (c *Context) CallActivity(name string, input any, opts *api.ActivityOptions) (api.Resolution, error) {
	if !c.Valid() {
		return api.Resolution{}, api.ErrInvalidContext
	}

	if ev, ok := c.peek(); ok && ev.Type() == api.EventActivityCompleted {
		c.consume(ev)
		return api.Resolution{Outcome: api.OutcomeReplayed, Payload: ev.Payload()}, nil
	}

	resolved, err := c.activityOptions(name, opts)
	if err != nil {
		return api.Resolution{}, err
	}

	cmd, err := c.record(api.EventActivityScheduled, input)
	if err != nil {
		return api.Resolution{}, fmt.Errorf("encode input of activity %q: %w", name, err)
	}
	cmd.Name = name
	cmd.Options = resolved
	c.commands.Enqueue(cmd)
	return api.Resolution{Outcome: api.OutcomeScheduled, Command: cmd}, nil
}

func (c *Context) ExecuteActivity(name string, input any, opts *api.ActivityOptions, result any) error {
	res, err := c.CallActivity(name, input, opts)
	if err != nil {
		return err
	}
	if res.Outcome != api.OutcomeReplayed {
		return res.Err()
	}
	if result == nil {
		return nil
	}
	if err := c.codec.Decode(res.Payload, result); err != nil {
		return fmt.Errorf("decode result of activity %q: %w", name, err)
	}
	return nil
}

// StartTimer resolves a timer. A fired timer at the cursor is consumed and
// replayed. A started-but-not-fired timer at the cursor is consumed and a new
// start is scheduled in its place.
func (c *Context) StartTimer(ctx context.Context, d time.Duration) (api.Resolution, error) {
	if !c.Valid() {
		return api.Resolution{}, api.ErrInvalidContext
	}

	if cause := c.cancelled(ctx); cause != nil {
		return api.Resolution{Outcome: api.OutcomeCancelled, Cause: cause}, nil
	}

	if ev, ok := c.peek(); ok {
		switch ev.Type() {
		case api.EventTimerFired:
			c.consume(ev)
			return api.Resolution{Outcome: api.OutcomeReplayed, Payload: ev.Payload()}, nil
		case api.EventTimerStarted:
			c.consume(ev)
		}
	}

	cmd, err := c.record(api.EventTimerStarted, d)
	if err != nil {
		return api.Resolution{}, fmt.Errorf("encode timer duration: %w", err)
	}
	c.commands.Enqueue(cmd)
	return api.Resolution{Outcome: api.OutcomeScheduled, Command: cmd}, nil
}

func (c *Context) Delay(d time.Duration) error {
	return c.DelayContext(c.cancel, d)
}

func (c *Context) DelayContext(ctx context.Context, d time.Duration) error {
	res, err := c.StartTimer(ctx, d)
	if err != nil {
		return err
	}
	return res.Err()
}

func (c *Context) peek() (history.EventView, bool) {
	return history.ReadEvent(c.history[c.cursor:])
}

func (c *Context) consume(ev history.EventView) {
	c.cursor += ev.TotalSize()
	c.replayed++
}

func (c *Context) cancelled(ctx context.Context) error {
	if c.cancel.Err() != nil {
		return context.Cause(c.cancel)
	}
	if ctx != nil && ctx.Err() != nil {
		return context.Cause(ctx)
	}
	return nil
}

// record serializes v into the arena and returns a command describing the
// written region.
func (c *Context) record(kind api.EventType, v any) (api.Command, error) {
	offset := c.arena.Position()
	if err := c.codec.Encode(c.writer, v); err != nil {
		return api.Command{}, err
	}
	return api.Command{
		Kind:   kind,
		Offset: offset,
		Length: c.arena.Position() - offset,
	}, nil
}

func (c *Context) activityOptions(name string, opts *api.ActivityOptions) (api.ActivityOptions, error) {
	var explicit api.ActivityOptions
	if opts != nil {
		explicit = *opts
	}
	if c.acts == nil {
		return explicit, nil
	}
	def, ok := c.acts.Activity(name)
	if !ok {
		if c.strict {
			return api.ActivityOptions{}, fmt.Errorf("%w: %q", api.ErrUnknownActivity, name)
		}
		return explicit, nil
	}
	return explicit.WithDefaults(def.Options), nil
}
