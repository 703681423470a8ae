package replay

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/petrijr/flowwire/pkg/api"
)

// Handle returns a view of c pinned to the current activation. Unlike the
// Context itself, a handle never becomes valid again: once c is reset or
// re-initialized, its accessors panic with api.ErrInvalidContext and its
// operations return it. Handle panics if c is not active.
func (c *Context) Handle() api.WorkflowContext {
	c.mustBeValid()
	return &handle{c: c, gen: c.active}
}

type handle struct {
	c   *Context
	gen int64
}

var _ api.WorkflowContext = (*handle)(nil)

func (h *handle) live() bool { return h.gen == h.c.active }

func (h *handle) mustBeLive() {
	if !h.live() {
		panic(api.ErrInvalidContext)
	}
}

func (h *handle) Now() time.Time {
	h.mustBeLive()
	return h.c.Now()
}

func (h *handle) NewGUID() uuid.UUID {
	h.mustBeLive()
	return h.c.NewGUID()
}

func (h *handle) Random() api.Random {
	h.mustBeLive()
	return handleRandom{h}
}

func (h *handle) Cancellation() context.Context {
	h.mustBeLive()
	return h.c.Cancellation()
}

func (h *handle) IsReplaying() bool {
	h.mustBeLive()
	return h.c.IsReplaying()
}

func (h *handle) CallActivity(name string, input any, opts *api.ActivityOptions) (api.Resolution, error) {
	if !h.live() {
		return api.Resolution{}, api.ErrInvalidContext
	}
	return h.c.CallActivity(name, input, opts)
}

func (h *handle) ExecuteActivity(name string, input any, opts *api.ActivityOptions, result any) error {
	if !h.live() {
		return api.ErrInvalidContext
	}
	return h.c.ExecuteActivity(name, input, opts, result)
}

func (h *handle) StartTimer(ctx context.Context, d time.Duration) (api.Resolution, error) {
	if !h.live() {
		return api.Resolution{}, api.ErrInvalidContext
	}
	return h.c.StartTimer(ctx, d)
}

func (h *handle) Delay(d time.Duration) error {
	if !h.live() {
		return api.ErrInvalidContext
	}
	return h.c.Delay(d)
}

func (h *handle) DelayContext(ctx context.Context, d time.Duration) error {
	if !h.live() {
		return api.ErrInvalidContext
	}
	return h.c.DelayContext(ctx, d)
}

// handleRandom keeps a generator obtained from a handle from drawing on a
// later activation's stream.
type handleRandom struct{ h *handle }

func (r handleRandom) Int() int {
	r.h.mustBeLive()
	return r.h.c.rng.Int()
}

func (r handleRandom) Intn(n int) int {
	r.h.mustBeLive()
	return r.h.c.rng.Intn(n)
}

func (r handleRandom) IntRange(lo, hi int) int {
	r.h.mustBeLive()
	return r.h.c.rng.IntRange(lo, hi)
}

func (r handleRandom) Float64() float64 {
	r.h.mustBeLive()
	return r.h.c.rng.Float64()
}

func (r handleRandom) Uint64() uint64 {
	r.h.mustBeLive()
	return r.h.c.rng.Uint64()
}

func (r handleRandom) Read(p []byte) (int, error) {
	r.h.mustBeLive()
	return r.h.c.rng.Read(p)
}
