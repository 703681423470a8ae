package replay

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/puddle/v2"
)

// DefaultPoolSize bounds the number of contexts a Pool creates when no size
// is given.
const DefaultPoolSize = 64

// Pool recycles Contexts between activations. Put resets a context before it
// becomes available again, so no state carries from one activation into the
// next. Callers Initialize what Get returns.
type Pool struct {
	pool *puddle.Pool[*Context]
}

// NewPool creates a pool that builds contexts with opts on demand, up to
// size concurrently checked-out contexts.
func NewPool(size int32, opts Options) (*Pool, error) {
	if size <= 0 {
		size = DefaultPoolSize
	}
	p, err := puddle.NewPool(&puddle.Config[*Context]{
		Constructor: func(context.Context) (*Context, error) {
			return NewContext(opts), nil
		},
		Destructor: func(*Context) {},
		MaxSize:    size,
	})
	if err != nil {
		return nil, err
	}
	return &Pool{pool: p}, nil
}

// Get checks a context out of the pool, blocking while all contexts are in
// use until ctx is done.
func (p *Pool) Get(ctx context.Context) (*Context, error) {
	res, err := p.pool.Acquire(ctx)
	if err != nil {
		if errors.Is(err, puddle.ErrClosedPool) {
			return nil, fmt.Errorf("replay: context pool closed: %w", err)
		}
		return nil, err
	}
	c := res.Value()
	c.res = res
	return c, nil
}

// Put resets c and returns it to the pool. Putting a context twice, or one
// that did not come from Get, is a no-op.
func (p *Pool) Put(c *Context) {
	if c == nil || c.res == nil {
		return
	}
	c.Reset()
	res := c.res
	c.res = nil
	res.Release()
}

// InUse reports how many contexts are checked out.
func (p *Pool) InUse() int {
	return int(p.pool.Stat().AcquiredResources())
}

// Size reports how many contexts the pool has created and still holds.
func (p *Pool) Size() int {
	return int(p.pool.Stat().TotalResources())
}

// Close destroys idle contexts and waits for checked-out ones to be returned.
func (p *Pool) Close() {
	p.pool.Close()
}
