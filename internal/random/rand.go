package random

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/petrijr/flowwire/pkg/api"
)

// Rand exposes a Source through the conventional random-number surface that
// workflow code expects. It also satisfies math/rand/v2.Source so callers can
// wrap it with rand.New when they need the wider standard API.
type Rand struct {
	src Source
}

var (
	_ api.Random  = (*Rand)(nil)
	_ rand.Source = (*Rand)(nil)
	_ io.Reader   = (*Rand)(nil)
)

// New returns a Rand seeded with seed.
func New(seed uint64) *Rand {
	r := &Rand{}
	r.src.Reset(seed)
	return r
}

// Reset reseeds the generator.
func (r *Rand) Reset(seed uint64) { r.src.Reset(seed) }

func (r *Rand) Uint64() uint64 { return r.src.Uint64() }

func (r *Rand) Int() int { return r.src.Int() }

// Intn returns a value in [0, n). Zero yields zero.
func (r *Rand) Intn(n int) int {
	if n < 0 {
		panic(fmt.Sprintf("random: negative bound %d", n))
	}
	if n == 0 {
		return 0
	}
	return r.src.Intn(n)
}

// IntRange returns a value in [lo, hi). lo == hi yields lo.
func (r *Rand) IntRange(lo, hi int) int {
	if lo > hi {
		panic(fmt.Sprintf("random: invalid range [%d, %d)", lo, hi))
	}
	if lo == hi {
		return lo
	}
	span := uint64(hi) - uint64(lo)
	return lo + int(r.src.Uint64()%span)
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.src.Int()) / (1 << 31)
}

// Read fills p and never fails.
func (r *Rand) Read(p []byte) (int, error) {
	r.src.Fill(p)
	return len(p), nil
}
