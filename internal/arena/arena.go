// Package arena provides the bump-pointer byte buffer that holds command
// payloads for a single workflow activation.
package arena

import (
	"errors"
	"fmt"
)

// DefaultSize is the initial capacity used when New is called with size <= 0.
const DefaultSize = 64 * 1024

// ErrAdvanceOutOfRange is returned by Advance when the committed length
// would move the head past the reserved capacity.
var ErrAdvanceOutOfRange = errors.New("arena: advance out of range")

// Arena is a growable region with a monotonically advancing head.
//
// Bytes in [0, Used()) are stable for the lifetime of the activation: growth
// copies them to the new backing array and Reset is the only way to reclaim
// them. An Arena is not safe for concurrent use.
type Arena struct {
	buf         []byte
	head        int
	initialSize int
}

// New creates an arena with the given initial capacity.
func New(size int) *Arena {
	if size <= 0 {
		size = DefaultSize
	}
	return &Arena{
		buf:         make([]byte, size),
		initialSize: size,
	}
}

// Allocate reserves exactly n bytes, advances the head by n and returns the
// region. The returned slice cannot be appended into neighbouring space.
func (a *Arena) Allocate(n int) []byte {
	if n < 0 {
		panic(fmt.Sprintf("arena: negative allocation %d", n))
	}
	a.ensure(n)
	start := a.head
	a.head += n
	return a.buf[start:a.head:a.head]
}

// Reserve makes room for at least hint bytes without moving the head and
// returns the whole free tail. A hint of zero or less reserves one byte.
// The caller commits what it wrote with Advance.
func (a *Arena) Reserve(hint int) []byte {
	if hint <= 0 {
		hint = 1
	}
	a.ensure(hint)
	return a.buf[a.head:]
}

// Advance commits n bytes written into the region returned by Reserve.
func (a *Arena) Advance(n int) error {
	if n < 0 || a.head+n > len(a.buf) {
		return fmt.Errorf("%w: head=%d n=%d capacity=%d", ErrAdvanceOutOfRange, a.head, n, len(a.buf))
	}
	a.head += n
	return nil
}

// Reset moves the head back to zero. Contents are not cleared. With shrink
// set, a buffer that grew beyond its initial size is replaced by a fresh one
// of the initial size.
func (a *Arena) Reset(shrink bool) {
	a.head = 0
	if shrink && len(a.buf) > a.initialSize {
		a.buf = make([]byte, a.initialSize)
	}
}

// Used reports the number of committed bytes.
func (a *Arena) Used() int { return a.head }

// Position is the offset the next allocation will start at.
func (a *Arena) Position() int { return a.head }

// Capacity reports the size of the current backing array.
func (a *Arena) Capacity() int { return len(a.buf) }

// Free reports how many bytes can be allocated before the next growth.
func (a *Arena) Free() int { return len(a.buf) - a.head }

// Bytes returns the committed prefix. The slice aliases the arena and is
// invalidated by Reset.
func (a *Arena) Bytes() []byte { return a.buf[:a.head:a.head] }

// Slice returns the committed region [off, off+n).
func (a *Arena) Slice(off, n int) []byte {
	if off < 0 || n < 0 || off+n > a.head {
		panic(fmt.Sprintf("arena: slice [%d:%d] outside committed region %d", off, off+n, a.head))
	}
	return a.buf[off : off+n : off+n]
}

func (a *Arena) ensure(n int) {
	required := a.head + n
	if required <= len(a.buf) {
		return
	}
	newCap := max(2*len(a.buf), required)
	grown := make([]byte, newCap)
	copy(grown, a.buf[:a.head])
	a.buf = grown
}
