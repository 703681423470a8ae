package history

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/petrijr/flowwire/pkg/api"
)

// ErrTruncated reports trailing bytes that do not form a whole record.
var ErrTruncated = errors.New("history: truncated record")

// AppendEvent appends an encoded record to dst and returns the extended
// slice.
func AppendEvent(dst []byte, id int64, typ api.EventType, payload []byte) []byte {
	if len(payload) > math.MaxInt32 {
		panic(fmt.Sprintf("history: payload of %d bytes exceeds record limit", len(payload)))
	}
	dst = binary.LittleEndian.AppendUint64(dst, uint64(id))
	dst = append(dst, byte(typ))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(payload)))
	return append(dst, payload...)
}

// Builder assembles a history buffer record by record. Event IDs are
// assigned sequentially from 1 by Add.
type Builder struct {
	buf    []byte
	nextID int64
	count  int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{nextID: 1}
}

// Append adds a record with an explicit event ID.
func (b *Builder) Append(id int64, typ api.EventType, payload []byte) *Builder {
	b.buf = AppendEvent(b.buf, id, typ, payload)
	b.count++
	if id >= b.nextID {
		b.nextID = id + 1
	}
	return b
}

// Add adds a record with the next sequential event ID.
func (b *Builder) Add(typ api.EventType, payload []byte) *Builder {
	if b.nextID == 0 {
		b.nextID = 1
	}
	return b.Append(b.nextID, typ, payload)
}

// Bytes returns the encoded history. The slice is owned by the builder until
// the next Append or Reset.
func (b *Builder) Bytes() []byte { return b.buf }

// Len returns the number of records appended.
func (b *Builder) Len() int { return b.count }

// Size returns the encoded size in bytes.
func (b *Builder) Size() int { return len(b.buf) }

// Reset empties the builder and restarts event IDs at 1.
func (b *Builder) Reset() {
	b.buf = b.buf[:0]
	b.count = 0
	b.nextID = 1
}

// Validate walks buf and returns the number of whole records. It returns
// ErrTruncated, along with the count read so far, when trailing bytes do not
// form a whole record.
func Validate(buf []byte) (int, error) {
	it := NewIterator(buf)
	n := 0
	for it.Next() {
		n++
	}
	if it.Remaining() > 0 {
		return n, fmt.Errorf("%w: %d trailing bytes at offset %d", ErrTruncated, it.Remaining(), it.Offset())
	}
	return n, nil
}

// Event is an owned, decoded record, convenient for tools and tests.
type Event struct {
	ID      int64         `json:"id" yaml:"id"`
	Type    api.EventType `json:"type" yaml:"type"`
	Payload []byte        `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Decode copies every whole record of buf into Events. Trailing bytes are
// reported as ErrTruncated together with the events decoded before them.
func Decode(buf []byte) ([]Event, error) {
	var out []Event
	for ev := range All(buf) {
		out = append(out, Event{
			ID:      ev.EventID(),
			Type:    ev.Type(),
			Payload: append([]byte(nil), ev.Payload()...),
		})
	}
	if _, err := Validate(buf); err != nil {
		return out, err
	}
	return out, nil
}

// Encode is the inverse of Decode.
func Encode(events []Event) []byte {
	var buf []byte
	for _, ev := range events {
		buf = AppendEvent(buf, ev.ID, ev.Type, ev.Payload)
	}
	return buf
}
