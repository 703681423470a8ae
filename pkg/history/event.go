package history

import (
	"encoding/binary"

	"github.com/petrijr/flowwire/pkg/api"
)

// HeaderSize is the fixed size of a record header.
const HeaderSize = 13

const (
	offsetType   = 8
	offsetLength = 9
)

// EventView is a read-only view over one record in a history buffer.
type EventView struct {
	buf []byte
}

// ReadEvent parses the record at the start of buf. It reports false when buf
// is too short for a header, the declared payload length is negative, or the
// payload extends past buf.
func ReadEvent(buf []byte) (EventView, bool) {
	if len(buf) < HeaderSize {
		return EventView{}, false
	}
	n := int32(binary.LittleEndian.Uint32(buf[offsetLength:]))
	if n < 0 || int64(len(buf)) < int64(HeaderSize)+int64(n) {
		return EventView{}, false
	}
	return EventView{buf: buf[:HeaderSize+int(n)]}, true
}

// EventID returns the record's event identifier.
func (e EventView) EventID() int64 {
	return int64(binary.LittleEndian.Uint64(e.buf))
}

// Type returns the record's event type.
func (e EventView) Type() api.EventType {
	return api.EventType(e.buf[offsetType])
}

// PayloadLength returns the declared payload size.
func (e EventView) PayloadLength() int {
	return int(int32(binary.LittleEndian.Uint32(e.buf[offsetLength:])))
}

// Payload returns the payload bytes. The slice aliases the history buffer.
func (e EventView) Payload() []byte {
	return e.buf[HeaderSize:len(e.buf):len(e.buf)]
}

// TotalSize is the header plus payload size.
func (e EventView) TotalSize() int {
	return len(e.buf)
}

// Bytes returns the whole encoded record.
func (e EventView) Bytes() []byte {
	return e.buf
}

// IsZero reports whether e is the zero view returned for a missing record.
func (e EventView) IsZero() bool {
	return e.buf == nil
}
