// Package history reads and writes the binary workflow history format.
//
// A history is a concatenation of records, each laid out as:
//
//	EventID        int64 little-endian
//	Type           uint8
//	PayloadLength  int32 little-endian
//	Payload        PayloadLength bytes
//
// Reading never copies: EventView and Iterator work directly on the caller's
// buffer. A trailing fragment too short to hold a whole record ends
// iteration; Validate reports it for hosts that want to be strict.
package history
