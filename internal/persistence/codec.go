package persistence

import (
	"bytes"
	"encoding/gob"
)

// encodeValue serializes v using encoding/gob. Activation records and their
// command lists are stored this way by the backends that keep them as blobs.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeValue is the inverse of encodeValue. Empty data yields the zero T.
func decodeValue[T any](data []byte) (T, error) {
	var v T
	if len(data) == 0 {
		return v, nil
	}
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// encodeCommands returns nil for an empty list so backends can store NULL.
func encodeCommands(cmds []CommandRecord) ([]byte, error) {
	if len(cmds) == 0 {
		return nil, nil
	}
	return encodeValue(cmds)
}
