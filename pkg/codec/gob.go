package codec

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/petrijr/flowwire/pkg/api"
)

// Gob encodes payloads with encoding/gob. Every payload carries its own type
// descriptors, so payloads can be decoded independently of each other.
// Values stored behind interfaces need gob.Register.
type Gob struct{}

var _ api.Codec = Gob{}

func (Gob) Name() string { return NameGob }

func (Gob) Encode(w io.Writer, v any) error {
	return gob.NewEncoder(w).Encode(v)
}

func (Gob) Decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
