package codec

import (
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/petrijr/flowwire/pkg/api"
)

// CBOR encodes payloads with deterministic core encoding, so equal values
// always produce equal bytes.
type CBOR struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

var _ api.Codec = (*CBOR)(nil)

// NewCBOR returns a CBOR codec using core deterministic encoding options.
func NewCBOR() *CBOR {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
	return &CBOR{enc: enc, dec: dec}
}

func (c *CBOR) Name() string { return NameCBOR }

func (c *CBOR) Encode(w io.Writer, v any) error {
	return c.enc.NewEncoder(w).Encode(v)
}

func (c *CBOR) Decode(data []byte, v any) error {
	return c.dec.Unmarshal(data, v)
}
