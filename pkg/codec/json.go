package codec

import (
	"encoding/json"
	"io"

	"github.com/petrijr/flowwire/pkg/api"
)

// JSON encodes payloads as compact JSON without a trailing newline.
type JSON struct{}

var _ api.Codec = JSON{}

func (JSON) Name() string { return NameJSON }

func (JSON) Encode(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (JSON) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
