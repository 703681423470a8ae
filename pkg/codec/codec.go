// Package codec provides the payload serializers used for activity inputs,
// timer durations and activity results.
package codec

import (
	"fmt"

	"github.com/petrijr/flowwire/pkg/api"
)

// Names of the built-in codecs.
const (
	NameJSON = "json"
	NameCBOR = "cbor"
	NameGob  = "gob"
)

// ByName returns the built-in codec registered under name. An empty name
// selects JSON.
func ByName(name string) (api.Codec, error) {
	switch name {
	case "", NameJSON:
		return JSON{}, nil
	case NameCBOR:
		return NewCBOR(), nil
	case NameGob:
		return Gob{}, nil
	default:
		return nil, fmt.Errorf("codec: unknown codec %q", name)
	}
}
