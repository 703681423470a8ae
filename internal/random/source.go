// Package random implements the seeded SplitMix64 generator used for
// replay-safe randomness inside workflow code.
package random

import (
	"encoding/binary"
	"fmt"
)

const (
	goldenRatio = 0x9E3779B97F4A7C15
	mixA        = 0xBF58476D1CE4E5B9
	mixB        = 0x94D049BB133111EB
)

// Source is a SplitMix64 generator. Two sources reset with the same seed
// produce identical sequences on every platform. Not safe for concurrent use.
type Source struct {
	state uint64
}

// NewSource returns a Source reset with seed.
func NewSource(seed uint64) *Source {
	s := &Source{}
	s.Reset(seed)
	return s
}

// Reset reseeds the generator. The first output after seeding is discarded.
func (s *Source) Reset(seed uint64) {
	s.state = seed + goldenRatio
	s.Uint64()
}

// Uint64 returns the next 64 bits of the sequence.
func (s *Source) Uint64() uint64 {
	s.state += goldenRatio
	z := s.state
	z = (z ^ (z >> 30)) * mixA
	z = (z ^ (z >> 27)) * mixB
	return z ^ (z >> 31)
}

// Int returns a non-negative int in [0, 2^31).
func (s *Source) Int() int {
	return int(s.Uint64() >> 33)
}

// Intn returns a value in [0, n). The result is a plain modulo and is not
// bias corrected. Panics if n <= 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("random: invalid bound %d", n))
	}
	return int(s.Uint64() % uint64(n))
}

// Fill writes pseudo-random bytes into p. Whole 8-byte chunks take one
// little-endian draw each; a trailing partial chunk takes the low-order bytes
// of one more draw.
func (s *Source) Fill(p []byte) {
	i := 0
	for ; i+8 <= len(p); i += 8 {
		binary.LittleEndian.PutUint64(p[i:], s.Uint64())
	}
	if i == len(p) {
		return
	}
	v := s.Uint64()
	for ; i < len(p); i++ {
		p[i] = byte(v)
		v >>= 8
	}
}
