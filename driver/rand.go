package driver

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
)

// RandSource supplies the evaluator's non-determinism. Generate returns a
// uniformly distributed integer in the inclusive range [low, high],
// low <= high.
type RandSource interface {
	Generate(low, high int) int
}

const seedWords = 32

// NewDefaultRandSource returns a pseudo-random source seeded from 32 words
// of system entropy.
func NewDefaultRandSource() RandSource {
	var buf [seedWords * 8]byte
	var seed int64
	if _, err := crand.Read(buf[:]); err == nil {
		for i := 0; i < seedWords; i++ {
			seed ^= int64(binary.LittleEndian.Uint64(buf[i*8:]))
		}
	}
	return &defaultRandSource{
		rng: rand.New(rand.NewSource(seed)),
	}
}

type defaultRandSource struct {
	rng *rand.Rand
}

func (s *defaultRandSource) Generate(low, high int) int {
	return low + s.rng.Intn(high-low+1)
}
