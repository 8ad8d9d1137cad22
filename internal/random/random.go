// Package random provides the seeded sources agents use for tie-breaks.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Seeder derives one independent source per agent from a base seed. Given the
// same base seed, the n-th source handed out is always the same.
type Seeder struct {
	mu   sync.Mutex
	base *rand.Rand
}

func NewSeeder(seed int64) *Seeder {
	return &Seeder{base: rand.New(rand.NewSource(seed))}
}

// New returns a fresh source. The returned *rand.Rand is not safe for
// concurrent use; each agent owns its own.
func (s *Seeder) New() *rand.Rand {
	s.mu.Lock()
	seed := s.base.Int63()
	s.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}
