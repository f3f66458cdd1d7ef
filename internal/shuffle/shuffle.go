package shuffle

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// Shuffler permutes sequences uniformly at random. It is safe for concurrent use,
// so one instance can serve every game in the process.
type Shuffler struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the shuffler
type Config struct {
	// Optional seed for reproducible games and tests
	Seed int64
}

// New creates a new shuffler
func New(cfg *Config) *Shuffler {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else if s, err := NewSeed(); err == nil {
		seed = s
	} else {
		seed = time.Now().UnixNano()
	}

	return &Shuffler{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Shuffle pseudo-randomizes the order of n elements using the provided swap function
func (s *Shuffler) Shuffle(n int, swap func(i, j int)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.random.Shuffle(n, swap)
}

// NewSeed generates a seed from crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("failed to read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
