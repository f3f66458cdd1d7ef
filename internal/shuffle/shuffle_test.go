package shuffle

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func permutation(s *Shuffler, n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	s.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func TestShuffle_SameSeedSameOrder(t *testing.T) {
	a := New(&Config{Seed: 42})
	b := New(&Config{Seed: 42})

	assert.Equal(t, permutation(a, 25), permutation(b, 25))
}

func TestShuffle_KeepsEveryElement(t *testing.T) {
	s := New(nil)

	out := permutation(s, 20)

	assert.ElementsMatch(t, permutation(New(&Config{Seed: 1}), 20), out)
}

func TestShuffle_ConcurrentUse(t *testing.T) {
	s := New(&Config{Seed: 7})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Len(t, permutation(s, 15), 15)
			}
		}()
	}
	wg.Wait()
}

func TestNewSeed(t *testing.T) {
	seed, err := NewSeed()
	require.NoError(t, err)

	other, err := NewSeed()
	require.NoError(t, err)

	assert.NotEqual(t, seed, other)
}
