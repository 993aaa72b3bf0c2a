package algorithms

import (
	"time"

	"golang.org/x/exp/rand"
)

// RandomSource is the randomness every operator draws from. Tests inject
// a seeded or scripted source.
type RandomSource interface {
	// Intn returns a value in [0, n). It panics if n <= 0.
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// NewRandomSource returns a source seeded with seed, or with the current
// time when seed is 0.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed))
}

// randomAssignment fills a new assignment with uniformly drawn categories.
func randomAssignment(properties, categories int, rng RandomSource) []int {
	a := make([]int, properties)
	for i := range a {
		a[i] = rng.Intn(categories)
	}
	return a
}
