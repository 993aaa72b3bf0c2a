package algorithms

import (
	"math"
)

// EliteCount is floor(size*fraction) rounded down to an even number.
func EliteCount(size int, fraction float64) int {
	n := int(math.Floor(float64(size) * fraction))
	if n%2 != 0 {
		n--
	}
	return n
}

// BreedingPoolSize is floor(size*fraction).
func BreedingPoolSize(size int, fraction float64) int {
	return int(math.Floor(float64(size) * fraction))
}

// Selector builds the next generation from a ranked population.
type Selector struct {
	Size      int
	Elites    int
	PoolSize  int
	Crossover CrossoverFunc
}

// Next keeps the elites unchanged and fills the rest with children of
// parents drawn uniformly, with replacement, from the fittest PoolSize
// genes. ranked must be sorted by ascending fitness.
func (s Selector) Next(ranked Population, rng RandomSource) Population {
	next := make(Population, 0, s.Size+1)
	for i := 0; i < s.Elites && i < len(ranked); i++ {
		next = append(next, ranked[i].DeepCopy())
	}

	pool := s.PoolSize
	if pool > len(ranked) {
		pool = len(ranked)
	}
	for len(next) < s.Size {
		p1 := ranked[rng.Intn(pool)]
		p2 := ranked[rng.Intn(pool)]
		c1, c2 := Crossover(p1, p2, s.Crossover, rng)
		next = append(next, c1, c2)
	}

	// An odd non-elite remainder produces one child too many.
	return next[:s.Size]
}

