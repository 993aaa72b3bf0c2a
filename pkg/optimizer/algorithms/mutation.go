package algorithms

import (
	"math"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

// Mutator perturbs non-elite genes after selection.
type Mutator struct {
	Elites      int
	Probability float64
	Span        int
	Categories  int
}

// Mutate picks floor(len(pop)*Probability) distinct non-elite genes and
// reassigns Span random positions of each. It returns the indices touched.
func (m Mutator) Mutate(pop Population, rng RandomSource) []int {
	candidates := len(pop) - m.Elites
	if candidates <= 0 || m.Categories <= 0 {
		return nil
	}
	count := int(math.Floor(float64(len(pop)) * m.Probability))
	if count > candidates {
		count = candidates
	}
	if count <= 0 {
		return nil
	}

	// Partial Fisher-Yates over the non-elite indices.
	indices := make([]int, candidates)
	for i := range indices {
		indices[i] = m.Elites + i
	}
	for i := 0; i < count; i++ {
		j := i + rng.Intn(candidates-i)
		indices[i], indices[j] = indices[j], indices[i]
	}
	chosen := indices[:count]

	for _, idx := range chosen {
		pop[idx] = MutateGene(pop[idx], m.Span, m.Categories, rng)
	}
	return chosen
}

// MutateGene reassigns span positions, drawn with replacement, to random
// categories. The result is always unevaluated.
func MutateGene(g framework.Gene, span, categories int, rng RandomSource) framework.Gene {
	a := g.Assignment.Clone()
	if len(a) > 0 {
		for i := 0; i < span; i++ {
			a[rng.Intn(len(a))] = rng.Intn(categories)
		}
	}
	return framework.NewGene(a)
}
