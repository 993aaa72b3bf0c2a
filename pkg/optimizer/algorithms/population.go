package algorithms

import (
	"math"
	"sort"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

// Population is an ordered set of genes of equal length.
type Population []framework.Gene

// Shake builds a population of size random, unevaluated genes.
func Shake(size, properties, categories int, rng RandomSource) Population {
	pop := make(Population, size)
	for i := range pop {
		pop[i] = framework.NewGene(randomAssignment(properties, categories, rng))
	}
	return pop
}

// Evaluate scores every unevaluated gene. Scores are pure functions of the
// assignment so evaluated genes are left alone.
func (p Population) Evaluate(objective framework.ObjectiveFunc) error {
	for i := range p {
		if p[i].Evaluated() {
			continue
		}
		fitness, err := objective(p[i].Assignment)
		if err != nil {
			return err
		}
		p[i] = p[i].WithFitness(fitness)
	}
	return nil
}

// Rank sorts the population by ascending fitness. Ties keep their order.
func (p Population) Rank() {
	sort.SliceStable(p, func(i, j int) bool {
		fi, _ := p[i].Score()
		fj, _ := p[j].Score()
		return fi < fj
	})
}

// AverageFitness is the mean fitness of the population.
func (p Population) AverageFitness() float64 {
	if len(p) == 0 {
		return 0
	}
	sum := 0.0
	for _, g := range p {
		f, _ := g.Score()
		sum += f
	}
	return sum / float64(len(p))
}

// Diversity is the mean pairwise absolute fitness difference, self pairs
// included. A population of identical fitness has diversity 0.
func (p Population) Diversity() float64 {
	n := len(p)
	if n == 0 {
		return 0
	}
	fitness := make([]float64, n)
	for i, g := range p {
		fitness[i], _ = g.Score()
	}

	total := 0.0
	for _, fy := range fitness {
		row := 0.0
		for _, fx := range fitness {
			row += math.Abs(fy - fx)
		}
		total += row / float64(n)
	}
	return total / float64(n)
}

// Clone deep-copies the population.
func (p Population) Clone() Population {
	out := make(Population, len(p))
	for i, g := range p {
		out[i] = g.DeepCopy()
	}
	return out
}
