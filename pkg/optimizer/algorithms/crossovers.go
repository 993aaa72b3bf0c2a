package algorithms

import (
	"fmt"
	"sort"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

const (
	CrossoverUniform  = "Uniform"
	CrossoverOnePoint = "OnePoint"
	CrossoverTwoPoint = "TwoPoint"
)

// CrossoverFunc recombines two equal-length parents into two children.
// For every position the children hold the parents' values, in either order.
type CrossoverFunc func(p1, p2 []int, rng RandomSource) (child1, child2 []int)

var crossovers = map[string]CrossoverFunc{
	CrossoverUniform:  UniformCrossover,
	CrossoverOnePoint: OnePointCrossover,
	CrossoverTwoPoint: TwoPointCrossover,
}

// CrossoverByName resolves a crossover operator. The empty name is Uniform.
func CrossoverByName(name string) (CrossoverFunc, error) {
	if name == "" {
		name = CrossoverUniform
	}
	fn, ok := crossovers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown crossover %q, supported: %v", framework.ErrInvalidConfiguration, name, CrossoverNames())
	}
	return fn, nil
}

// CrossoverNames lists the supported operators.
func CrossoverNames() []string {
	names := make([]string, 0, len(crossovers))
	for name := range crossovers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UniformCrossover creates offspring by randomly selecting from each parent
func UniformCrossover(p1, p2 []int, rng RandomSource) ([]int, []int) {
	child1 := make([]int, len(p1))
	child2 := make([]int, len(p2))

	for i := range p1 {
		if rng.Float64() < 0.5 {
			child1[i] = p2[i]
			child2[i] = p1[i]
		} else {
			child1[i] = p1[i]
			child2[i] = p2[i]
		}
	}

	return child1, child2
}

// OnePointCrossover swaps the tails after a random cut point
func OnePointCrossover(p1, p2 []int, rng RandomSource) ([]int, []int) {
	child1 := make([]int, len(p1))
	child2 := make([]int, len(p2))
	if len(p1) == 0 {
		return child1, child2
	}

	point := rng.Intn(len(p1))
	for i := range p1 {
		if i < point {
			child1[i] = p1[i]
			child2[i] = p2[i]
		} else {
			child1[i] = p2[i]
			child2[i] = p1[i]
		}
	}

	return child1, child2
}

// TwoPointCrossover swaps the segment between two random cut points
func TwoPointCrossover(p1, p2 []int, rng RandomSource) ([]int, []int) {
	child1 := make([]int, len(p1))
	child2 := make([]int, len(p2))
	if len(p1) == 0 {
		return child1, child2
	}

	point1 := rng.Intn(len(p1))
	point2 := rng.Intn(len(p1))
	if point1 > point2 {
		point1, point2 = point2, point1
	}

	for i := range p1 {
		if i < point1 || i >= point2 {
			child1[i] = p1[i]
			child2[i] = p2[i]
		} else {
			child1[i] = p2[i]
			child2[i] = p1[i]
		}
	}

	return child1, child2
}

// Crossover recombines two genes. Children are always unevaluated.
func Crossover(parent1, parent2 framework.Gene, fn CrossoverFunc, rng RandomSource) (framework.Gene, framework.Gene) {
	c1, c2 := fn(parent1.Assignment, parent2.Assignment, rng)
	return framework.NewGene(c1), framework.NewGene(c2)
}
