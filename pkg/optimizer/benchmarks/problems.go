package benchmarks

import (
	"fmt"

	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

// Benchmark is a problem with a known bound on its best fitness.
type Benchmark struct {
	Name    string
	Problem framework.Problem
	// KnownOptimum is a lower bound on the fitness. It is exact for the
	// equal-split and planted problems.
	KnownOptimum float64
}

// NewEqualSplit builds categories equal targets over categories*perCategory
// properties of identical worth. Any balanced assignment is optimal.
func NewEqualSplit(categories, perCategory int) Benchmark {
	targets := make([]float64, categories)
	for i := range targets {
		targets[i] = 1 / float64(categories)
	}
	weights := make([]int64, categories*perCategory)
	for i := range weights {
		weights[i] = 100
	}
	return Benchmark{
		Name:    fmt.Sprintf("EqualSplit_%dx%d", categories, perCategory),
		Problem: framework.Problem{Targets: targets, Weights: weights},
	}
}

// NewPlanted draws random weights and a random hidden assignment, then uses
// the shares of that assignment as targets so a perfect split exists.
func NewPlanted(categories, properties int, seed uint64) Benchmark {
	rng := algorithms.NewRandomSource(seed)
	weights := make([]int64, properties)
	worth := make([]int64, categories)
	var total int64
	for i := range weights {
		weights[i] = int64(1 + rng.Intn(1000))
		worth[rng.Intn(categories)] += weights[i]
		total += weights[i]
	}
	targets := make([]float64, categories)
	for i := range targets {
		targets[i] = float64(worth[i]) / float64(total)
	}
	return Benchmark{
		Name:    fmt.Sprintf("Planted_%dx%d", categories, properties),
		Problem: framework.Problem{Targets: targets, Weights: weights},
	}
}

// NewSkewed asks for a 60/30/10 split of weights 1..properties.
func NewSkewed(properties int) Benchmark {
	weights := make([]int64, properties)
	for i := range weights {
		weights[i] = int64(i + 1)
	}
	return Benchmark{
		Name:    fmt.Sprintf("Skewed_%d", properties),
		Problem: framework.Problem{Targets: []float64{0.6, 0.3, 0.1}, Weights: weights},
	}
}
