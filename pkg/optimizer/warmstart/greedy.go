// Package warmstart builds greedy seed assignments for the initial
// population.
//
// Each seed is constructed by walking the properties from the heaviest to
// the lightest and placing every property into the category that is
// furthest below its target worth. The first seed uses the exact weight
// order; the others jitter every property's priority by up to 20% so that
// similarly sized properties are visited in different orders, which gives
// the engine a spread of good starting points instead of a single one.
package warmstart

import (
	"fmt"
	"sort"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

// Jitter is the maximum relative perturbation applied to a property's
// priority in every seed after the first.
const Jitter = 0.2

// Source is the randomness Seeds draws from.
type Source interface {
	Float64() float64
}

// Seeds returns count greedy assignments for problem. The problem must be
// valid.
func Seeds(problem framework.Problem, count int, rng Source) []framework.Assignment {
	seeds := make([]framework.Assignment, 0, count)
	for i := 0; i < count; i++ {
		jitter := 0.0
		if i > 0 {
			jitter = Jitter
		}
		seeds = append(seeds, Greedy(problem, order(problem.Weights, jitter, rng)))
	}
	return seeds
}

// Greedy places the properties in the given order, each into the category
// with the largest remaining deficit to its target worth. Ties go to the
// lowest category index.
func Greedy(problem framework.Problem, order []int) framework.Assignment {
	total := float64(problem.TotalWeight())
	deficit := make([]float64, problem.Categories())
	for c, target := range problem.Targets {
		deficit[c] = target * total
	}

	assignment := make(framework.Assignment, problem.Properties())
	for _, p := range order {
		best := 0
		for c := 1; c < len(deficit); c++ {
			if deficit[c] > deficit[best] {
				best = c
			}
		}
		assignment[p] = best
		deficit[best] -= float64(problem.Weights[p])
	}
	return assignment
}

// Unique counts distinct assignments.
func Unique(seeds []framework.Assignment) int {
	seen := make(map[string]struct{}, len(seeds))
	for _, s := range seeds {
		seen[fmt.Sprint([]int(s))] = struct{}{}
	}
	return len(seen)
}

func order(weights []int64, jitter float64, rng Source) []int {
	type item struct {
		index    int
		priority float64
	}
	items := make([]item, len(weights))
	for i, w := range weights {
		priority := float64(w)
		if jitter > 0 {
			priority *= 1 - jitter + rng.Float64()*2*jitter
		}
		items[i] = item{index: i, priority: priority}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].priority > items[j].priority
	})

	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.index
	}
	return out
}
