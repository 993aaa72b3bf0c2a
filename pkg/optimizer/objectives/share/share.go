package share

import (
	"fmt"
	"math"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

// ShareResult contains the detailed share metrics of one assignment
type ShareResult struct {
	// TotalCost is the sum of absolute share deviations, in [0, 2]
	TotalCost   float64
	TotalWeight int64
	Categories  []CategoryShare
}

// CategoryShare tracks how much worth landed in a single category
type CategoryShare struct {
	Index      int
	Properties int
	Worth      int64
	Target     float64
	Achieved   float64
	Deviation  float64 // Achieved - Target
}

// RealCost scales TotalCost back to worth units.
func (r ShareResult) RealCost() float64 {
	return r.TotalCost * float64(r.TotalWeight)
}

// ShareObjective calculates the share deviation cost of an assignment
func ShareObjective(assignment framework.Assignment, problem framework.Problem) (float64, error) {
	result, err := calculateShares(assignment, problem)
	if err != nil {
		return 0, err
	}
	return result.TotalCost, nil
}

// ShareObjectiveWithDetails returns both cost and per-category metrics
func ShareObjectiveWithDetails(assignment framework.Assignment, problem framework.Problem) (float64, ShareResult, error) {
	result, err := calculateShares(assignment, problem)
	if err != nil {
		return 0, ShareResult{}, err
	}
	return result.TotalCost, result, nil
}

// ShareObjectiveFunc returns an objective bound to problem. The returned
// function reuses an internal buffer and must not be called concurrently.
func ShareObjectiveFunc(problem framework.Problem) framework.ObjectiveFunc {
	total := problem.TotalWeight()
	worth := make([]int64, problem.Categories())

	return func(assignment framework.Assignment) (float64, error) {
		if err := checkAssignment(assignment, problem, total); err != nil {
			return 0, err
		}
		for i := range worth {
			worth[i] = 0
		}
		for property, category := range assignment {
			worth[category] += problem.Weights[property]
		}

		cost := 0.0
		for i, target := range problem.Targets {
			cost += math.Abs(target - float64(worth[i])/float64(total))
		}
		return cost, nil
	}
}

// Evaluate returns a copy of gene scored against problem.
func Evaluate(gene framework.Gene, problem framework.Problem) (framework.Gene, error) {
	cost, err := ShareObjective(gene.Assignment, problem)
	if err != nil {
		return gene, err
	}
	return gene.WithFitness(cost), nil
}

// calculateShares aggregates worth per category and compares it to the targets
func calculateShares(assignment framework.Assignment, problem framework.Problem) (ShareResult, error) {
	total := problem.TotalWeight()
	if err := checkAssignment(assignment, problem, total); err != nil {
		return ShareResult{}, err
	}

	categories := make([]CategoryShare, problem.Categories())
	for i, target := range problem.Targets {
		categories[i] = CategoryShare{Index: i, Target: target}
	}

	// Sum the worth of every property into its category
	for property, category := range assignment {
		categories[category].Worth += problem.Weights[property]
		categories[category].Properties++
	}

	cost := 0.0
	for i := range categories {
		categories[i].Achieved = float64(categories[i].Worth) / float64(total)
		categories[i].Deviation = categories[i].Achieved - categories[i].Target
		cost += math.Abs(categories[i].Deviation)
	}

	return ShareResult{
		TotalCost:   cost,
		TotalWeight: total,
		Categories:  categories,
	}, nil
}

func checkAssignment(assignment framework.Assignment, problem framework.Problem, total int64) error {
	if total <= 0 {
		return fmt.Errorf("%w: total weight must be positive, got %d", framework.ErrInvalidConfiguration, total)
	}
	if len(assignment) != problem.Properties() {
		return fmt.Errorf("%w: assignment covers %d properties, problem has %d",
			framework.ErrEvaluation, len(assignment), problem.Properties())
	}
	categories := problem.Categories()
	for property, category := range assignment {
		if category < 0 || category >= categories {
			return fmt.Errorf("%w: property %d assigned to category %d outside [0,%d)",
				framework.ErrEvaluation, property, category, categories)
		}
	}
	return nil
}
