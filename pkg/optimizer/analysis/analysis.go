// Package analysis breaks assignments and runs down into human-readable
// reports.
package analysis

import (
	"fmt"
	"io"
	"math"
	"sort"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
	"sigs.k8s.io/worthsplit/pkg/optimizer/objectives/share"
	"sigs.k8s.io/worthsplit/pkg/optimizer/tracker"
)

// Solution is a named assignment to analyze.
type Solution struct {
	Name       string
	Assignment framework.Assignment
}

// SolutionResult is the breakdown of one solution.
type SolutionResult struct {
	Name       string
	Assignment framework.Assignment
	Shares     share.ShareResult
	// Distance is the category-count distance to the best solution in the
	// same analysis.
	Distance int
}

// Fitness is the sum of absolute share deviations.
func (r SolutionResult) Fitness() float64 { return r.Shares.TotalCost }

// RealFitness is Fitness in worth units.
func (r SolutionResult) RealFitness() float64 { return r.Shares.RealCost() }

// AnalyzeSolution scores a single solution.
func AnalyzeSolution(sol Solution, problem framework.Problem) (SolutionResult, error) {
	_, shares, err := share.ShareObjectiveWithDetails(sol.Assignment, problem)
	if err != nil {
		return SolutionResult{}, fmt.Errorf("analyzing %q: %w", sol.Name, err)
	}
	return SolutionResult{
		Name:       sol.Name,
		Assignment: sol.Assignment.Clone(),
		Shares:     shares,
	}, nil
}

// AnalyzeSolutions scores and ranks solutions, best first, and fills in
// each one's distance to the best.
func AnalyzeSolutions(solutions []Solution, problem framework.Problem) ([]SolutionResult, error) {
	results := make([]SolutionResult, 0, len(solutions))
	for _, sol := range solutions {
		r, err := AnalyzeSolution(sol, problem)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	ranked := RankSolutions(results)
	if len(ranked) > 0 {
		best := ranked[0].Assignment
		for i := range ranked {
			ranked[i].Distance = ranked[i].Assignment.Distance(best, problem.Categories())
		}
	}
	return ranked, nil
}

// RankSolutions returns a copy sorted by ascending fitness.
func RankSolutions(results []SolutionResult) []SolutionResult {
	sorted := make([]SolutionResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fitness() < sorted[j].Fitness()
	})
	return sorted
}

// PrintDetailedAnalysis writes a per-category breakdown of r.
func PrintDetailedAnalysis(w io.Writer, r SolutionResult) {
	fmt.Fprintf(w, "\n=== %s ===\n", r.Name)
	fmt.Fprintf(w, "Fitness: %.6f\n", r.Fitness())
	fmt.Fprintf(w, "Real fitness: %.2f (of total worth %d)\n", r.RealFitness(), r.Shares.TotalWeight)
	if r.Distance > 0 {
		fmt.Fprintf(w, "Distance to best: %d\n", r.Distance)
	}

	fmt.Fprintln(w, "\nCATEGORY BREAKDOWN:")
	fmt.Fprintf(w, "  %-8s %10s %10s %10s %12s %14s %14s\n",
		"category", "properties", "target", "achieved", "worth", "target worth", "worth off")
	total := float64(r.Shares.TotalWeight)
	for _, c := range r.Shares.Categories {
		targetWorth := c.Target * total
		fmt.Fprintf(w, "  %-8d %10d %10.4f %10.4f %12d %14.2f %14.2f\n",
			c.Index, c.Properties, c.Target, c.Achieved, c.Worth, targetWorth, math.Abs(float64(c.Worth)-targetWorth))
	}
}

// HistorySummary condenses the progress of a run.
type HistorySummary struct {
	Generations     int
	InitialBest     float64
	FinalBest       float64
	Improvements    int
	LastImprovement int
	FinalAverage    float64
	FinalDiversity  float64
}

// SummarizeHistory walks the snapshots of a run. Generation-best values are
// compared so that a single improvement is only counted once.
func SummarizeHistory(history []tracker.Snapshot) HistorySummary {
	if len(history) == 0 {
		return HistorySummary{}
	}
	s := HistorySummary{
		Generations: len(history),
		InitialBest: history[0].BestFitness,
	}
	best := history[0].BestFitness
	for _, snap := range history[1:] {
		if snap.BestFitness < best {
			best = snap.BestFitness
			s.Improvements++
			s.LastImprovement = snap.Generation
		}
	}
	last := history[len(history)-1]
	s.FinalBest = best
	s.FinalAverage = last.AverageFitness
	s.FinalDiversity = last.AverageDiff
	return s
}

// PrintHistorySummary writes s in the same layout as PrintDetailedAnalysis.
func PrintHistorySummary(w io.Writer, s HistorySummary) {
	fmt.Fprintln(w, "\nRUN SUMMARY:")
	fmt.Fprintf(w, "  Generations: %d\n", s.Generations)
	fmt.Fprintf(w, "  Best fitness: %.6f -> %.6f\n", s.InitialBest, s.FinalBest)
	fmt.Fprintf(w, "  Improvements: %d (last at generation %d)\n", s.Improvements, s.LastImprovement)
	fmt.Fprintf(w, "  Final average: %.6f\n", s.FinalAverage)
	fmt.Fprintf(w, "  Final diversity: %.6f\n", s.FinalDiversity)
}
