package analysis

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
	"sigs.k8s.io/worthsplit/pkg/optimizer/tracker"
)

func TestAnalyzeSolutions(t *testing.T) {
	problem := framework.Problem{Targets: []float64{0.5, 0.5}, Weights: []int64{10, 10, 10, 10}}
	solutions := []Solution{
		{Name: "all left", Assignment: framework.Assignment{0, 0, 0, 0}},
		{Name: "balanced", Assignment: framework.Assignment{0, 1, 0, 1}},
		{Name: "three one", Assignment: framework.Assignment{0, 0, 0, 1}},
	}

	results, err := AnalyzeSolutions(solutions, problem)
	if err != nil {
		t.Fatal(err)
	}
	wantOrder := []string{"balanced", "three one", "all left"}
	wantDistance := []int{0, 2, 4}
	for i, r := range results {
		if r.Name != wantOrder[i] {
			t.Errorf("rank %d = %q, want %q", i, r.Name, wantOrder[i])
		}
		if r.Distance != wantDistance[i] {
			t.Errorf("%s: distance = %d, want %d", r.Name, r.Distance, wantDistance[i])
		}
	}
	if got := results[1].RealFitness(); math.Abs(got-20) > 1e-9 {
		t.Errorf("three one real fitness = %v, want 20", got)
	}

	var buf bytes.Buffer
	PrintDetailedAnalysis(&buf, results[1])
	for _, want := range []string{"=== three one ===", "CATEGORY BREAKDOWN", "0.7500"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("report missing %q:\n%s", want, buf.String())
		}
	}
}

func TestAnalyzeSolutionError(t *testing.T) {
	problem := framework.Problem{Targets: []float64{1}, Weights: []int64{1, 1}}
	_, err := AnalyzeSolutions([]Solution{{Name: "short", Assignment: framework.Assignment{0}}}, problem)
	if !errors.Is(err, framework.ErrEvaluation) {
		t.Errorf("expected ErrEvaluation, got %v", err)
	}
}

func TestSummarizeHistory(t *testing.T) {
	history := []tracker.Snapshot{
		{Generation: 0, BestFitness: 0.9, AverageFitness: 1.1},
		{Generation: 1, BestFitness: 0.9, AverageFitness: 1.0},
		{Generation: 2, BestFitness: 0.4, AverageFitness: 0.8},
		{Generation: 3, BestFitness: 0.1, AverageFitness: 0.5, AverageDiff: 0.2},
		{Generation: 4, BestFitness: 0.1, AverageFitness: 0.3, AverageDiff: 0.1},
	}
	s := SummarizeHistory(history)
	want := HistorySummary{
		Generations:     5,
		InitialBest:     0.9,
		FinalBest:       0.1,
		Improvements:    2,
		LastImprovement: 3,
		FinalAverage:    0.3,
		FinalDiversity:  0.1,
	}
	if s != want {
		t.Errorf("SummarizeHistory() = %+v, want %+v", s, want)
	}
	if SummarizeHistory(nil) != (HistorySummary{}) {
		t.Errorf("empty history should give a zero summary")
	}

	var buf bytes.Buffer
	PrintHistorySummary(&buf, s)
	if !strings.Contains(buf.String(), "Improvements: 2 (last at generation 3)") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}
}
