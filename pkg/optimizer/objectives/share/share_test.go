package share_test

import (
	"errors"
	"math"
	"testing"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
	"sigs.k8s.io/worthsplit/pkg/optimizer/objectives/share"
)

func TestShareObjective(t *testing.T) {
	scenarios := []struct {
		name        string
		assignment  framework.Assignment
		problem     framework.Problem
		expected    float64
		description string
	}{
		{
			name:        "PerfectSplit",
			assignment:  framework.Assignment{0, 1, 0, 1},
			problem:     framework.Problem{Targets: []float64{0.5, 0.5}, Weights: []int64{10, 10, 10, 10}},
			expected:    0,
			description: "Equal halves of equal weights match the targets exactly",
		},
		{
			name:        "Lopsided",
			assignment:  framework.Assignment{0, 0, 0, 0},
			problem:     framework.Problem{Targets: []float64{0.5, 0.5}, Weights: []int64{10, 10, 10, 10}},
			expected:    1,
			description: "All worth in one of two halves is off by 0.5 twice",
		},
		{
			name:        "SingleCategory",
			assignment:  framework.Assignment{0, 0, 0},
			problem:     framework.Problem{Targets: []float64{1}, Weights: []int64{3, 7, 11}},
			expected:    0,
			description: "A single category always holds everything",
		},
		{
			name:        "Weighted",
			assignment:  framework.Assignment{0, 1, 1},
			problem:     framework.Problem{Targets: []float64{0.25, 0.75}, Weights: []int64{1, 1, 2}},
			expected:    0,
			description: "Heavier properties count proportionally",
		},
		{
			name:        "Worst",
			assignment:  framework.Assignment{1, 1},
			problem:     framework.Problem{Targets: []float64{1, 0}, Weights: []int64{5, 5}},
			expected:    2,
			description: "Everything in the zero-target category is the maximum cost",
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			got, err := share.ShareObjective(sc.assignment, sc.problem)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-sc.expected) > 1e-9 {
				t.Errorf("%s: cost = %v, want %v", sc.description, got, sc.expected)
			}

			fn := share.ShareObjectiveFunc(sc.problem)
			bound, err := fn(sc.assignment)
			if err != nil {
				t.Fatalf("bound objective: %v", err)
			}
			if math.Abs(bound-got) > 1e-12 {
				t.Errorf("bound objective = %v, direct = %v", bound, got)
			}
		})
	}
}

func TestShareObjectiveWithDetails(t *testing.T) {
	problem := framework.Problem{Targets: []float64{0.5, 0.3, 0.2}, Weights: []int64{50, 20, 20, 10}}
	cost, result, err := share.ShareObjectiveWithDetails(framework.Assignment{0, 1, 1, 2}, problem)
	if err != nil {
		t.Fatal(err)
	}
	// Achieved 0.5, 0.4, 0.1
	if math.Abs(cost-0.2) > 1e-9 {
		t.Errorf("cost = %v, want 0.2", cost)
	}
	if result.TotalWeight != 100 {
		t.Errorf("TotalWeight = %d", result.TotalWeight)
	}
	if result.Categories[1].Worth != 40 || result.Categories[1].Properties != 2 {
		t.Errorf("category 1 = %+v", result.Categories[1])
	}
	if math.Abs(result.Categories[2].Deviation+0.1) > 1e-9 {
		t.Errorf("category 2 deviation = %v, want -0.1", result.Categories[2].Deviation)
	}
	if math.Abs(result.RealCost()-20) > 1e-9 {
		t.Errorf("RealCost() = %v, want 20", result.RealCost())
	}
}

func TestShareObjectiveErrors(t *testing.T) {
	problem := framework.Problem{Targets: []float64{0.5, 0.5}, Weights: []int64{1, 2}}
	tests := []struct {
		name       string
		assignment framework.Assignment
		problem    framework.Problem
		wantErr    error
	}{
		{name: "short assignment", assignment: framework.Assignment{0}, problem: problem, wantErr: framework.ErrEvaluation},
		{name: "category out of range", assignment: framework.Assignment{0, 2}, problem: problem, wantErr: framework.ErrEvaluation},
		{name: "negative category", assignment: framework.Assignment{-1, 0}, problem: problem, wantErr: framework.ErrEvaluation},
		{
			name:       "zero total weight",
			assignment: framework.Assignment{0, 1},
			problem:    framework.Problem{Targets: []float64{0.5, 0.5}, Weights: []int64{0, 0}},
			wantErr:    framework.ErrInvalidConfiguration,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := share.ShareObjective(tc.assignment, tc.problem)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if _, err := share.Evaluate(framework.NewGene(tc.assignment), tc.problem); !errors.Is(err, tc.wantErr) {
				t.Errorf("Evaluate: expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}
