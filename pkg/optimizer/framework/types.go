package framework

import (
	"fmt"
	"math"
)

// TargetSumTolerance is how far the target ratios may drift from 1.
const TargetSumTolerance = 0.01

// Assignment maps each property, by position, to a category index.
type Assignment []int

// ObjectiveFunc scores an assignment. Lower is better.
type ObjectiveFunc func(Assignment) (float64, error)

// Clone returns an independent copy of the assignment.
func (a Assignment) Clone() Assignment {
	if a == nil {
		return nil
	}
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

// Histogram counts how many properties fall in each category.
// Indices outside [0, categories) are ignored.
func (a Assignment) Histogram(categories int) []int {
	counts := make([]int, categories)
	for _, c := range a {
		if c >= 0 && c < categories {
			counts[c]++
		}
	}
	return counts
}

// Distance is the sum over categories of the difference in how many
// properties each assignment places there. Two assignments that are
// permutations of each other have distance 0.
func (a Assignment) Distance(b Assignment, categories int) int {
	ha := a.Histogram(categories)
	hb := b.Histogram(categories)
	d := 0
	for i := range ha {
		if ha[i] > hb[i] {
			d += ha[i] - hb[i]
		} else {
			d += hb[i] - ha[i]
		}
	}
	return d
}

// Problem is the immutable input of one optimization: the desired share of
// every category and the worth of every property.
type Problem struct {
	Targets []float64
	Weights []int64
}

// Categories returns the number of categories.
func (p Problem) Categories() int { return len(p.Targets) }

// Properties returns the number of properties.
func (p Problem) Properties() int { return len(p.Weights) }

// TotalWeight returns the summed worth of all properties.
func (p Problem) TotalWeight() int64 {
	var total int64
	for _, w := range p.Weights {
		total += w
	}
	return total
}

// DeepCopy returns a copy that shares no memory with p.
func (p Problem) DeepCopy() Problem {
	out := Problem{}
	if p.Targets != nil {
		out.Targets = append([]float64(nil), p.Targets...)
	}
	if p.Weights != nil {
		out.Weights = append([]int64(nil), p.Weights...)
	}
	return out
}

// Validate checks the problem can be optimized.
func (p Problem) Validate() error {
	if len(p.Targets) == 0 {
		return fmt.Errorf("%w: no target ratios", ErrDatasetLengthMismatch)
	}
	if len(p.Weights) == 0 {
		return fmt.Errorf("%w: no property weights", ErrDatasetLengthMismatch)
	}

	sum := 0.0
	for i, t := range p.Targets {
		if math.IsNaN(t) || t < 0 || t > 1 {
			return fmt.Errorf("%w: target ratio %d must be in [0,1], got %v", ErrInvalidConfiguration, i, t)
		}
		sum += t
	}
	if math.Abs(sum-1) > TargetSumTolerance {
		return fmt.Errorf("%w: target ratios must sum to 1, got %.4f", ErrInvalidConfiguration, sum)
	}

	var total int64
	for i, w := range p.Weights {
		if w <= 0 {
			return fmt.Errorf("%w: property %d has non-positive weight %d", ErrInvalidConfiguration, i, w)
		}
		if total > math.MaxInt64-w {
			return fmt.Errorf("%w: total weight overflows", ErrInvalidConfiguration)
		}
		total += w
	}
	return nil
}
