package framework

import (
	"k8s.io/utils/ptr"
)

// Gene is a candidate solution. Fitness is nil until the gene is scored.
type Gene struct {
	Assignment Assignment
	Fitness    *float64
}

// NewGene wraps an assignment in an unevaluated gene.
func NewGene(a Assignment) Gene {
	return Gene{Assignment: a}
}

// Evaluated reports whether the gene carries a fitness.
func (g Gene) Evaluated() bool {
	return g.Fitness != nil
}

// Score returns the fitness, or 0 and false when unevaluated.
func (g Gene) Score() (float64, bool) {
	return ptr.Deref(g.Fitness, 0), g.Fitness != nil
}

// WithFitness returns a copy of g scored with f.
func (g Gene) WithFitness(f float64) Gene {
	g.Fitness = ptr.To(f)
	return g
}

// Unevaluated returns a copy of g with its fitness cleared.
func (g Gene) Unevaluated() Gene {
	g.Fitness = nil
	return g
}

// DeepCopy returns a gene sharing no memory with g.
func (g Gene) DeepCopy() Gene {
	out := Gene{Assignment: g.Assignment.Clone()}
	if g.Fitness != nil {
		out.Fitness = ptr.To(*g.Fitness)
	}
	return out
}
