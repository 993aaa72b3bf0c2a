package algorithms

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

func TestCrossoverPreservesParentValues(t *testing.T) {
	rng := NewRandomSource(42)
	p1 := make([]int, 64)
	p2 := make([]int, 64)
	for i := range p1 {
		p1[i] = i % 3
		p2[i] = 3 + i%4
	}

	for _, name := range CrossoverNames() {
		t.Run(name, func(t *testing.T) {
			fn, err := CrossoverByName(name)
			if err != nil {
				t.Fatal(err)
			}
			for round := 0; round < 20; round++ {
				c1, c2 := fn(p1, p2, rng)
				if len(c1) != len(p1) || len(c2) != len(p2) {
					t.Fatalf("children have lengths %d/%d", len(c1), len(c2))
				}
				for i := range p1 {
					straight := c1[i] == p1[i] && c2[i] == p2[i]
					swapped := c1[i] == p2[i] && c2[i] == p1[i]
					if !straight && !swapped {
						t.Fatalf("position %d: children (%d,%d) not a permutation of parents (%d,%d)",
							i, c1[i], c2[i], p1[i], p2[i])
					}
				}
			}
		})
	}
}

func TestCrossoverChildrenAreUnevaluated(t *testing.T) {
	a := framework.NewGene(framework.Assignment{0, 1, 0}).WithFitness(0.1)
	b := framework.NewGene(framework.Assignment{1, 0, 1}).WithFitness(0.2)
	c1, c2 := Crossover(a, b, UniformCrossover, NewRandomSource(1))
	if c1.Evaluated() || c2.Evaluated() {
		t.Errorf("children must not carry fitness")
	}
}

func TestCrossoverByName(t *testing.T) {
	if _, err := CrossoverByName(""); err != nil {
		t.Errorf("empty name should resolve to Uniform: %v", err)
	}
	if _, err := CrossoverByName("Cycle"); !errors.Is(err, framework.ErrInvalidConfiguration) {
		t.Errorf("expected ErrInvalidConfiguration, got %v", err)
	}
}

func TestEliteAndPoolSizes(t *testing.T) {
	tests := []struct {
		size     int
		fraction float64
		elites   int
		pool     int
	}{
		{size: 10, fraction: 0.1, elites: 0, pool: 1},
		{size: 20, fraction: 0.1, elites: 2, pool: 2},
		{size: 30, fraction: 0.1, elites: 2, pool: 3},
		{size: 500, fraction: 0.1, elites: 50, pool: 50},
		{size: 7, fraction: 1, elites: 6, pool: 7},
	}
	for _, tc := range tests {
		if got := EliteCount(tc.size, tc.fraction); got != tc.elites {
			t.Errorf("EliteCount(%d, %v) = %d, want %d", tc.size, tc.fraction, got, tc.elites)
		}
		if got := BreedingPoolSize(tc.size, tc.fraction); got != tc.pool {
			t.Errorf("BreedingPoolSize(%d, %v) = %d, want %d", tc.size, tc.fraction, got, tc.pool)
		}
	}
}

func rankedPopulation(n, length int) Population {
	pop := make(Population, n)
	for i := range pop {
		a := make(framework.Assignment, length)
		for j := range a {
			a[j] = (i + j) % 2
		}
		pop[i] = framework.NewGene(a).WithFitness(float64(i) / 10)
	}
	return pop
}

func TestSelectorKeepsElitesAndSize(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		elites int
		pool   int
	}{
		{name: "even remainder", size: 10, elites: 2, pool: 9},
		{name: "odd remainder", size: 11, elites: 2, pool: 9},
		{name: "no elites", size: 5, elites: 0, pool: 1},
		{name: "all elites", size: 4, elites: 4, pool: 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ranked := rankedPopulation(tc.size, 8)
			s := Selector{Size: tc.size, Elites: tc.elites, PoolSize: tc.pool, Crossover: UniformCrossover}
			next := s.Next(ranked, NewRandomSource(7))

			if len(next) != tc.size {
				t.Fatalf("next generation has %d genes, want %d", len(next), tc.size)
			}
			for i := 0; i < tc.elites; i++ {
				if diff := cmp.Diff(ranked[i], next[i]); diff != "" {
					t.Errorf("elite %d changed (-want +got):\n%s", i, diff)
				}
			}
			for i := tc.elites; i < tc.size; i++ {
				if next[i].Evaluated() {
					t.Errorf("child %d carries a fitness", i)
				}
			}
		})
	}
}

func TestSelectorPoolOfOneClonesLeader(t *testing.T) {
	ranked := rankedPopulation(6, 5)
	s := Selector{Size: 6, Elites: 0, PoolSize: 1, Crossover: TwoPointCrossover}
	next := s.Next(ranked, NewRandomSource(3))
	for i, g := range next {
		if diff := cmp.Diff(ranked[0].Assignment, g.Assignment); diff != "" {
			t.Errorf("gene %d differs from the only parent (-want +got):\n%s", i, diff)
		}
	}
}

func TestMutator(t *testing.T) {
	tests := []struct {
		name        string
		size        int
		elites      int
		probability float64
		span        int
		wantCount   int
	}{
		{name: "default rate", size: 20, elites: 2, probability: 0.2, span: 5, wantCount: 4},
		{name: "capped at non-elites", size: 10, elites: 8, probability: 0.5, span: 1, wantCount: 2},
		{name: "zero rate", size: 10, elites: 0, probability: 0, span: 3, wantCount: 0},
		{name: "everyone", size: 6, elites: 0, probability: 1, span: 2, wantCount: 6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pop := rankedPopulation(tc.size, 12)
			before := pop.Clone()
			m := Mutator{Elites: tc.elites, Probability: tc.probability, Span: tc.span, Categories: 4}
			touched := m.Mutate(pop, NewRandomSource(11))

			if len(touched) != tc.wantCount {
				t.Fatalf("mutated %d genes, want %d", len(touched), tc.wantCount)
			}
			seen := map[int]bool{}
			for _, idx := range touched {
				if idx < tc.elites {
					t.Errorf("elite %d was mutated", idx)
				}
				if seen[idx] {
					t.Errorf("gene %d mutated twice", idx)
				}
				seen[idx] = true
				if pop[idx].Evaluated() {
					t.Errorf("mutated gene %d still carries fitness", idx)
				}
				changed := 0
				for j := range pop[idx].Assignment {
					if pop[idx].Assignment[j] != before[idx].Assignment[j] {
						changed++
					}
					if c := pop[idx].Assignment[j]; c < 0 || c >= 4 {
						t.Errorf("category %d out of range", c)
					}
				}
				if changed > tc.span {
					t.Errorf("gene %d changed in %d positions, span is %d", idx, changed, tc.span)
				}
			}
			for i := range pop {
				if !seen[i] {
					if diff := cmp.Diff(before[i], pop[i]); diff != "" {
						t.Errorf("untouched gene %d changed (-want +got):\n%s", i, diff)
					}
				}
			}
		})
	}
}

func TestPopulationStatistics(t *testing.T) {
	pop := Population{
		framework.NewGene(framework.Assignment{0}).WithFitness(1),
		framework.NewGene(framework.Assignment{1}).WithFitness(0),
		framework.NewGene(framework.Assignment{0}).WithFitness(0.5),
	}
	pop.Rank()
	want := []float64{0, 0.5, 1}
	for i, g := range pop {
		if f, _ := g.Score(); f != want[i] {
			t.Errorf("rank %d fitness = %v, want %v", i, f, want[i])
		}
	}
	if got := pop.AverageFitness(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("AverageFitness() = %v", got)
	}
	// Pair sums per row: 1.5, 1.0, 1.5 -> (0.5 + 1/3 + 0.5) / 3
	if got, want := pop.Diversity(), (0.5+1.0/3+0.5)/3; math.Abs(got-want) > 1e-12 {
		t.Errorf("Diversity() = %v, want %v", got, want)
	}

	same := Population{
		framework.NewGene(nil).WithFitness(0.3),
		framework.NewGene(nil).WithFitness(0.3),
	}
	if got := same.Diversity(); got != 0 {
		t.Errorf("identical fitness should have zero diversity, got %v", got)
	}
}

func TestShake(t *testing.T) {
	pop := Shake(15, 9, 3, NewRandomSource(5))
	if len(pop) != 15 {
		t.Fatalf("len = %d", len(pop))
	}
	for i, g := range pop {
		if g.Evaluated() {
			t.Errorf("gene %d is evaluated", i)
		}
		if len(g.Assignment) != 9 {
			t.Errorf("gene %d has length %d", i, len(g.Assignment))
		}
		for _, c := range g.Assignment {
			if c < 0 || c >= 3 {
				t.Errorf("gene %d holds category %d", i, c)
			}
		}
	}
}
