package tracker

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	testingclock "k8s.io/utils/clock/testing"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

func gene(fitness float64, a ...int) framework.Gene {
	return framework.NewGene(a).WithFitness(fitness)
}

func TestObserveStrictImprovement(t *testing.T) {
	tr := New(testingclock.NewFakePassiveClock(time.Unix(0, 0)))

	if _, ok := tr.Best(); ok {
		t.Fatal("fresh tracker must have no best gene")
	}
	if improved, _ := tr.Observe(framework.NewGene(framework.Assignment{0})); improved {
		t.Fatal("unevaluated genes must be ignored")
	}

	steps := []struct {
		name     string
		gene     framework.Gene
		improved bool
		best     float64
	}{
		{name: "first", gene: gene(0.8, 0), improved: true, best: 0.8},
		{name: "worse", gene: gene(0.9, 1), improved: false, best: 0.8},
		{name: "equal", gene: gene(0.8, 1), improved: false, best: 0.8},
		{name: "better", gene: gene(0.3, 1), improved: true, best: 0.3},
	}
	for _, step := range steps {
		improved, _ := tr.Observe(step.gene)
		if improved != step.improved {
			t.Errorf("%s: improved = %v, want %v", step.name, improved, step.improved)
		}
		best, _ := tr.Best()
		if f, _ := best.Score(); f != step.best {
			t.Errorf("%s: best = %v, want %v", step.name, f, step.best)
		}
	}

	// Equal fitness must not replace the stored gene.
	best, _ := tr.Best()
	if diff := cmp.Diff(framework.Assignment{1}, best.Assignment); diff != "" {
		t.Errorf("unexpected best assignment (-want +got):\n%s", diff)
	}
}

func TestObserveCopiesGene(t *testing.T) {
	tr := New(nil)
	g := gene(0.5, 0, 1, 2)
	tr.Observe(g)
	g.Assignment[0] = 2
	best, _ := tr.Best()
	if best.Assignment[0] != 0 {
		t.Errorf("tracker shares memory with the observed gene")
	}
}

func TestRecordAndSeries(t *testing.T) {
	clk := testingclock.NewFakePassiveClock(time.Unix(100, 0))
	tr := New(clk)

	tr.Record(gene(0.6, 0), 0.9, 0.2)
	clk.SetTime(time.Unix(101, 0))
	tr.Record(gene(0.4, 1), 0.7, 0.1)

	if tr.Generations() != 2 {
		t.Fatalf("Generations() = %d", tr.Generations())
	}
	last, ok := tr.Latest()
	if !ok || last.Generation != 1 || !last.Timestamp.Equal(time.Unix(101, 0)) {
		t.Errorf("Latest() = %+v", last)
	}
	if tr.Elapsed() != time.Second {
		t.Errorf("Elapsed() = %v", tr.Elapsed())
	}

	want := Series{
		Generations: []int{0, 1},
		Best:        []float64{0.6, 0.4},
		Average:     []float64{0.9, 0.7},
		Diversity:   []float64{0.2, 0.1},
	}
	if diff := cmp.Diff(want, tr.Series()); diff != "" {
		t.Errorf("Series() mismatch (-want +got):\n%s", diff)
	}

	tr.Reset()
	if tr.Generations() != 0 {
		t.Errorf("Reset() kept history")
	}
	if _, ok := tr.Best(); ok {
		t.Errorf("Reset() kept best gene")
	}
}
