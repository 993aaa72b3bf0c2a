package benchmarks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"k8s.io/klog/v2"

	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
	"sigs.k8s.io/worthsplit/pkg/optimizer/tracker"
	"sigs.k8s.io/worthsplit/pkg/optimizer/util"
)

// TestSuite runs a set of benchmark problems
type TestSuite struct {
	benchmarks []Benchmark
	config     algorithms.GAConfig
	seed       uint64
}

// Outcome is the result of one benchmark.
type Outcome struct {
	Name        string
	State       algorithms.State
	BestFitness float64
	RealFitness float64
	// Gap is how far the best fitness ended above the known optimum.
	Gap         float64
	Generations int
	Elapsed     time.Duration
}

// NewTestSuite creates a new benchmark test suite. A non-zero seed makes
// every run reproducible.
func NewTestSuite(config algorithms.GAConfig, seed uint64) *TestSuite {
	return &TestSuite{
		config: config,
		seed:   seed,
	}
}

// AddBenchmark adds a benchmark to the test suite
func (ts *TestSuite) AddBenchmark(b Benchmark) {
	ts.benchmarks = append(ts.benchmarks, b)
}

// AddStandardBenchmarks adds the stock problems
func (ts *TestSuite) AddStandardBenchmarks() {
	ts.AddBenchmark(NewEqualSplit(1, 10))
	ts.AddBenchmark(NewEqualSplit(2, 10))
	ts.AddBenchmark(NewEqualSplit(5, 20))
	ts.AddBenchmark(NewPlanted(4, 50, 1))
	ts.AddBenchmark(NewPlanted(10, 200, 2))
	ts.AddBenchmark(NewSkewed(30))
}

// Benchmarks returns the registered benchmarks.
func (ts *TestSuite) Benchmarks() []Benchmark {
	return append([]Benchmark(nil), ts.benchmarks...)
}

// Run executes the test suite. When outputDir is set, a progress chart is
// written there for every benchmark.
func (ts *TestSuite) Run(ctx context.Context, outputDir string) ([]Outcome, error) {
	logger := klog.FromContext(ctx)
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	outcomes := make([]Outcome, 0, len(ts.benchmarks))
	for i, b := range ts.benchmarks {
		if ctx.Err() != nil {
			return outcomes, ctx.Err()
		}
		logger.Info("Running benchmark", "benchmark", b.Name,
			"categories", b.Problem.Categories(), "properties", b.Problem.Properties())

		opts := []algorithms.Option{}
		if ts.seed != 0 {
			opts = append(opts, algorithms.WithRandomSource(algorithms.NewRandomSource(ts.seed+uint64(i))))
		}
		engine, err := algorithms.NewEngine(ts.config, b.Problem, opts...)
		if err != nil {
			return outcomes, fmt.Errorf("benchmark %s: %w", b.Name, err)
		}
		result, err := engine.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("benchmark %s: %w", b.Name, err)
		}

		best, _ := result.Best.Score()
		outcome := Outcome{
			Name:        b.Name,
			State:       result.State,
			BestFitness: best,
			RealFitness: best * float64(b.Problem.TotalWeight()),
			Gap:         best - b.KnownOptimum,
			Generations: result.Generations,
			Elapsed:     result.Elapsed,
		}
		outcomes = append(outcomes, outcome)
		logger.Info("Benchmark finished", "benchmark", b.Name, "best", outcome.BestFitness,
			"gap", outcome.Gap, "generations", outcome.Generations, "elapsed", outcome.Elapsed)

		if outputDir != "" && len(result.History) > 0 {
			chart := filepath.Join(outputDir, fmt.Sprintf("%s_%s_progress.html", b.Name, algorithms.Name))
			if err := util.PlotProgress(tracker.SeriesOf(result.History), b.Name, chart); err != nil {
				logger.Error(err, "Failed to plot benchmark", "benchmark", b.Name)
			}
		}
	}
	return outcomes, nil
}
