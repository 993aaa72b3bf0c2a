package algorithms

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"k8s.io/klog/v2"
	"k8s.io/utils/clock"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
	"sigs.k8s.io/worthsplit/pkg/optimizer/objectives/share"
	"sigs.k8s.io/worthsplit/pkg/optimizer/tracker"
	"sigs.k8s.io/worthsplit/pkg/optimizer/warmstart"
)

const (
	Name = "WorthSplitGA"

	tracerName = "sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
)

const (
	DefaultPopulationSize       = 500
	DefaultMutationProbability  = 0.2
	DefaultMutationSpan         = 5
	DefaultEliteFraction        = 0.1
	DefaultBreedingPoolFraction = 0.9
	DefaultGenerations          = 5000
)

// ErrNotInitialized is returned by Step before Shake.
var ErrNotInitialized = errors.New("engine has no population, call Shake first")

// GAConfig holds the evolution parameters.
type GAConfig struct {
	PopulationSize       int
	MutationProbability  float64
	MutationSpan         int
	EliteFraction        float64
	BreedingPoolFraction float64
	Generations          int
	Crossover            string
	// WarmStart is the number of initial genes built greedily instead of
	// drawn at random.
	WarmStart int
}

// DefaultGAConfig returns the stock parameters.
func DefaultGAConfig() GAConfig {
	return GAConfig{
		PopulationSize:       DefaultPopulationSize,
		MutationProbability:  DefaultMutationProbability,
		MutationSpan:         DefaultMutationSpan,
		EliteFraction:        DefaultEliteFraction,
		BreedingPoolFraction: DefaultBreedingPoolFraction,
		Generations:          DefaultGenerations,
		Crossover:            CrossoverUniform,
	}
}

// Validate checks every parameter is in range.
func (c GAConfig) Validate() error {
	if c.PopulationSize < 1 {
		return fmt.Errorf("%w: population size must be at least 1, got %d", framework.ErrInvalidConfiguration, c.PopulationSize)
	}
	fractions := []struct {
		name  string
		value float64
	}{
		{"mutation probability", c.MutationProbability},
		{"elite fraction", c.EliteFraction},
		{"breeding pool fraction", c.BreedingPoolFraction},
	}
	for _, f := range fractions {
		if !(f.value >= 0 && f.value <= 1) {
			return fmt.Errorf("%w: %s must be in [0,1], got %v", framework.ErrInvalidConfiguration, f.name, f.value)
		}
	}
	if c.MutationSpan < 0 {
		return fmt.Errorf("%w: mutation span must not be negative, got %d", framework.ErrInvalidConfiguration, c.MutationSpan)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must not be negative, got %d", framework.ErrInvalidConfiguration, c.Generations)
	}
	if pool := BreedingPoolSize(c.PopulationSize, c.BreedingPoolFraction); pool < 1 {
		return fmt.Errorf("%w: breeding pool of %d genes is empty (population %d, fraction %v)",
			framework.ErrInvalidConfiguration, pool, c.PopulationSize, c.BreedingPoolFraction)
	}
	if _, err := CrossoverByName(c.Crossover); err != nil {
		return err
	}
	if c.WarmStart < 0 || c.WarmStart > c.PopulationSize {
		return fmt.Errorf("%w: warm start must be in [0,%d], got %d", framework.ErrInvalidConfiguration, c.PopulationSize, c.WarmStart)
	}
	return nil
}

// State is the lifecycle phase of an Engine.
type State int

const (
	StateIdle State = iota
	StateInitialized
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateInitialized:
		return "Initialized"
	case StateRunning:
		return "Running"
	case StateCompleted:
		return "Completed"
	case StateCancelled:
		return "Cancelled"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether no further generations will run.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled || s == StateFailed
}

// Progress describes one finished generation.
type Progress struct {
	Snapshot tracker.Snapshot
	// Best is the best-known gene across all generations so far.
	Best     framework.Gene
	Improved bool
	Duration time.Duration
}

// GenerationHook is called synchronously after every generation.
type GenerationHook func(Progress)

// Result is the outcome of Run.
type Result struct {
	State       State
	Best        framework.Gene
	Generations int
	History     []tracker.Snapshot
	Elapsed     time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithRandomSource replaces the time-seeded source.
func WithRandomSource(rng RandomSource) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock sets the clock used for snapshot timestamps and durations.
func WithClock(c clock.PassiveClock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithObjective replaces the share objective, e.g. with one wrapping it.
func WithObjective(obj framework.ObjectiveFunc) Option {
	return func(e *Engine) { e.objective = obj }
}

// WithTracer sets the tracer for per-generation spans.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithGenerationHook adds a hook run after each generation.
func WithGenerationHook(h GenerationHook) Option {
	return func(e *Engine) { e.hooks = append(e.hooks, h) }
}

// Engine evolves a population toward the target shares. It is not safe
// for concurrent use.
type Engine struct {
	config    GAConfig
	problem   framework.Problem
	objective framework.ObjectiveFunc
	selector  Selector
	mutator   Mutator

	rng     RandomSource
	clock   clock.PassiveClock
	tracer  trace.Tracer
	hooks   []GenerationHook
	tracker *tracker.Tracker

	state      State
	population Population
	generation int
}

// NewEngine validates config and problem and returns an idle engine.
func NewEngine(config GAConfig, problem framework.Problem, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	crossover, err := CrossoverByName(config.Crossover)
	if err != nil {
		return nil, err
	}

	problem = problem.DeepCopy()
	elites := EliteCount(config.PopulationSize, config.EliteFraction)
	e := &Engine{
		config:    config,
		problem:   problem,
		objective: share.ShareObjectiveFunc(problem),
		selector: Selector{
			Size:      config.PopulationSize,
			Elites:    elites,
			PoolSize:  BreedingPoolSize(config.PopulationSize, config.BreedingPoolFraction),
			Crossover: crossover,
		},
		mutator: Mutator{
			Elites:      elites,
			Probability: config.MutationProbability,
			Span:        config.MutationSpan,
			Categories:  problem.Categories(),
		},
		state: StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRandomSource(0)
	}
	if e.clock == nil {
		e.clock = clock.RealClock{}
	}
	if e.tracer == nil {
		e.tracer = otel.Tracer(tracerName)
	}
	e.tracker = tracker.New(e.clock)
	return e, nil
}

// Shake replaces the population with random genes, the first WarmStart of
// them built greedily, and clears all progress.
func (e *Engine) Shake() {
	e.population = Shake(e.config.PopulationSize, e.problem.Properties(), e.problem.Categories(), e.rng)
	for i, seed := range warmstart.Seeds(e.problem, e.config.WarmStart, e.rng) {
		e.population[i] = framework.NewGene(seed)
	}
	e.tracker.Reset()
	e.generation = 0
	e.state = StateInitialized
}

// Step runs a single generation: evaluate, rank, record, select, mutate.
func (e *Engine) Step(ctx context.Context) (Progress, error) {
	if e.state != StateInitialized && e.state != StateRunning {
		return Progress{}, fmt.Errorf("%w (state %s)", ErrNotInitialized, e.state)
	}
	e.state = StateRunning

	ctx, span := e.tracer.Start(ctx, "Generation", trace.WithAttributes(attribute.Int("generation", e.generation)))
	defer span.End()
	logger := klog.FromContext(ctx)
	start := e.clock.Now()

	if err := e.population.Evaluate(e.objective); err != nil {
		e.state = StateFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Progress{}, fmt.Errorf("generation %d: %w", e.generation, err)
	}
	e.population.Rank()

	leader := e.population[0]
	average := e.population.AverageFitness()
	diversity := e.population.Diversity()

	improved, previous := e.tracker.Observe(leader)
	snapshot := e.tracker.Record(leader, average, diversity)
	if improved {
		if snapshot.Generation == 0 {
			logger.V(2).Info("Initial best gene", "fitness", snapshot.BestFitness)
		} else {
			logger.V(2).Info("New best gene", "generation", snapshot.Generation,
				"fitness", snapshot.BestFitness, "improvement", previous-snapshot.BestFitness)
		}
	}

	next := e.selector.Next(e.population, e.rng)
	mutated := e.mutator.Mutate(next, e.rng)
	e.population = next
	e.generation++

	best, _ := e.tracker.Best()
	progress := Progress{
		Snapshot: snapshot,
		Best:     best,
		Improved: improved,
		Duration: e.clock.Since(start),
	}

	span.SetAttributes(
		attribute.Float64("best_fitness", snapshot.BestFitness),
		attribute.Float64("average_fitness", average),
		attribute.Int("mutated", len(mutated)),
	)
	logger.V(4).Info("Generation complete", "generation", snapshot.Generation,
		"best", snapshot.BestFitness, "average", average, "diversity", diversity, "duration", progress.Duration)

	for _, h := range e.hooks {
		h(progress)
	}
	return progress, nil
}

// Run shakes the population and evolves it for the configured number of
// generations. Cancelling ctx stops the run between generations; that is
// reported through Result.State, not as an error.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	logger := klog.FromContext(ctx).WithValues("algorithm", Name)
	ctx = klog.NewContext(ctx, logger)

	e.Shake()
	e.state = StateRunning
	logger.V(2).Info("Starting evolution",
		"populationSize", e.config.PopulationSize,
		"generations", e.config.Generations,
		"categories", e.problem.Categories(),
		"properties", e.problem.Properties(),
		"elites", e.selector.Elites,
		"breedingPool", e.selector.PoolSize,
		"crossover", e.config.Crossover,
		"warmStart", e.config.WarmStart)

	for e.generation < e.config.Generations {
		if ctx.Err() != nil {
			e.state = StateCancelled
			logger.Info("Evolution cancelled", "generation", e.generation)
			return e.Result(), nil
		}
		if _, err := e.Step(ctx); err != nil {
			logger.Error(err, "Evolution failed", "generation", e.generation)
			return e.Result(), err
		}
	}

	e.state = StateCompleted
	result := e.Result()
	bestFitness, _ := result.Best.Score()
	logger.V(2).Info("Evolution complete", "generations", result.Generations,
		"bestFitness", bestFitness, "elapsed", result.Elapsed)
	return result, nil
}

// Result summarizes the engine's current progress.
func (e *Engine) Result() Result {
	best, _ := e.tracker.Best()
	return Result{
		State:       e.state,
		Best:        best,
		Generations: e.tracker.Generations(),
		History:     e.tracker.History(),
		Elapsed:     e.tracker.Elapsed(),
	}
}

func (e *Engine) State() State { return e.state }

// Generation is the number of generations completed since the last Shake.
func (e *Engine) Generation() int { return e.generation }

func (e *Engine) Config() GAConfig { return e.config }

// Problem returns a copy of the problem being solved.
func (e *Engine) Problem() framework.Problem { return e.problem.DeepCopy() }

// Population returns a copy of the current population.
func (e *Engine) Population() Population { return e.population.Clone() }

// Best returns the best-known gene.
func (e *Engine) Best() (framework.Gene, bool) { return e.tracker.Best() }

// History returns the per-generation snapshots.
func (e *Engine) History() []tracker.Snapshot { return e.tracker.History() }
