/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package options holds the flags of the worthsplit commands.
package options

import (
	"fmt"

	"github.com/spf13/pflag"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/worthsplit/pkg/api/v1alpha1"
	"sigs.k8s.io/worthsplit/pkg/dataset"
	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
	"sigs.k8s.io/worthsplit/pkg/tracing"
)

// WorthSplitServer is the configuration of a single run command.
type WorthSplitServer struct {
	ConfigFile         string
	MetricsBindAddress string
	Watch              bool
	Tracing            tracing.Config
	Expect             dataset.Options

	// flag-backed values, copied over the config file when set
	args                 v1alpha1.WorthSplitArgs
	mutationProbability  float64
	mutationSpan         int32
	eliteFraction        float64
	breedingPoolFraction float64
	generations          int32
	output               v1alpha1.OutputArgs

	flags *pflag.FlagSet
}

// NewWorthSplitServer returns options holding the stock defaults.
func NewWorthSplitServer() *WorthSplitServer {
	defaults := v1alpha1.NewDefaultWorthSplitArgs()
	return &WorthSplitServer{
		Tracing:              tracing.Config{SampleRate: 1},
		args:                 *defaults,
		mutationProbability:  *defaults.MutationProbability,
		mutationSpan:         *defaults.MutationSpan,
		eliteFraction:        *defaults.EliteFraction,
		breedingPoolFraction: *defaults.BreedingPoolFraction,
		generations:          *defaults.Generations,
	}
}

// AddFlags adds flags for a specific WorthSplitServer to the specified FlagSet
func (s *WorthSplitServer) AddFlags(fs *pflag.FlagSet) {
	s.flags = fs

	fs.StringVar(&s.ConfigFile, "config", s.ConfigFile, "File with WorthSplitArgs in YAML. Flags set explicitly take precedence over it.")
	fs.StringVar(&s.args.TargetsFile, "targets", s.args.TargetsFile, "File with the whitespace-separated target share of every category.")
	fs.StringVar(&s.args.WeightsFile, "weights", s.args.WeightsFile, "File with the whitespace-separated integer worth of every property.")
	fs.Int32Var(&s.args.PopulationSize, "population-size", s.args.PopulationSize, "Number of genes per generation.")
	fs.Float64Var(&s.mutationProbability, "mutation-probability", s.mutationProbability, "Fraction of the population mutated every generation.")
	fs.Int32Var(&s.mutationSpan, "mutation-span", s.mutationSpan, "Number of positions reassigned by one mutation.")
	fs.Float64Var(&s.eliteFraction, "elite-fraction", s.eliteFraction, "Fraction of the best genes copied unchanged into the next generation.")
	fs.Float64Var(&s.breedingPoolFraction, "breeding-pool-fraction", s.breedingPoolFraction, "Fraction of the best genes eligible as parents.")
	fs.Int32Var(&s.generations, "generations", s.generations, "Number of generations to run.")
	fs.StringVar(&s.args.Crossover, "crossover", s.args.Crossover, fmt.Sprintf("Crossover operator, one of %v.", algorithms.CrossoverNames()))
	fs.Int32Var(&s.args.WarmStart, "warm-start", s.args.WarmStart, "Number of initial genes built greedily instead of at random.")
	fs.Uint64Var(&s.args.Seed, "seed", s.args.Seed, "Random seed. 0 seeds from the clock.")
	fs.StringVar(&s.output.ChartHTML, "chart-html", "", "Write an interactive progress chart to this file.")
	fs.StringVar(&s.output.ChartImage, "chart-png", "", "Write a static progress chart to this file.")
	fs.StringVar(&s.output.SharesHTML, "shares-html", "", "Write a target versus achieved share chart to this file.")
	fs.IntVar(&s.Expect.Categories, "expected-categories", 0, "Reject datasets without exactly this many categories. 0 disables the check.")
	fs.IntVar(&s.Expect.Properties, "expected-properties", 0, "Reject datasets without exactly this many properties. 0 disables the check.")

	fs.BoolVar(&s.Watch, "watch", false, "Show live progress in the terminal. Press q or Esc to cancel.")
	fs.StringVar(&s.MetricsBindAddress, "metrics-bind-address", "", "Serve Prometheus metrics on this address while the run is active.")
	fs.StringVar(&s.Tracing.CollectorEndpoint, "otel-collector-endpoint", "", "OTLP gRPC collector for traces. Tracing is disabled when empty.")
	fs.StringVar(&s.Tracing.ServiceName, "otel-service-name", tracing.DefaultServiceName, "Service name reported with traces.")
	fs.Float64Var(&s.Tracing.SampleRate, "otel-sample-rate", s.Tracing.SampleRate, "Fraction of runs traced.")
}

// Args loads the config file, if any, applies explicitly set flags on top,
// and validates the result.
func (s *WorthSplitServer) Args() (*v1alpha1.WorthSplitArgs, error) {
	args := s.args.DeepCopy()
	if s.ConfigFile != "" {
		loaded, err := v1alpha1.LoadWorthSplitArgs(s.ConfigFile)
		if err != nil {
			return nil, err
		}
		args = loaded
		s.override(args)
	} else {
		args.MutationProbability = ptr.To(s.mutationProbability)
		args.MutationSpan = ptr.To(s.mutationSpan)
		args.EliteFraction = ptr.To(s.eliteFraction)
		args.BreedingPoolFraction = ptr.To(s.breedingPoolFraction)
		args.Generations = ptr.To(s.generations)
		args.Output = s.output.DeepCopy()
	}

	v1alpha1.Default(args)
	if err := v1alpha1.ValidateWorthSplitArgs(args); err != nil {
		return nil, err
	}
	if args.TargetsFile == "" || args.WeightsFile == "" {
		return nil, fmt.Errorf("both --targets and --weights (or targetsFile and weightsFile) are required")
	}
	return args, nil
}

func (s *WorthSplitServer) override(args *v1alpha1.WorthSplitArgs) {
	changed := func(name string) bool { return s.flags != nil && s.flags.Changed(name) }

	if changed("targets") {
		args.TargetsFile = s.args.TargetsFile
	}
	if changed("weights") {
		args.WeightsFile = s.args.WeightsFile
	}
	if changed("population-size") {
		args.PopulationSize = s.args.PopulationSize
	}
	if changed("mutation-probability") {
		args.MutationProbability = ptr.To(s.mutationProbability)
	}
	if changed("mutation-span") {
		args.MutationSpan = ptr.To(s.mutationSpan)
	}
	if changed("elite-fraction") {
		args.EliteFraction = ptr.To(s.eliteFraction)
	}
	if changed("breeding-pool-fraction") {
		args.BreedingPoolFraction = ptr.To(s.breedingPoolFraction)
	}
	if changed("generations") {
		args.Generations = ptr.To(s.generations)
	}
	if changed("crossover") {
		args.Crossover = s.args.Crossover
	}
	if changed("warm-start") {
		args.WarmStart = s.args.WarmStart
	}
	if changed("seed") {
		args.Seed = s.args.Seed
	}

	if args.Output == nil {
		args.Output = &v1alpha1.OutputArgs{}
	}
	if changed("chart-html") {
		args.Output.ChartHTML = s.output.ChartHTML
	}
	if changed("chart-png") {
		args.Output.ChartImage = s.output.ChartImage
	}
	if changed("shares-html") {
		args.Output.SharesHTML = s.output.SharesHTML
	}
}

// BenchOptions configures the bench command.
type BenchOptions struct {
	PopulationSize int
	Generations    int
	Seed           uint64
	OutputDir      string
}

// NewBenchOptions returns bench defaults small enough for a quick check.
func NewBenchOptions() *BenchOptions {
	return &BenchOptions{
		PopulationSize: 200,
		Generations:    500,
		Seed:           1,
	}
}

func (o *BenchOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.PopulationSize, "population-size", o.PopulationSize, "Number of genes per generation.")
	fs.IntVar(&o.Generations, "generations", o.Generations, "Number of generations per benchmark.")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Base random seed.")
	fs.StringVar(&o.OutputDir, "output-dir", o.OutputDir, "Write a progress chart per benchmark into this directory.")
}

// GAConfig returns the engine parameters for every benchmark.
func (o *BenchOptions) GAConfig() algorithms.GAConfig {
	cfg := algorithms.DefaultGAConfig()
	cfg.PopulationSize = o.PopulationSize
	cfg.Generations = o.Generations
	return cfg
}
