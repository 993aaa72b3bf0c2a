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

// Package app implements the worthsplit commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/common/version"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"k8s.io/klog/v2"

	"sigs.k8s.io/worthsplit/cmd/worthsplit/app/options"
	"sigs.k8s.io/worthsplit/pkg/api/v1alpha1"
	"sigs.k8s.io/worthsplit/pkg/dataset"
	"sigs.k8s.io/worthsplit/pkg/display"
	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
	"sigs.k8s.io/worthsplit/pkg/optimizer/analysis"
	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
	"sigs.k8s.io/worthsplit/pkg/optimizer/metrics"
	"sigs.k8s.io/worthsplit/pkg/optimizer/runner"
	"sigs.k8s.io/worthsplit/pkg/optimizer/tracker"
	"sigs.k8s.io/worthsplit/pkg/optimizer/util"
	"sigs.k8s.io/worthsplit/pkg/tracing"
)

var (
	progressLogInterval = 5 * time.Second
	openScreen          = display.Open
)

// NewWorthSplitCommand creates a *cobra.Command object with default parameters
func NewWorthSplitCommand(ctx context.Context, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worthsplit",
		Short: "worthsplit partitions weighted properties into categories",
		Long: `worthsplit assigns every property to a category so that the share of total
worth held by each category approaches its target, using a genetic algorithm.`,
		SilenceUsage: true,
	}
	cmd.SetOut(out)
	cmd.AddCommand(NewRunCommand(ctx, out), NewBenchCommand(ctx, out), NewVersionCommand(out))
	return cmd
}

// NewRunCommand optimizes one dataset.
func NewRunCommand(ctx context.Context, out io.Writer) *cobra.Command {
	s := options.NewWorthSplitServer()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Optimize the assignment of one dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(ctx, s, out)
		},
	}
	s.AddFlags(cmd.Flags())
	return cmd
}

// NewVersionCommand prints build information.
func NewVersionCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Version of worthsplit",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out, version.Print("worthsplit"))
		},
	}
}

// Run loads the dataset, runs the optimizer in the background and reports
// the best assignment found. A cancelled run still reports its best.
func Run(ctx context.Context, s *options.WorthSplitServer, out io.Writer) error {
	logger := klog.FromContext(ctx)

	args, err := s.Args()
	if err != nil {
		return err
	}
	problem, err := dataset.Load(args.TargetsFile, args.WeightsFile, s.Expect)
	if err != nil {
		return err
	}
	logger.Info("Loaded dataset", "categories", problem.Categories(), "properties", problem.Properties(),
		"totalWeight", problem.TotalWeight())

	tracingConfig := s.Tracing
	if tracingConfig.ServiceVersion == "" {
		tracingConfig.ServiceVersion = version.Version
	}
	shutdown, err := tracing.NewTracerProvider(ctx, tracingConfig)
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error(err, "Failed to shut down tracer provider")
		}
	}()

	reg := metrics.NewRegistry()
	recorder := metrics.NewRecorder(reg)
	if s.MetricsBindAddress != "" {
		srv := metrics.NewServer(s.MetricsBindAddress, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(err, "Metrics server stopped", "address", s.MetricsBindAddress)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		logger.Info("Serving metrics", "address", s.MetricsBindAddress)
	}

	ctx, span := tracing.Tracer().Start(ctx, "Run")
	defer span.End()
	span.SetAttributes(
		attribute.Int("worthsplit.categories", problem.Categories()),
		attribute.Int("worthsplit.properties", problem.Properties()),
		attribute.Int("worthsplit.population", int(args.PopulationSize)),
	)

	config := args.GAConfig()
	r := runner.New(
		recorder.Hook(),
		algorithms.WithTracer(tracing.Tracer()),
		algorithms.WithRandomSource(algorithms.NewRandomSource(args.Seed)),
	)
	handle, err := r.Start(ctx, config, problem)
	if err != nil {
		return err
	}

	if s.Watch {
		if err := watch(ctx, handle, problem); err != nil {
			logger.Error(err, "Live view unavailable, logging progress instead")
			logProgress(ctx, handle)
		}
	} else {
		logProgress(ctx, handle)
	}
	result, runErr := handle.Wait()
	recorder.ObserveRun(result.State)
	span.SetAttributes(attribute.String("worthsplit.state", result.State.String()),
		attribute.Int("worthsplit.generations", result.Generations))
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		return runErr
	}

	logger.Info("Run finished", "state", result.State, "generations", result.Generations, "elapsed", result.Elapsed)
	if err := report(out, problem, result); err != nil {
		return err
	}
	return writeCharts(ctx, args.Output, problem, result)
}

func watch(ctx context.Context, handle *runner.Handle, problem framework.Problem) error {
	screen, err := openScreen()
	if err != nil {
		return err
	}
	defer screen.Fini()
	_, err = display.NewView(screen, "worthsplit", problem.TotalWeight()).Run(ctx, handle)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// logProgress logs the latest update at a fixed interval until the run ends.
func logProgress(ctx context.Context, handle *runner.Handle) {
	logger := klog.FromContext(ctx)
	ticker := time.NewTicker(progressLogInterval)
	defer ticker.Stop()
	for {
		select {
		case <-handle.Done():
			return
		case <-ticker.C:
			u := handle.Latest()
			logger.Info("Progress", "generation", u.Snapshot.Generation+1, "of", handle.Generations(),
				"best", u.Snapshot.BestFitness, "average", u.Snapshot.AverageFitness)
		}
	}
}

func report(out io.Writer, problem framework.Problem, result algorithms.Result) error {
	if !result.Best.Evaluated() {
		fmt.Fprintf(out, "Run %s before any generation completed\n", result.State)
		return nil
	}
	solutions := []analysis.Solution{{Name: "Best assignment", Assignment: result.Best.Assignment}}
	if n := len(result.History); n > 0 {
		solutions = append(solutions, analysis.Solution{
			Name:       fmt.Sprintf("Leader of generation %d", result.History[n-1].Generation),
			Assignment: result.History[n-1].BestGene.Assignment,
		})
	}
	results, err := analysis.AnalyzeSolutions(solutions, problem)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "State: %s\n", result.State)
	for _, r := range results {
		analysis.PrintDetailedAnalysis(out, r)
	}
	analysis.PrintHistorySummary(out, analysis.SummarizeHistory(result.History))
	fmt.Fprintf(out, "\nAssignment: %v\n", []int(result.Best.Assignment))
	return nil
}

func writeCharts(ctx context.Context, output *v1alpha1.OutputArgs, problem framework.Problem, result algorithms.Result) error {
	if output == nil {
		return nil
	}
	logger := klog.FromContext(ctx)
	series := tracker.SeriesOf(result.History)
	title := fmt.Sprintf("%d properties into %d categories", problem.Properties(), problem.Categories())

	if output.ChartHTML != "" {
		if err := util.PlotProgress(series, title, output.ChartHTML); err != nil {
			return err
		}
		logger.Info("Wrote progress chart", "path", output.ChartHTML)
	}
	if output.ChartImage != "" {
		if err := util.PlotProgressImage(series, title, output.ChartImage); err != nil {
			return err
		}
		logger.Info("Wrote progress image", "path", output.ChartImage)
	}
	if output.SharesHTML != "" && result.Best.Evaluated() {
		r, err := analysis.AnalyzeSolution(analysis.Solution{Name: "best", Assignment: result.Best.Assignment}, problem)
		if err != nil {
			return err
		}
		if err := util.PlotShares(r.Shares, title, output.SharesHTML); err != nil {
			return err
		}
		logger.Info("Wrote share chart", "path", output.SharesHTML)
	}
	return nil
}
