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

package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"sigs.k8s.io/worthsplit/cmd/worthsplit/app/options"
	"sigs.k8s.io/worthsplit/pkg/optimizer/benchmarks"
)

// NewBenchCommand runs the stock benchmark problems.
func NewBenchCommand(ctx context.Context, out io.Writer) *cobra.Command {
	o := options.NewBenchOptions()
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run the optimizer against benchmark problems with known optima",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Bench(ctx, o, out)
		},
	}
	o.AddFlags(cmd.Flags())
	return cmd
}

// Bench runs the standard suite and prints one line per benchmark.
func Bench(ctx context.Context, o *options.BenchOptions, out io.Writer) error {
	suite := benchmarks.NewTestSuite(o.GAConfig(), o.Seed)
	suite.AddStandardBenchmarks()
	outcomes, err := suite.Run(ctx, o.OutputDir)

	fmt.Fprintf(out, "%-24s %-10s %12s %12s %12s %8s %12s\n",
		"benchmark", "state", "best", "real", "gap", "gens", "elapsed")
	for _, oc := range outcomes {
		fmt.Fprintf(out, "%-24s %-10s %12.6f %12.2f %12.6f %8d %12s\n",
			oc.Name, oc.State, oc.BestFitness, oc.RealFitness, oc.Gap, oc.Generations, oc.Elapsed.Round(time.Millisecond))
	}
	return err
}
