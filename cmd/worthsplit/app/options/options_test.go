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

package options

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"sigs.k8s.io/worthsplit/pkg/api/v1alpha1"
	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

func parse(t *testing.T, args ...string) *WorthSplitServer {
	t.Helper()
	s := NewWorthSplitServer()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	s.AddFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	return s
}

func TestArgsFromFlags(t *testing.T) {
	s := parse(t, "--targets=t.txt", "--weights=w.txt", "--population-size=40",
		"--generations=12", "--crossover=TwoPoint", "--seed=7", "--chart-png=out.png")
	args, err := s.Args()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := args.GAConfig()
	if cfg.PopulationSize != 40 || cfg.Generations != 12 || cfg.Crossover != "TwoPoint" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if args.Seed != 7 {
		t.Errorf("expected seed 7, got %d", args.Seed)
	}
	if args.Output == nil || args.Output.ChartImage != "out.png" {
		t.Errorf("expected chart image output, got %+v", args.Output)
	}
	defaults := v1alpha1.NewDefaultWorthSplitArgs()
	if *args.MutationProbability != *defaults.MutationProbability {
		t.Errorf("unset flag changed mutation probability to %v", *args.MutationProbability)
	}
}

func TestArgsFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "config.yaml")
	data := `apiVersion: worthsplit.sigs.k8s.io/v1alpha1
kind: WorthSplitArgs
targetsFile: from-config-targets.txt
weightsFile: from-config-weights.txt
populationSize: 80
eliteFraction: 0.2
generations: 30
`
	if err := os.WriteFile(config, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s := parse(t, "--config="+config, "--generations=5", "--weights=w.txt")
	args, err := s.Args()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := struct {
		Targets, Weights string
		Population       int32
		Elite            float64
		Generations      int32
	}{args.TargetsFile, args.WeightsFile, args.PopulationSize, *args.EliteFraction, *args.Generations}
	want := struct {
		Targets, Weights string
		Population       int32
		Elite            float64
		Generations      int32
	}{"from-config-targets.txt", "w.txt", 80, 0.2, 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected merged args (-want +got):\n%s", diff)
	}
}

func TestArgsErrors(t *testing.T) {
	tests := []struct {
		name    string
		flags   []string
		wantCfg bool
	}{
		{name: "missing files", flags: nil},
		{name: "bad crossover", flags: []string{"--targets=t", "--weights=w", "--crossover=shuffle"}, wantCfg: true},
		{name: "fraction out of range", flags: []string{"--targets=t", "--weights=w", "--elite-fraction=1.5"}, wantCfg: true},
		{name: "empty breeding pool", flags: []string{"--targets=t", "--weights=w", "--population-size=1", "--breeding-pool-fraction=0.5"}, wantCfg: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parse(t, tc.flags...).Args()
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.wantCfg && !errors.Is(err, framework.ErrInvalidConfiguration) {
				t.Errorf("expected ErrInvalidConfiguration, got %v", err)
			}
		})
	}
}

func TestBenchOptions(t *testing.T) {
	o := NewBenchOptions()
	fs := pflag.NewFlagSet("bench", pflag.ContinueOnError)
	o.AddFlags(fs)
	if err := fs.Parse([]string{"--population-size=30", "--generations=9"}); err != nil {
		t.Fatal(err)
	}
	cfg := o.GAConfig()
	if cfg.PopulationSize != 30 || cfg.Generations != 9 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("bench config invalid: %v", err)
	}
}
