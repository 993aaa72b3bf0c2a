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

package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// WorthSplitArgs configures one optimization run
type WorthSplitArgs struct {
	metav1.TypeMeta `json:",inline"`

	// TargetsFile holds the whitespace-separated target share of every category
	TargetsFile string `json:"targetsFile,omitempty"`

	// WeightsFile holds the whitespace-separated integer worth of every property
	WeightsFile string `json:"weightsFile,omitempty"`

	// PopulationSize is the number of genes per generation
	PopulationSize int32 `json:"populationSize,omitempty"`

	// MutationProbability is the fraction of the population mutated per generation
	MutationProbability *float64 `json:"mutationProbability,omitempty"`

	// MutationSpan is how many positions a single mutation reassigns
	MutationSpan *int32 `json:"mutationSpan,omitempty"`

	// EliteFraction is the fraction of top genes copied unchanged
	EliteFraction *float64 `json:"eliteFraction,omitempty"`

	// BreedingPoolFraction is the fraction of top genes eligible as parents
	BreedingPoolFraction *float64 `json:"breedingPoolFraction,omitempty"`

	// Generations is the number of generations to run
	Generations *int32 `json:"generations,omitempty"`

	// Crossover names the recombination operator: Uniform, OnePoint or TwoPoint
	Crossover string `json:"crossover,omitempty"`

	// WarmStart is how many initial genes are built greedily instead of at random
	WarmStart int32 `json:"warmStart,omitempty"`

	// Seed makes the run reproducible. Zero seeds from the clock.
	Seed uint64 `json:"seed,omitempty"`

	// Output controls the files written after the run
	Output *OutputArgs `json:"output,omitempty"`
}

// OutputArgs lists optional result files
type OutputArgs struct {
	// ChartHTML is the path of an interactive progress chart
	ChartHTML string `json:"chartHTML,omitempty"`

	// ChartImage is the path of a static progress chart; the extension picks the format
	ChartImage string `json:"chartImage,omitempty"`

	// SharesHTML is the path of a target-versus-achieved bar chart
	SharesHTML string `json:"sharesHTML,omitempty"`
}
