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
	"k8s.io/utils/ptr"

	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
)

// GAConfig converts defaulted arguments to engine parameters.
func (a *WorthSplitArgs) GAConfig() algorithms.GAConfig {
	return algorithms.GAConfig{
		PopulationSize:       int(a.PopulationSize),
		MutationProbability:  ptr.Deref(a.MutationProbability, algorithms.DefaultMutationProbability),
		MutationSpan:         int(ptr.Deref[int32](a.MutationSpan, algorithms.DefaultMutationSpan)),
		EliteFraction:        ptr.Deref(a.EliteFraction, algorithms.DefaultEliteFraction),
		BreedingPoolFraction: ptr.Deref(a.BreedingPoolFraction, algorithms.DefaultBreedingPoolFraction),
		Generations:          int(ptr.Deref[int32](a.Generations, algorithms.DefaultGenerations)),
		Crossover:            a.Crossover,
		WarmStart:            int(a.WarmStart),
	}
}
