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
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"

	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
)

func addDefaultingFuncs(scheme *runtime.Scheme) error {
	return RegisterDefaults(scheme)
}

func RegisterDefaults(scheme *runtime.Scheme) error {
	klog.V(5).InfoS("Registering defaults", "kind", "WorthSplitArgs")
	scheme.AddTypeDefaultingFunc(&WorthSplitArgs{}, func(obj interface{}) {
		SetDefaults_WorthSplitArgs(obj.(*WorthSplitArgs))
	})
	return nil
}

func SetDefaults_WorthSplitArgs(obj runtime.Object) {
	args := obj.(*WorthSplitArgs)

	if args.PopulationSize == 0 {
		args.PopulationSize = algorithms.DefaultPopulationSize
	}
	if args.MutationProbability == nil {
		args.MutationProbability = ptr.To(algorithms.DefaultMutationProbability)
	}
	if args.MutationSpan == nil {
		args.MutationSpan = ptr.To[int32](algorithms.DefaultMutationSpan)
	}
	if args.EliteFraction == nil {
		args.EliteFraction = ptr.To(algorithms.DefaultEliteFraction)
	}
	if args.BreedingPoolFraction == nil {
		args.BreedingPoolFraction = ptr.To(algorithms.DefaultBreedingPoolFraction)
	}
	if args.Generations == nil {
		args.Generations = ptr.To[int32](algorithms.DefaultGenerations)
	}
	if args.Crossover == "" {
		args.Crossover = algorithms.CrossoverUniform
	}
}
