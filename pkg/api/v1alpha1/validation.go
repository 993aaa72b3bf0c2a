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
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"sigs.k8s.io/worthsplit/pkg/optimizer/algorithms"
	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

// ValidateWorthSplitArgs validates defaulted run arguments
func ValidateWorthSplitArgs(obj runtime.Object) error {
	args := obj.(*WorthSplitArgs)
	var errs field.ErrorList

	if args.APIVersion != "" && args.APIVersion != SchemeGroupVersion.String() {
		errs = append(errs, field.NotSupported(field.NewPath("apiVersion"), args.APIVersion, []string{SchemeGroupVersion.String()}))
	}
	if args.Kind != "" && args.Kind != "WorthSplitArgs" {
		errs = append(errs, field.NotSupported(field.NewPath("kind"), args.Kind, []string{"WorthSplitArgs"}))
	}

	if args.PopulationSize < 1 {
		errs = append(errs, field.Invalid(field.NewPath("populationSize"), args.PopulationSize, "must be at least 1"))
	}
	errs = append(errs, validateFraction(field.NewPath("mutationProbability"), args.MutationProbability)...)
	errs = append(errs, validateFraction(field.NewPath("eliteFraction"), args.EliteFraction)...)
	errs = append(errs, validateFraction(field.NewPath("breedingPoolFraction"), args.BreedingPoolFraction)...)

	if args.MutationSpan != nil && *args.MutationSpan < 0 {
		errs = append(errs, field.Invalid(field.NewPath("mutationSpan"), *args.MutationSpan, "must not be negative"))
	}
	if args.Generations != nil && *args.Generations < 0 {
		errs = append(errs, field.Invalid(field.NewPath("generations"), *args.Generations, "must not be negative"))
	}
	if args.PopulationSize >= 1 && args.BreedingPoolFraction != nil {
		if pool := algorithms.BreedingPoolSize(int(args.PopulationSize), *args.BreedingPoolFraction); pool < 1 {
			errs = append(errs, field.Invalid(field.NewPath("breedingPoolFraction"), *args.BreedingPoolFraction,
				fmt.Sprintf("selects no parents from a population of %d", args.PopulationSize)))
		}
	}
	if args.WarmStart < 0 || args.WarmStart > args.PopulationSize {
		errs = append(errs, field.Invalid(field.NewPath("warmStart"), args.WarmStart,
			fmt.Sprintf("must be between 0 and the population size %d", args.PopulationSize)))
	}
	if _, err := algorithms.CrossoverByName(args.Crossover); err != nil {
		errs = append(errs, field.NotSupported(field.NewPath("crossover"), args.Crossover, algorithms.CrossoverNames()))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", framework.ErrInvalidConfiguration, utilerrors.Reduce(errs.ToAggregate()))
}

func validateFraction(path *field.Path, value *float64) field.ErrorList {
	if value == nil {
		return nil
	}
	if !(*value >= 0 && *value <= 1) {
		return field.ErrorList{field.Invalid(path, *value, "must be between 0 and 1")}
	}
	return nil
}
