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
	"os"

	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	"sigs.k8s.io/yaml"
)

var scheme = runtime.NewScheme()

func init() {
	utilruntime.Must(AddToScheme(scheme))
}

// NewDefaultWorthSplitArgs returns fully defaulted arguments.
func NewDefaultWorthSplitArgs() *WorthSplitArgs {
	args := &WorthSplitArgs{}
	Default(args)
	return args
}

// Default fills every unset field.
func Default(args *WorthSplitArgs) {
	scheme.Default(args)
	args.SetGroupVersionKind(SchemeGroupVersion.WithKind("WorthSplitArgs"))
}

// LoadWorthSplitArgs reads a YAML file, rejecting unknown fields, and
// returns the defaulted and validated arguments. Callers overriding fields
// afterwards must validate again.
func LoadWorthSplitArgs(path string) (*WorthSplitArgs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	args := &WorthSplitArgs{}
	if err := yaml.UnmarshalStrict(data, args); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	Default(args)
	if err := ValidateWorthSplitArgs(args); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return args, nil
}
