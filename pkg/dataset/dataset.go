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

// Package dataset reads the two text files describing a problem: target
// ratios and property weights, each a whitespace-separated list of numbers.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"sigs.k8s.io/worthsplit/pkg/optimizer/framework"
)

// Options constrains what Load accepts. Zero values disable the checks.
type Options struct {
	// Categories is the expected number of target ratios.
	Categories int
	// Properties is the expected number of weights.
	Properties int
}

// Load reads and validates a problem from a targets file and a weights file.
func Load(targetsPath, weightsPath string, opts Options) (framework.Problem, error) {
	targets, err := readFile(targetsPath, ParseTargets)
	if err != nil {
		return framework.Problem{}, err
	}
	weights, err := readFile(weightsPath, ParseWeights)
	if err != nil {
		return framework.Problem{}, err
	}

	if opts.Categories > 0 && len(targets) != opts.Categories {
		return framework.Problem{}, fmt.Errorf("%w: %s has %d target ratios, expected %d",
			framework.ErrDatasetLengthMismatch, targetsPath, len(targets), opts.Categories)
	}
	if opts.Properties > 0 && len(weights) != opts.Properties {
		return framework.Problem{}, fmt.Errorf("%w: %s has %d weights, expected %d",
			framework.ErrDatasetLengthMismatch, weightsPath, len(weights), opts.Properties)
	}

	problem := framework.Problem{Targets: targets, Weights: weights}
	if err := problem.Validate(); err != nil {
		return framework.Problem{}, err
	}
	return problem, nil
}

func readFile[T any](path string, parse func(io.Reader, string) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	return parse(f, path)
}

// ParseTargets reads floating point ratios. source names the input in errors.
func ParseTargets(r io.Reader, source string) ([]float64, error) {
	return parseTokens(r, source, func(tok string) (float64, error) {
		return strconv.ParseFloat(tok, 64)
	})
}

// ParseWeights reads integer weights. source names the input in errors.
func ParseWeights(r io.Reader, source string) ([]int64, error) {
	return parseTokens(r, source, func(tok string) (int64, error) {
		return strconv.ParseInt(tok, 10, 64)
	})
}

func parseTokens[T any](r io.Reader, source string, parse func(string) (T, error)) ([]T, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	var values []T
	for position := 0; scanner.Scan(); position++ {
		tok := scanner.Text()
		v, err := parse(tok)
		if err != nil {
			return nil, &framework.DatasetFormatError{Path: source, Position: position, Token: tok, Err: err}
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %s holds no values", framework.ErrDatasetLengthMismatch, source)
	}
	return values, nil
}
