// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package run

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// loadInputFile loads a flat map of inputs from a YAML or JSON file, or
// from stdin when path is "-". Scalar values keep their literal text.
func loadInputFile(path string, stdin io.Reader) (map[string]string, error) {
	var data []byte
	var err error

	if path == "-" {
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read inputs file: %w", err)
		}
	}

	inputs := make(map[string]string)
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("failed to parse inputs file (expected a map of strings): %w", err)
	}
	return inputs, nil
}

// parseInputs parses key=value arguments and merges them over the inputs
// file, if one is given.
func parseInputs(inputArgs []string, inputsFile string, stdin io.Reader) (map[string]string, error) {
	inputs := make(map[string]string)
	if inputsFile != "" {
		var err error
		inputs, err = loadInputFile(inputsFile, stdin)
		if err != nil {
			return nil, err
		}
	}

	for _, arg := range inputArgs {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid input format %q (expected key=value)", arg)
		}
		inputs[strings.TrimSpace(key)] = value
	}

	return inputs, nil
}
