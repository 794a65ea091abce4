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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseInputs_KeyValue(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantKey   string
		wantValue string
		wantErr   bool
	}{
		{
			name:      "single key-value",
			args:      []string{"region=eu-west-1"},
			wantKey:   "region",
			wantValue: "eu-west-1",
		},
		{
			name:      "multiple key-values",
			args:      []string{"region=eu-west-1", "maxCount=3"},
			wantKey:   "maxCount",
			wantValue: "3",
		},
		{
			name:      "value with equals sign",
			args:      []string{"userData=a=b"},
			wantKey:   "userData",
			wantValue: "a=b",
		},
		{
			name:      "empty value",
			args:      []string{"region="},
			wantKey:   "region",
			wantValue: "",
		},
		{
			name:    "invalid format",
			args:    []string{"invalid"},
			wantErr: true,
		},
		{
			name:    "empty key",
			args:    []string{"=value"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs, err := parseInputs(tt.args, "", nil)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			val, ok := inputs[tt.wantKey]
			if !ok {
				t.Errorf("key %q not found in inputs", tt.wantKey)
			} else if val != tt.wantValue {
				t.Errorf("expected %q=%q, got %q=%q", tt.wantKey, tt.wantValue, tt.wantKey, val)
			}
		})
	}
}

func TestParseInputs_FileMergedWithArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.yaml")
	content := "region: us-west-2\nmaxCount: 2\nencrypted: true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write inputs file: %v", err)
	}

	inputs, err := parseInputs([]string{"region=eu-west-1"}, path, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if inputs["region"] != "eu-west-1" {
		t.Errorf("expected --input to override file, got %q", inputs["region"])
	}
	if inputs["maxCount"] != "2" {
		t.Errorf("expected scalar to keep its text, got %q", inputs["maxCount"])
	}
	if inputs["encrypted"] != "true" {
		t.Errorf("expected encrypted=true, got %q", inputs["encrypted"])
	}
}

func TestParseInputs_Stdin(t *testing.T) {
	inputs, err := parseInputs(nil, "-", strings.NewReader(`{"instanceId": "i-0abc"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inputs["instanceId"] != "i-0abc" {
		t.Errorf("expected instanceId from stdin, got %q", inputs["instanceId"])
	}
}

func TestParseInputs_FileErrors(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested.yaml")
	if err := os.WriteFile(nested, []byte("filters:\n  - a\n  - b\n"), 0o600); err != nil {
		t.Fatalf("failed to write inputs file: %v", err)
	}

	if _, err := parseInputs(nil, filepath.Join(dir, "missing.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := parseInputs(nil, nested, nil); err == nil {
		t.Error("expected error for non-string values")
	}
}
