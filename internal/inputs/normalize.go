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

// Package inputs turns the loosely typed string inputs of an action into
// typed, validated values. Blank inputs fall back to documented defaults;
// malformed ones produce a *errors.ValidationError naming the input.
package inputs

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// NotRelevant is the sentinel a caller passes to mark an optional input as
// intentionally unset. It compares case-insensitively.
const NotRelevant = "Not relevant"

// DefaultDelimiter separates items in list-valued inputs.
const DefaultDelimiter = ","

// Instance state codes accepted by the DescribeInstances state-code filter.
var instanceStateCodes = []string{"0", "16", "32", "48", "64", "80"}

// IsBlank reports whether raw is empty, whitespace, or the NotRelevant sentinel.
func IsBlank(raw string) bool {
	s := strings.TrimSpace(raw)
	return s == "" || foldEqual(s, NotRelevant)
}

// DefaultString returns def when raw is blank, else raw with surrounding
// whitespace removed.
func DefaultString(raw, def string) string {
	if IsBlank(raw) {
		return def
	}
	return strings.TrimSpace(raw)
}

// RelevantBoolean returns "true" or "false" when raw spells one of them in
// any case, and "" otherwise. The empty result means the flag is omitted
// from the request.
func RelevantBoolean(raw string) string {
	s := strings.TrimSpace(raw)
	switch {
	case foldEqual(s, "true"):
		return "true"
	case foldEqual(s, "false"):
		return "false"
	default:
		return ""
	}
}

// EnforcedBoolean parses raw as a boolean, returning def for anything that
// does not spell true or false.
func EnforcedBoolean(raw string, def bool) bool {
	switch RelevantBoolean(raw) {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// ValidLong parses raw as a base-10 integer. Blank input yields def.
func ValidLong(field, raw string, def int64) (int64, error) {
	if IsBlank(raw) {
		return def, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, ec2errors.Validation(field, "not a valid integer: "+strconv.Quote(raw), "")
	}
	return n, nil
}

// ValidPositive parses an optional positive integer and returns its
// canonical decimal form, or "" when raw is blank.
func ValidPositive(field, raw string) (string, error) {
	if IsBlank(raw) {
		return "", nil
	}
	n, err := ValidLong(field, raw, 0)
	if err != nil {
		return "", err
	}
	if n <= 0 {
		return "", ec2errors.Validation(field, "must be greater than zero", "")
	}
	return strconv.FormatInt(n, 10), nil
}

// ValidNonNegative parses an optional integer that may be zero, such as a
// device index, returning "" when raw is blank.
func ValidNonNegative(field, raw string) (string, error) {
	if IsBlank(raw) {
		return "", nil
	}
	n, err := ValidLong(field, raw, 0)
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", ec2errors.Validation(field, "must not be negative", "")
	}
	return strconv.FormatInt(n, 10), nil
}

// ValidInstancesCount parses an instance count. Blank means one instance.
func ValidInstancesCount(field, raw string) (int, error) {
	n, err := ValidLong(field, raw, 1)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, ec2errors.Validation(field, "instance count must be at least 1", "")
	}
	return int(n), nil
}

// ValidateInstanceCounts checks that both counts are positive and that
// min does not exceed max.
func ValidateInstanceCounts(minCount, maxCount int) error {
	if minCount < 1 || maxCount < 1 {
		return ec2errors.Validation(InputMinCount, "instance counts must be at least 1", "")
	}
	if minCount > maxCount {
		return ec2errors.Validation(InputMinCount,
			"minCount ("+strconv.Itoa(minCount)+") is greater than maxCount ("+strconv.Itoa(maxCount)+")", "")
	}
	return nil
}

// ValidInstanceStateCode returns the canonical state code or "" when raw is
// blank. Codes outside the documented set are rejected.
func ValidInstanceStateCode(raw string) (string, error) {
	if IsBlank(raw) {
		return "", nil
	}
	code := strings.TrimSpace(raw)
	for _, c := range instanceStateCodes {
		if c == code {
			return c, nil
		}
	}
	return "", ec2errors.Validation(InputInstanceStateCode,
		"unsupported instance state code "+strconv.Quote(raw),
		"Valid values: "+strings.Join(instanceStateCodes, ", "))
}

// SplitList splits raw on delimiter, trimming each item and dropping empty
// ones. A blank delimiter means DefaultDelimiter.
func SplitList(raw, delimiter string) []string {
	if IsBlank(raw) {
		return nil
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	parts := strings.Split(raw, delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitValues splits a tag value list. Unlike SplitList the NotRelevant
// sentinel survives as an item, so a single cleared value still lines up
// with its key.
func SplitValues(raw, delimiter string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if delimiter == "" {
		delimiter = DefaultDelimiter
	}
	parts := strings.Split(raw, delimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Pair is one key/value item from two aligned lists.
type Pair struct {
	Key   string
	Value string
}

// PairLists zips keys and values. The lists must be the same length; a
// value equal to the NotRelevant sentinel becomes an empty value.
func PairLists(keysField string, keys, values []string) ([]Pair, error) {
	if len(keys) != len(values) {
		return nil, ec2errors.Validation(keysField,
			"key and value lists are misaligned: "+strconv.Itoa(len(keys))+" keys, "+strconv.Itoa(len(values))+" values",
			"Provide one value per key; use \""+NotRelevant+"\" for an empty value")
	}
	pairs := make([]Pair, len(keys))
	for i := range keys {
		v := values[i]
		if foldEqual(v, NotRelevant) {
			v = ""
		}
		pairs[i] = Pair{Key: keys[i], Value: v}
	}
	return pairs, nil
}

// foldEqual compares under Unicode case folding. cases.Caser keeps state,
// so one is built per call.
func foldEqual(a, b string) bool {
	if len(a) == 0 || len(b) == 0 {
		return len(a) == len(b)
	}
	c := cases.Fold()
	return c.String(a) == c.String(b)
}
