// Package jq evaluates jq expressions against action results for
// "ec2actions run --jq".
package jq

import (
	"context"
	"fmt"
	"time"

	"github.com/itchyny/gojq"
)

// DefaultTimeout bounds one expression evaluation.
const DefaultTimeout = 1 * time.Second

// Executor compiles and runs jq expressions with a time limit.
type Executor struct {
	timeout time.Duration
}

// NewExecutor creates a new jq executor. A zero timeout means DefaultTimeout.
func NewExecutor(timeout time.Duration) *Executor {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Executor{timeout: timeout}
}

// Execute runs expression against data. A single output is returned as is,
// several outputs as a slice, none as nil. An empty expression returns data
// unchanged.
func (e *Executor) Execute(ctx context.Context, expression string, data any) (any, error) {
	if expression == "" {
		return data, nil
	}

	code, err := compile(expression)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var results []any
	iter := code.RunWithContext(ctx, data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("execution timeout after %v", e.timeout)
			}
			return nil, err
		}
		results = append(results, v)
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return results[0], nil
	default:
		return results, nil
	}
}

// FilterResult runs expression against a result map, exposed to jq as an
// object of strings (e.g., `.returnResult`, `.returnResult | fromjson`).
func (e *Executor) FilterResult(ctx context.Context, expression string, res map[string]string) (any, error) {
	obj := make(map[string]any, len(res))
	for k, v := range res {
		obj[k] = v
	}
	return e.Execute(ctx, expression, obj)
}

// Validate reports whether expression compiles.
func (e *Executor) Validate(expression string) error {
	if expression == "" {
		return nil
	}
	_, err := compile(expression)
	return err
}

func compile(expression string) (*gojq.Code, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("jq compilation failed: %w", err)
	}
	return code, nil
}
