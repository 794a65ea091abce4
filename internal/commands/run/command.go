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
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/tombee/ec2actions/internal/action/ec2"
	"github.com/tombee/ec2actions/internal/commands/shared"
	"github.com/tombee/ec2actions/internal/jq"
	"github.com/tombee/ec2actions/internal/result"
)

var (
	runInputs     []string
	runInputsFile string
	runJQ         string
)

// NewCommand creates the run command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <operation>",
		Short: "Run one EC2 operation",
		Long: `Run one EC2 operation and print its result map.

Inputs are flat strings keyed by input name. Values given with --input
override those read from --inputs-file, and configured defaults fill any
input left blank. A blank credential is looked up by identity in the
EC2ACTIONS_SECRET_* environment and the system keychain.

The command exits 1 when the result's returnCode is "-1".

Examples:
  ec2actions run list_regions --input region=eu-west-1
  ec2actions run create_tags --inputs-file tags.yaml --input resourceIdsString=i-0abc
  ec2actions run list_instances_in_region --input region=us-east-1 \
    --jq '.returnResult | fromjson | map(.instanceId) | join(",")'`,
		Args: cobra.ExactArgs(1),
		RunE: runOperation,
	}

	cmd.Flags().StringArrayVarP(&runInputs, "input", "i", nil, "Input in key=value form (repeatable)")
	cmd.Flags().StringVarP(&runInputsFile, "inputs-file", "f", "", "YAML or JSON file of inputs ('-' for stdin)")
	cmd.Flags().StringVar(&runJQ, "jq", "", "jq expression applied to the result map")

	return cmd
}

func runOperation(cmd *cobra.Command, args []string) error {
	operation := args[0]

	raw, err := parseInputs(runInputs, runInputsFile, cmd.InOrStdin())
	if err != nil {
		return shared.NewUsageError("invalid inputs", err)
	}

	var filter *jq.Executor
	if runJQ != "" {
		filter = jq.NewExecutor(jq.DefaultTimeout)
		if err := filter.Validate(runJQ); err != nil {
			return shared.NewUsageError("invalid --jq expression", err)
		}
	}

	cfg, _, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	logger := shared.NewLogger(cfg, cmd.ErrOrStderr())

	ctx := cmd.Context()
	provider, err := shared.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = provider.Shutdown(context.Background()) }()

	action, err := ec2.New(&ec2.Config{
		Logger:      logger,
		Defaults:    cfg.Defaults.Inputs,
		Credentials: shared.NewCredentialStore(),
	})
	if err != nil {
		return shared.NewActionFailedError("failed to create action", err)
	}

	res := action.Execute(ec2.WithSource(ctx, "cli"), operation, raw)

	if err := writeResult(ctx, cmd.OutOrStdout(), filter, res); err != nil {
		return shared.NewActionFailedError("failed to write result", err)
	}
	if !res.Succeeded() {
		// The result already carries the exception.
		return &shared.ExitError{Code: shared.ExitActionFailed}
	}
	return nil
}

// writeResult prints res as indented JSON, or the output of filter when
// one is set. String outputs of the filter are printed raw.
func writeResult(ctx context.Context, w io.Writer, filter *jq.Executor, res result.Result) error {
	var out any = res
	if filter != nil {
		filtered, err := filter.FilterResult(ctx, runJQ, res)
		if err != nil {
			return err
		}
		if s, ok := filtered.(string); ok {
			_, err := fmt.Fprintln(w, s)
			return err
		}
		out = filtered
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
