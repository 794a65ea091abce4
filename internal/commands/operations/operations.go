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

package operations

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tombee/ec2actions/internal/action/ec2"
	"github.com/tombee/ec2actions/internal/commands/shared"
)

// NewCommand creates the operations command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "operations",
		Short: "List available operations",
		Long: `List every operation with the AWS action it calls and its required inputs.

Query operations sign requests to the Query API endpoint themselves.
Compute operations go through the AWS SDK and may use the default credential
chain when identity and credential are blank.`,
		Args: cobra.NoArgs,
		RunE: runOperations,
	}

	return cmd
}

func runOperations(cmd *cobra.Command, args []string) error {
	ops := ec2.Operations()

	if shared.GetJSON() {
		data, err := json.MarshalIndent(ops, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal operations: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tAWS ACTION\tKIND\tREQUIRED")
	for _, op := range ops {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", op.Name, op.AWSAction, op.Kind, strings.Join(op.Required, ","))
	}
	return w.Flush()
}
