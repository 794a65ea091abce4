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

package main

import (
	"github.com/tombee/ec2actions/internal/cli"
	"github.com/tombee/ec2actions/internal/commands/credentials"
	"github.com/tombee/ec2actions/internal/commands/operations"
	"github.com/tombee/ec2actions/internal/commands/run"
	"github.com/tombee/ec2actions/internal/commands/serve"
	versioncmd "github.com/tombee/ec2actions/internal/commands/version"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	// Set version information from build-time ldflags
	cli.SetVersion(version, commit, buildDate)

	rootCmd := cli.NewRootCommand()

	// Operation commands
	rootCmd.AddCommand(run.NewCommand())
	rootCmd.AddCommand(operations.NewCommand())
	rootCmd.AddCommand(serve.NewCommand())

	// Configuration and security
	rootCmd.AddCommand(credentials.NewCommand())

	// Version command
	rootCmd.AddCommand(versioncmd.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		cli.HandleExitError(err)
	}
}
