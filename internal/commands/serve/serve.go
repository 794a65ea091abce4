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

package serve

import (
	"context"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/tombee/ec2actions/internal/action/ec2"
	"github.com/tombee/ec2actions/internal/commands/shared"
	"github.com/tombee/ec2actions/internal/config"
	"github.com/tombee/ec2actions/internal/server"
)

var (
	serveListen string
	serveWatch  bool
)

// NewCommand creates the serve command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve operations over HTTP",
		Long: `Serve the EC2 operations over HTTP for workflow engines.

Endpoints:
  GET  /v1/health               Liveness and version
  GET  /v1/operations           Operation catalogue
  POST /v1/actions/<operation>  Run an operation with a JSON object of string inputs
  GET  /metrics                 Prometheus metrics

When server.api_key is set, /v1/operations and /v1/actions require
"Authorization: Bearer <key>". The config file is watched and defaults,
the API key and the rate limit are applied to the next request after a
change.

Examples:
  ec2actions serve
  ec2actions serve --listen 0.0.0.0:9876 --config /etc/ec2actions/config.yaml`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveListen, "listen", "", "Address to listen on (overrides server.listen)")
	cmd.Flags().BoolVar(&serveWatch, "watch", true, "Reload the config file when it changes")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, path, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	logger := shared.NewLogger(cfg, cmd.ErrOrStderr())

	provider, err := shared.SetupTracing(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Warn("tracing shutdown failed", slog.Any("error", err))
		}
	}()

	limiter := rate.NewLimiter(rate.Inf, 1)
	if err := applyRateLimit(limiter, cfg.Server.RateLimit); err != nil {
		return shared.NewUsageError("invalid server.rate_limit", err)
	}

	store := config.NewStore(cfg, path)

	if path != "" && serveWatch {
		watcher, err := config.NewWatcher(config.WatcherConfig{
			Store:  store,
			Logger: logger,
			OnReload: func(c *config.Config) {
				if err := applyRateLimit(limiter, c.Server.RateLimit); err != nil {
					logger.Error("ignoring reloaded rate limit", slog.Any("error", err))
				}
			},
		})
		if err != nil {
			return shared.NewActionFailedError("failed to watch config file", err)
		}
		defer watcher.Close()
	}

	action, err := ec2.New(&ec2.Config{
		Logger:      logger,
		Defaults:    store.Defaults,
		Credentials: shared.NewCredentialStore(),
		RateLimiter: limiter,
	})
	if err != nil {
		return shared.NewActionFailedError("failed to create action", err)
	}

	version, _, _ := shared.GetVersion()
	router, err := server.NewRouter(server.Config{
		Action:  action,
		Version: version,
		APIKey:  func() string { return store.Current().Server.APIKey },
		Logger:  logger,
	})
	if err != nil {
		return shared.NewActionFailedError("failed to create router", err)
	}

	addr := cfg.Server.Listen
	if serveListen != "" {
		addr = serveListen
	}
	if cfg.Server.APIKey == "" {
		logger.Warn("server.api_key is not set, requests are not authenticated")
	}

	if err := server.Serve(ctx, addr, router, cfg.Server.ShutdownTimeout, logger); err != nil {
		return shared.NewActionFailedError("server failed", err)
	}
	return nil
}

// applyRateLimit sets limiter from a "<count>/<unit>" spec. An empty spec
// removes the limit. Burst is one second's worth of requests, at least 1.
func applyRateLimit(limiter *rate.Limiter, spec string) error {
	if spec == "" {
		limiter.SetLimit(rate.Inf)
		limiter.SetBurst(1)
		return nil
	}

	perSecond, err := config.ParseRateLimit(spec)
	if err != nil {
		return err
	}
	limiter.SetLimit(rate.Limit(perSecond))
	limiter.SetBurst(max(1, int(math.Ceil(perSecond))))
	return nil
}
