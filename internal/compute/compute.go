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

// Package compute implements the SDK-backed compute operations: listing
// regions and instances, changing an instance type with stop and start
// waits, and verifying credentials.
//
// Unlike the Query API actions, these calls go through aws-sdk-go-v2 service
// clients. Failures are converted to *transport.TransportError so the result
// mapper treats both paths alike.
package compute

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/tombee/ec2actions/internal/operation/transport"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
	"github.com/tombee/ec2actions/pkg/httpclient"
)

// EC2API defines the EC2 operations used by the compute service.
type EC2API interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
	StartInstances(ctx context.Context, params *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	ModifyInstanceAttribute(ctx context.Context, params *ec2.ModifyInstanceAttributeInput, optFns ...func(*ec2.Options)) (*ec2.ModifyInstanceAttributeOutput, error)
}

// STSAPI defines the STS operations used by the compute service.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

var (
	_ EC2API = (*ec2.Client)(nil)
	_ STSAPI = (*sts.Client)(nil)
)

// Config configures a Service.
type Config struct {
	// Region is the region the clients operate in (default: us-east-1)
	Region string

	// Endpoint overrides the EC2 endpoint resolved from Region
	Endpoint string

	// Identity and Credential are the static access key pair. When both are
	// blank the default credential chain is used.
	Identity   string
	Credential string

	// Proxy routes SDK traffic through an HTTP proxy
	Proxy *httpclient.ProxyConfig

	// Timeout bounds each HTTP request (default: 30s)
	Timeout time.Duration

	// Debug logs each SDK request at Info level
	Debug bool

	// Logger receives request logs (default: slog.Default())
	Logger *slog.Logger
}

// Service runs the compute operations against one region.
type Service struct {
	region string
	ec2    EC2API
	sts    STSAPI
	logger *slog.Logger
}

// NewService loads an AWS config for cfg and builds the EC2 and STS clients.
func NewService(ctx context.Context, cfg Config) (*Service, error) {
	region := cfg.Region
	if region == "" {
		region = transport.DefaultRegion
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	hc := httpclient.DefaultConfig()
	if cfg.Timeout > 0 {
		hc.Timeout = cfg.Timeout
	}
	hc.Proxy = cfg.Proxy
	hc.Logger = logger
	hc.Debug = cfg.Debug
	client, err := httpclient.New(hc)
	if err != nil {
		return nil, ec2errors.Wrap(err, "build HTTP client")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
		awsconfig.WithHTTPClient(client),
		// Each action makes exactly one attempt per call.
		awsconfig.WithRetryMaxAttempts(1),
	}
	if cfg.Identity != "" || cfg.Credential != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.Identity, cfg.Credential, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, &ec2errors.ConfigError{Key: "aws", Reason: "load aws config", Cause: err}
	}

	ec2Client := ec2.NewFromConfig(awsCfg, func(o *ec2.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return NewServiceWithClients(region, ec2Client, sts.NewFromConfig(awsCfg), logger), nil
}

// NewServiceWithClients builds a Service from existing clients.
func NewServiceWithClients(region string, ec2Client EC2API, stsClient STSAPI, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		region: region,
		ec2:    ec2Client,
		sts:    stsClient,
		logger: logger.With(slog.String("component", "compute")),
	}
}

// Region returns the region the service operates in.
func (s *Service) Region() string {
	return s.region
}
