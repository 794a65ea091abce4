package ec2

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/tombee/ec2actions/internal/compute"
	"github.com/tombee/ec2actions/internal/inputs"
	"github.com/tombee/ec2actions/internal/log"
	"github.com/tombee/ec2actions/internal/operation/transport"
	"github.com/tombee/ec2actions/internal/query"
	"github.com/tombee/ec2actions/internal/result"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

func newComputeService(ctx context.Context, cfg compute.Config) (ComputeService, error) {
	svc, err := compute.NewService(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// runCompute runs a compute operation through the SDK clients.
func (a *Action) runCompute(ctx context.Context, op Operation, in inputs.Raw) (result.Result, error) {
	out, err := a.executeCompute(ctx, op, in)
	if err != nil {
		return result.FromError(err), err
	}
	return result.FromString(out), nil
}

func (a *Action) executeCompute(ctx context.Context, op Operation, in inputs.Raw) (string, error) {
	if err := checkRequired(op, in); err != nil {
		return "", err
	}

	qin, err := query.NewInputs(in)
	if err != nil {
		return "", err
	}
	if qin.Common.Identity != "" && qin.Common.Credential == "" {
		return "", ec2errors.Required(inputs.InputCredential)
	}

	logger := log.WithOperation(a.logger, op.Name, op.AWSAction)
	svc, err := a.config.NewCompute(ctx, compute.Config{
		Region:     computeRegion(qin),
		Endpoint:   computeEndpoint(qin),
		Identity:   qin.Common.Identity,
		Credential: qin.Common.Credential,
		Proxy:      proxyConfig(qin.Common.Proxy),
		Timeout:    qin.Common.Timeout,
		Debug:      qin.Common.Debug,
		Logger:     log.WithRequestID(logger, log.RequestIDFromContext(ctx)),
	})
	if err != nil {
		return "", err
	}

	switch op.Name {
	case OpListRegions:
		regions, err := svc.DescribeRegions(ctx)
		if err != nil {
			return "", err
		}
		return strings.Join(regions, qin.Common.Delimiter), nil

	case OpListInstancesInRegion:
		filters, err := query.InstanceFilters(qin)
		if err != nil {
			return "", err
		}
		instances, err := svc.DescribeInstancesInRegion(ctx, filters)
		if err != nil {
			return "", err
		}
		if instances == nil {
			instances = []compute.Instance{}
		}
		return marshal(instances)

	case OpUpdateInstanceType:
		return svc.UpdateInstanceType(ctx, compute.UpdateInstanceTypeInput{
			InstanceID:        qin.Custom.InstanceID,
			InstanceType:      qin.Custom.InstanceType,
			CheckStateTimeout: qin.Instance.CheckStateTimeout,
			PollingInterval:   qin.Instance.PollingInterval,
		})

	case OpVerifyCredentials:
		identity, err := svc.VerifyCredentials(ctx)
		if err != nil {
			return "", err
		}
		return marshal(identity)

	default:
		return "", ec2errors.Errorf("compute operation %s has no handler", op.Name)
	}
}

// computeRegion picks the region input, then the endpoint's region, then
// the default region.
func computeRegion(in query.Inputs) string {
	if in.Custom.Region != "" {
		return in.Custom.Region
	}
	if in.Common.Endpoint != "" {
		return transport.RegionFromEndpoint(in.Common.Endpoint)
	}
	return transport.DefaultRegion
}

// computeEndpoint returns the endpoint override for the SDK client. AWS
// endpoints are left to the SDK's regional resolution so the region input
// is honored; other hosts (e.g., a local emulator) are used as given.
func computeEndpoint(in query.Inputs) string {
	if in.Common.Endpoint == "" {
		return ""
	}
	u, err := url.Parse(in.Common.Endpoint)
	if err == nil && strings.HasSuffix(u.Hostname(), ".amazonaws.com") {
		return ""
	}
	return in.Common.Endpoint
}

func marshal(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", ec2errors.Wrap(err, "encode result")
	}
	return string(data), nil
}
