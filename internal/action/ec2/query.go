package ec2

import (
	"context"

	"github.com/tombee/ec2actions/internal/inputs"
	"github.com/tombee/ec2actions/internal/log"
	"github.com/tombee/ec2actions/internal/operation/transport"
	"github.com/tombee/ec2actions/internal/query"
	"github.com/tombee/ec2actions/internal/result"
	"github.com/tombee/ec2actions/pkg/httpclient"
)

// runQuery validates inputs, builds the parameters and executes one signed
// Query API request.
func (a *Action) runQuery(ctx context.Context, op Operation, in inputs.Raw) (result.Result, error) {
	resp, err := a.executeQuery(ctx, op, in)
	return result.Map(resp, err), err
}

func (a *Action) executeQuery(ctx context.Context, op Operation, in inputs.Raw) (*transport.Response, error) {
	if err := checkRequired(op, in); err != nil {
		return nil, err
	}

	qin, err := query.NewInputs(in)
	if err != nil {
		return nil, err
	}

	params, err := query.Build(op.AWSAction, qin)
	if err != nil {
		return nil, err
	}
	if err := transport.MergeQueryParams(op.AWSAction, params, qin.Common.QueryParams); err != nil {
		return nil, err
	}
	headers, err := transport.ParseHeaders(op.AWSAction, qin.Common.Headers)
	if err != nil {
		return nil, err
	}

	logger := log.WithOperation(a.logger, op.Name, op.AWSAction)
	logger = log.WithRequestID(logger, log.RequestIDFromContext(ctx))

	t, err := transport.NewQueryTransport(&transport.Config{
		Endpoint:        qin.Common.Endpoint,
		Service:         qin.Common.APIService,
		Region:          qin.Custom.Region,
		AccessKeyID:     qin.Common.Identity,
		SecretAccessKey: qin.Common.Credential,
		Timeout:         qin.Common.Timeout,
		Proxy:           proxyConfig(qin.Common.Proxy),
		Debug:           qin.Common.Debug,
		Logger:          logger,
	})
	if err != nil {
		return nil, err
	}
	if a.config.RateLimiter != nil {
		t.SetRateLimiter(a.config.RateLimiter)
	}

	return t.Execute(ctx, &transport.Request{
		Method:  string(qin.Common.HTTPMethod),
		Path:    qin.Common.RequestURI,
		Params:  params,
		Headers: headers,
	})
}

// proxyConfig converts the validated proxy inputs, or returns nil when no
// proxy was configured.
func proxyConfig(p inputs.Proxy) *httpclient.ProxyConfig {
	if !p.Enabled() {
		return nil
	}
	return &httpclient.ProxyConfig{
		Host:     p.Host,
		Port:     p.Port,
		Username: p.Username,
		Password: p.Password,
	}
}
