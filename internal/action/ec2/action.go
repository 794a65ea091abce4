// Package ec2 provides the EC2 action: one operation per supported EC2
// call, each taking string inputs and returning a result map.
//
// Query operations validate their inputs, map them onto Query API
// parameters and execute one signed request. Compute operations go through
// the AWS SDK clients in internal/compute. Either way the outcome is
// converted to a result.Result here and nowhere else.
package ec2

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/ec2actions/internal/compute"
	"github.com/tombee/ec2actions/internal/inputs"
	"github.com/tombee/ec2actions/internal/log"
	"github.com/tombee/ec2actions/internal/operation/transport"
	"github.com/tombee/ec2actions/internal/query"
	"github.com/tombee/ec2actions/internal/result"
	"github.com/tombee/ec2actions/internal/tracing"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
	"github.com/tombee/ec2actions/pkg/secrets"
)

const tracerName = "github.com/tombee/ec2actions/internal/action/ec2"

// CredentialLookup resolves the credential stored for an identity.
// *secrets.CredentialStore from internal/secrets satisfies it.
type CredentialLookup interface {
	Lookup(ctx context.Context, identity string) (credential string, ok bool, err error)
}

// ComputeService is the SDK-backed side of the action.
// *compute.Service satisfies it.
type ComputeService interface {
	Region() string
	DescribeRegions(ctx context.Context) ([]string, error)
	DescribeInstancesInRegion(ctx context.Context, filters []query.Filter) ([]compute.Instance, error)
	UpdateInstanceType(ctx context.Context, in compute.UpdateInstanceTypeInput) (string, error)
	VerifyCredentials(ctx context.Context) (compute.Identity, error)
}

// ComputeFactory builds a ComputeService for one invocation.
type ComputeFactory func(ctx context.Context, cfg compute.Config) (ComputeService, error)

// Config holds configuration for the EC2 action.
type Config struct {
	// Logger receives invocation and request logs (default: slog.Default()).
	Logger *slog.Logger

	// Defaults returns fallback values for blank inputs, keyed by input
	// name. Called once per invocation so reloaded configuration applies
	// to the next call.
	Defaults func() map[string]string

	// Credentials resolves a blank credential input from the identity.
	// Nil disables the lookup.
	Credentials CredentialLookup

	// RateLimiter paces outbound Query API requests. Nil disables pacing.
	RateLimiter transport.RateLimiter

	// NewCompute builds the compute service (default: compute.NewService).
	NewCompute ComputeFactory
}

// DefaultConfig returns the configuration used when New is given nil.
func DefaultConfig() *Config {
	return &Config{
		Logger:     slog.Default(),
		NewCompute: newComputeService,
	}
}

// Action implements the EC2 operations.
type Action struct {
	config     *Config
	logger     *slog.Logger
	middleware *log.ActionMiddleware
}

// New creates a new EC2 action instance.
func New(config *Config) (*Action, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.NewCompute == nil {
		config.NewCompute = newComputeService
	}

	logger := log.WithComponent(config.Logger, "ec2")
	return &Action{
		config:     config,
		logger:     logger,
		middleware: log.NewActionMiddleware(logger),
	}, nil
}

// Name returns the action identifier.
func (a *Action) Name() string {
	return "ec2"
}

// Operations returns the list of supported operations.
func (a *Action) Operations() []string {
	return OperationNames()
}

type sourceKey struct{}

// WithSource records the caller (e.g., "cli") for invocation logs.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

func sourceFromContext(ctx context.Context) string {
	s, _ := ctx.Value(sourceKey{}).(string)
	return s
}

// Execute runs a named operation with the given inputs. It never returns
// an error: every failure is reported in the result map. Secrets passed
// as inputs are masked in the result.
func (a *Action) Execute(ctx context.Context, operation string, raw map[string]string) result.Result {
	start := time.Now()

	requestID := log.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = log.NewRequestID()
		ctx = log.ContextWithRequestID(ctx, requestID)
	}

	op, known := LookupOperation(operation)
	ctx, span := tracing.Tracer(tracerName).Start(ctx, "ec2 "+operation,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("ec2actions.operation", operation),
			attribute.String("ec2actions.request_id", requestID),
			attribute.String("aws.action", op.AWSAction),
		),
	)

	req := &log.ActionRequest{
		Operation: operation,
		RequestID: requestID,
		Source:    sourceFromContext(ctx),
	}
	if known {
		req.Metadata = map[string]any{log.AWSActionKey: op.AWSAction}
	}

	var (
		res    result.Result
		runErr error
	)
	a.middleware.Handler(ctx, req, func(ctx context.Context) (string, string) {
		if !known {
			runErr = unknownOperation(operation)
			res = result.FromError(runErr)
		} else {
			res, runErr = a.invoke(ctx, op, raw)
		}
		if res.Succeeded() {
			return result.Success, ""
		}
		return result.Failure, res.ReturnResult()
	})

	metricOp := operation
	if !known {
		metricOp = "unknown"
	}
	recordMetrics(metricOp, res[result.KeyReturnCode], time.Since(start).Seconds(), runErr)

	failure := ""
	if !res.Succeeded() {
		failure = res.ReturnResult()
	}
	tracing.EndSpan(span, failure, attribute.String("ec2actions.return_code", res[result.KeyReturnCode]))
	return res
}

// invoke resolves the effective inputs and dispatches op. The returned
// error is the failure behind a "-1" result, kept for metrics.
func (a *Action) invoke(ctx context.Context, op Operation, raw map[string]string) (result.Result, error) {
	in := a.effectiveInputs(raw)

	masker := secrets.NewMasker()
	masker.AddSecretsFromInputs(in)

	if err := a.resolveCredential(ctx, op, in); err != nil {
		return result.Result(masker.MaskMap(result.FromError(err))), err
	}
	masker.AddSecret(in.Get(inputs.InputCredential))

	var (
		res result.Result
		err error
	)
	switch op.Kind {
	case KindCompute:
		res, err = a.runCompute(ctx, op, in)
	default:
		res, err = a.runQuery(ctx, op, in)
	}
	return result.Result(masker.MaskMap(res)), err
}

// effectiveInputs copies raw and fills empty inputs from the configured
// defaults. Inputs the caller set, including to "Not relevant", are kept.
func (a *Action) effectiveInputs(raw map[string]string) inputs.Raw {
	in := make(inputs.Raw, len(raw))
	for name, value := range raw {
		in[name] = value
	}
	if a.config.Defaults == nil {
		return in
	}
	for name, value := range a.config.Defaults() {
		if strings.TrimSpace(in[name]) == "" {
			in[name] = value
		}
	}
	return in
}

// resolveCredential fills a blank credential from the credential store
// when an identity is given.
func (a *Action) resolveCredential(ctx context.Context, op Operation, in inputs.Raw) error {
	if !in.Blank(inputs.InputCredential) || in.Blank(inputs.InputIdentity) || a.config.Credentials == nil {
		return nil
	}
	identity := strings.TrimSpace(in.Get(inputs.InputIdentity))
	credential, ok, err := a.config.Credentials.Lookup(ctx, identity)
	if err != nil {
		return ec2errors.Wrapf(err, "resolve credential for %s", identity)
	}
	if ok {
		in[inputs.InputCredential] = credential
		a.logger.DebugContext(ctx, "credential resolved from store",
			log.OperationKey, op.Name,
			"identity", identity,
		)
	}
	return nil
}

// checkRequired fails on the first missing required input, before any
// aggregate is built or request sent.
func checkRequired(op Operation, in inputs.Raw) error {
	for _, name := range op.Required {
		if in.Missing(name) {
			return ec2errors.Required(name)
		}
	}
	return nil
}

func unknownOperation(operation string) error {
	return ec2errors.Validation("operation",
		"unknown operation \""+operation+"\"",
		"Valid operations: "+strings.Join(OperationNames(), ", "),
	)
}
