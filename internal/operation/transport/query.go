package transport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"

	"github.com/tombee/ec2actions/pkg/httpclient"
)

// DefaultRegion is used when neither the inputs nor the endpoint name one.
const DefaultRegion = "us-east-1"

// Config configures a QueryTransport.
type Config struct {
	// Endpoint is the EC2 endpoint URL (required)
	Endpoint string

	// Service is the signing service name (default: "ec2")
	Service string

	// Region is the signing region (default: derived from Endpoint)
	Region string

	// AccessKeyID and SecretAccessKey sign the request (required)
	AccessKeyID     string
	SecretAccessKey string

	// Timeout for requests (default: 30s)
	Timeout time.Duration

	// Proxy routes the request through an HTTP proxy
	Proxy *httpclient.ProxyConfig

	// Debug logs each exchange at Info level with sanitized parameters
	Debug bool

	// Logger receives request logs (default: slog.Default())
	Logger *slog.Logger

	// Client overrides the HTTP client built from the settings above
	Client *http.Client
}

// TransportType returns the transport type identifier.
func (c *Config) TransportType() string {
	return "aws_query"
}

// Validate checks the configuration is valid.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("endpoint is required for aws_query transport")
	}
	if !strings.HasPrefix(c.Endpoint, "https://") && !strings.HasPrefix(c.Endpoint, "http://") {
		return fmt.Errorf("endpoint must start with http:// or https://")
	}
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return fmt.Errorf("identity and credential are required for aws_query transport")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout cannot be negative")
	}
	return nil
}

// QueryTransport implements Transport for the EC2 Query API with SigV4 signing.
type QueryTransport struct {
	config      *Config
	client      *http.Client
	signer      *v4.Signer
	credentials aws.Credentials
	logger      *slog.Logger
	rateLimiter RateLimiter
	now         func() time.Time
}

// NewQueryTransport creates a new Query API transport.
func NewQueryTransport(cfg *Config) (*QueryTransport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: err.Error(),
			Cause:   err,
		}
	}

	c := *cfg
	if c.Service == "" {
		c.Service = "ec2"
	}
	if c.Region == "" {
		c.Region = RegionFromEndpoint(c.Endpoint)
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := c.Client
	if client == nil {
		hc := httpclient.DefaultConfig()
		hc.Timeout = c.Timeout
		hc.Proxy = c.Proxy
		hc.Logger = logger
		hc.Debug = c.Debug
		var err error
		if client, err = httpclient.New(hc); err != nil {
			return nil, &TransportError{
				Type:    ErrorTypeInvalidReq,
				Message: fmt.Sprintf("failed to build HTTP client: %v", err),
				Cause:   err,
			}
		}
	}

	return &QueryTransport{
		config: &c,
		client: client,
		signer: v4.NewSigner(),
		credentials: aws.Credentials{
			AccessKeyID:     c.AccessKeyID,
			SecretAccessKey: c.SecretAccessKey,
			Source:          "ec2actions",
		},
		logger: logger,
		now:    time.Now,
	}, nil
}

// Region returns the signing region in use.
func (t *QueryTransport) Region() string {
	return t.config.Region
}

// Execute signs and sends req once.
func (t *QueryTransport) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := t.validateRequest(req); err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("invalid request: %s", err.Error()),
			Cause:   err,
		}
	}

	if t.rateLimiter != nil {
		if err := t.rateLimiter.Wait(ctx); err != nil {
			return nil, &TransportError{
				Type:    ErrorTypeCancelled,
				Message: "rate limiter cancelled",
				Cause:   err,
			}
		}
	}

	start := t.now()
	resp, err := t.executeOnce(ctx, req)
	t.logExchange(ctx, req, resp, err, time.Since(start))
	return resp, err
}

// validateRequest checks if the request is valid.
func (t *QueryTransport) validateRequest(req *Request) error {
	if req == nil || req.Params == nil {
		return fmt.Errorf("params are required")
	}
	if req.Action() == "" {
		return fmt.Errorf("Action parameter is required")
	}
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	validMethods := map[string]bool{
		"GET": true, "POST": true, "PUT": true, "DELETE": true,
		"HEAD": true, "OPTIONS": true, "TRACE": true,
	}
	if !validMethods[req.Method] {
		return fmt.Errorf("invalid HTTP method: %q", req.Method)
	}
	for name := range req.Headers {
		if isReservedHeader(name) {
			return fmt.Errorf("header %q is set by request signing", name)
		}
	}
	return nil
}

// executeOnce performs a single request execution with SigV4 signing.
func (t *QueryTransport) executeOnce(ctx context.Context, req *Request) (*Response, error) {
	path := req.Path
	if path == "" {
		path = "/"
	} else if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	target := strings.TrimRight(t.config.Endpoint, "/") + path

	encoded := req.Params.Encode()
	var body []byte
	if req.Method == http.MethodPost {
		body = []byte(encoded)
	} else {
		target += "?" + encoded
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, reader)
	if err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("failed to create request: %v", err),
			Cause:   err,
		}
	}

	for name, values := range req.Headers {
		for _, v := range values {
			httpReq.Header.Add(name, v)
		}
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	}

	payloadHash := calculatePayloadHash(body)
	httpReq.Header.Set("X-Amz-Content-Sha256", payloadHash)

	err = t.signer.SignHTTP(ctx, t.credentials, httpReq, payloadHash, t.config.Service, t.config.Region, t.now())
	if err != nil {
		return nil, &TransportError{
			Type:    ErrorTypeInvalidReq,
			Message: fmt.Sprintf("failed to sign request: %v", sanitizeAWSError(err.Error())),
			Cause:   err,
		}
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return nil, classifyHTTPError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{
			Type:      ErrorTypeConnection,
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     err,
		}
	}

	requestID := resp.Header.Get("x-amzn-RequestId")
	if requestID == "" {
		requestID = resp.Header.Get("x-amz-request-id")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAWSError(resp.StatusCode, respBody, requestID)
	}

	if requestID == "" {
		requestID = requestIDFromBody(respBody)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
		Metadata: map[string]interface{}{
			MetadataAWSRequestID: requestID,
		},
	}, nil
}

// logExchange records one exchange. Parameter values pass through the
// httpclient sanitizer; the secret key is never part of the record.
func (t *QueryTransport) logExchange(ctx context.Context, req *Request, resp *Response, err error, d time.Duration) {
	level := slog.LevelDebug
	if t.config.Debug {
		level = slog.LevelInfo
	}
	if !t.logger.Enabled(ctx, level) {
		return
	}

	attrs := []any{
		"aws_action", req.Action(),
		"endpoint", t.config.Endpoint,
		"region", t.config.Region,
		"method", req.Method,
		"params", httpclient.SanitizeValues(req.Params.Map()),
		"duration_ms", d.Milliseconds(),
	}
	var te *TransportError
	switch {
	case resp != nil:
		attrs = append(attrs, "status", resp.StatusCode, MetadataAWSRequestID, resp.RequestID())
	case errors.As(err, &te):
		attrs = append(attrs, "status", te.StatusCode, MetadataAWSRequestID, te.RequestID, "error", te.Message)
		if te.Code == "" && te.Body != "" {
			attrs = append(attrs, "body", trimBody(te.Body))
		}
	case err != nil:
		attrs = append(attrs, "error", err.Error())
	}
	t.logger.Log(ctx, level, "ec2 query request", attrs...)
}

// Name returns the transport identifier.
func (t *QueryTransport) Name() string {
	return "aws_query"
}

// SetRateLimiter configures rate limiting for this transport.
func (t *QueryTransport) SetRateLimiter(limiter RateLimiter) {
	t.rateLimiter = limiter
}

// RegionFromEndpoint extracts the region from hosts of the form
// ec2.<region>.amazonaws.com[.cn], falling back to DefaultRegion.
func RegionFromEndpoint(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil {
		return DefaultRegion
	}
	parts := strings.Split(u.Hostname(), ".")
	if len(parts) >= 4 && parts[0] == "ec2" && parts[2] == "amazonaws" {
		return parts[1]
	}
	return DefaultRegion
}

// calculatePayloadHash computes the SHA256 hash of the request body.
func calculatePayloadHash(body []byte) string {
	if body == nil {
		body = []byte{}
	}
	hash := sha256.Sum256(body)
	return hex.EncodeToString(hash[:])
}

// classifyHTTPError classifies HTTP client errors into TransportError types.
func classifyHTTPError(err error) *TransportError {
	if errors.Is(err, context.Canceled) {
		return &TransportError{
			Type:    ErrorTypeCancelled,
			Message: "request cancelled",
			Cause:   err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || isTimeoutError(err) {
		return &TransportError{
			Type:      ErrorTypeTimeout,
			Message:   "request timeout",
			Retryable: true,
			Cause:     err,
		}
	}

	if isConnectionError(err) {
		return &TransportError{
			Type:      ErrorTypeConnection,
			Message:   fmt.Sprintf("connection error: %s", sanitizeAWSError(rootMessage(err))),
			Retryable: true,
			Cause:     err,
		}
	}

	return &TransportError{
		Type:      ErrorTypeConnection,
		Message:   fmt.Sprintf("HTTP error: %s", sanitizeAWSError(rootMessage(err))),
		Retryable: true,
		Cause:     err,
	}
}

// isTimeoutError checks if an error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isConnectionError checks if an error is a connection error.
func isConnectionError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	errMsg := strings.ToLower(err.Error())
	connectionKeywords := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network unreachable",
		"proxyconnect",
		"eof",
	}
	for _, keyword := range connectionKeywords {
		if strings.Contains(errMsg, keyword) {
			return true
		}
	}
	return false
}

// rootMessage strips the *url.Error wrapper, whose text repeats the full
// signed URL.
func rootMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err.Error()
	}
	return err.Error()
}
