// Package transport executes EC2 Query API requests.
//
// The transport layer separates protocol concerns (request signing, proxying,
// error parsing) from action-level concerns (input validation, parameter
// mapping, result conversion). A transport is built per invocation and never
// retries: throttling and server errors are returned to the caller as
// TransportError values.
package transport

import (
	"context"
	"net/http"

	"github.com/tombee/ec2actions/internal/query"
)

// Transport executes requests with protocol-specific handling.
type Transport interface {
	// Execute sends a request and returns a response.
	// The context controls cancellation and deadlines.
	// Returns TransportError on failure.
	Execute(ctx context.Context, req *Request) (*Response, error)

	// Name returns the transport identifier.
	Name() string

	// SetRateLimiter configures client-side pacing for this transport.
	SetRateLimiter(limiter RateLimiter)
}

// Request is one Query API call.
type Request struct {
	// Method is the HTTP method. Empty means GET.
	// POST sends the parameters as a form body; every other method sends
	// them in the query string.
	Method string

	// Path is appended to the endpoint. Empty means "/".
	Path string

	// Params are the Query API parameters, Action and Version included.
	// Required.
	Params *query.Params

	// Headers are extra request headers. Signing headers are rejected.
	Headers http.Header
}

// Action returns the Action parameter of the request, or "".
func (r *Request) Action() string {
	if r.Params == nil {
		return ""
	}
	a, _ := r.Params.Get("Action")
	return a
}

// Response represents a successful (2xx) response.
type Response struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Headers contains response headers
	Headers map[string][]string

	// Body is the response body
	Body []byte

	// Metadata contains transport-specific data (e.g., AWS RequestID)
	Metadata map[string]interface{}
}

// RequestID returns the AWS request ID recorded for the response.
func (r *Response) RequestID() string {
	id, _ := r.Metadata[MetadataAWSRequestID].(string)
	return id
}

// Standard metadata keys used across transports
const (
	// MetadataAWSRequestID is the AWS request ID from the response header or body
	MetadataAWSRequestID = "aws_request_id"

	// MetadataAWSErrorCode is the AWS error code of a failed request
	MetadataAWSErrorCode = "aws_error_code"

	// MetadataResponseBody is the raw body of a failed request
	MetadataResponseBody = "response_body"
)

// RateLimiter provides rate limiting for transport requests.
// *rate.Limiter from golang.org/x/time/rate satisfies it.
type RateLimiter interface {
	// Wait blocks until a request is allowed under the rate limit.
	// Returns an error if the context is cancelled before the request can proceed.
	Wait(ctx context.Context) error
}
