// Package httpclient builds the HTTP clients used for EC2 Query API calls.
//
// Clients come with secure defaults and one request per call:
//   - TLS 1.2 minimum (TLS 1.3 preferred)
//   - Optional authenticated HTTP proxy
//   - Request logging with sanitized URLs (signature and credential
//     parameters redacted)
//   - One OpenTelemetry client span per request
//   - No retries; throttling and server errors surface to the caller
//
// # Usage
//
//	cfg := httpclient.DefaultConfig()
//	cfg.Timeout = 10 * time.Second
//	cfg.Proxy = &httpclient.ProxyConfig{Host: "proxy.internal", Port: 3128}
//	client, err := httpclient.New(cfg)
//	if err != nil {
//	    return err
//	}
//
// # Security
//
// Proxy credentials are attached to the transport, never to the logged URL.
// Authorization headers are never logged.
package httpclient
