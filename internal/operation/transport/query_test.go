package transport

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/tombee/ec2actions/internal/query"
)

const (
	testAccessKey = "AKIDEXAMPLE"
	testSecretKey = "wJalrXUtnFEMI/K7MDENG+bPxRfiCYEXAMPLEKEY"
)

func newTestTransport(t *testing.T, endpoint string, mutate ...func(*Config)) *QueryTransport {
	t.Helper()
	cfg := &Config{
		Endpoint:        endpoint,
		AccessKeyID:     testAccessKey,
		SecretAccessKey: testSecretKey,
		Timeout:         5 * time.Second,
		Logger:          slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	}
	for _, m := range mutate {
		m(cfg)
	}
	tr, err := NewQueryTransport(cfg)
	require.NoError(t, err)
	return tr
}

func describeRegions() *query.Params {
	p := query.NewParams("DescribeRegions", "2016-11-15")
	return p
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{"valid", &Config{Endpoint: "https://ec2.amazonaws.com", AccessKeyID: "a", SecretAccessKey: "b"}, ""},
		{"missing endpoint", &Config{AccessKeyID: "a", SecretAccessKey: "b"}, "endpoint is required"},
		{"bad scheme", &Config{Endpoint: "ec2.amazonaws.com", AccessKeyID: "a", SecretAccessKey: "b"}, "must start with"},
		{"missing credential", &Config{Endpoint: "https://ec2.amazonaws.com", AccessKeyID: "a"}, "identity and credential"},
		{"negative timeout", &Config{Endpoint: "https://ec2.amazonaws.com", AccessKeyID: "a", SecretAccessKey: "b", Timeout: -1}, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegionFromEndpoint(t *testing.T) {
	assert.Equal(t, "us-west-2", RegionFromEndpoint("https://ec2.us-west-2.amazonaws.com"))
	assert.Equal(t, "cn-north-1", RegionFromEndpoint("https://ec2.cn-north-1.amazonaws.com.cn"))
	assert.Equal(t, "us-east-1", RegionFromEndpoint("https://ec2.amazonaws.com"))
	assert.Equal(t, "us-east-1", RegionFromEndpoint("http://127.0.0.1:8080"))
}

func TestQueryTransport_SignatureMatchesReferenceSigner(t *testing.T) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		t.Run(method, func(t *testing.T) {
			var (
				sent, want string
				checkErr   error
			)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					checkErr = err
					return
				}
				sum := sha256.Sum256(body)
				if got := r.Header.Get("X-Amz-Content-Sha256"); got != hex.EncodeToString(sum[:]) {
					checkErr = assert.AnError
					return
				}
				signedAt, err := time.Parse("20060102T150405Z", r.Header.Get("X-Amz-Date"))
				if err != nil {
					checkErr = err
					return
				}

				ref, err := http.NewRequestWithContext(r.Context(), r.Method, "http://"+r.Host+r.URL.RequestURI(), bytes.NewReader(body))
				if err != nil {
					checkErr = err
					return
				}
				ref.Header = r.Header.Clone()
				for _, h := range []string{"Authorization", "X-Amz-Date", "Accept-Encoding", "User-Agent"} {
					ref.Header.Del(h)
				}
				creds := aws.Credentials{AccessKeyID: testAccessKey, SecretAccessKey: testSecretKey}
				checkErr = v4.NewSigner().SignHTTP(r.Context(), creds, ref, r.Header.Get("X-Amz-Content-Sha256"), "ec2", "us-east-1", signedAt)

				sent, want = r.Header.Get("Authorization"), ref.Header.Get("Authorization")
				w.Header().Set("Content-Type", "text/xml")
				_, _ = w.Write([]byte("<CreateTagsResponse><return>true</return></CreateTagsResponse>"))
			}))
			defer server.Close()

			p := query.NewParams("CreateTags", "2016-11-15")
			require.NoError(t, p.Set("ResourceId.1", "i-12345678"))
			require.NoError(t, p.Set("Tag.1.Key", "Description"))
			require.NoError(t, p.Set("Tag.1.Value", "Tagged from API call"))

			tr := newTestTransport(t, server.URL)
			resp, err := tr.Execute(context.Background(), &Request{Method: method, Params: p})
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)

			require.NoError(t, checkErr)
			require.NotEmpty(t, sent)
			assert.Equal(t, want, sent)
		})
	}
}

func TestQueryTransport_Execute_Success(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(`<DescribeRegionsResponse><requestId>req-123</requestId></DescribeRegionsResponse>`))
	}))
	defer server.Close()

	tr := newTestTransport(t, server.URL, func(c *Config) { c.Region = "eu-west-1" })
	p := describeRegions()
	require.NoError(t, p.Set("RegionName.1", "eu-west-1"))

	resp, err := tr.Execute(context.Background(), &Request{
		Params:  p,
		Headers: http.Header{"X-Custom": []string{"yes"}},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.RequestID())

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "DescribeRegions", got.URL.Query().Get("Action"))
	assert.Equal(t, "eu-west-1", got.URL.Query().Get("RegionName.1"))
	assert.Equal(t, "yes", got.Header.Get("X-Custom"))
	assert.NotEmpty(t, got.Header.Get("X-Amz-Date"))

	auth := got.Header.Get("Authorization")
	assert.True(t, strings.HasPrefix(auth, "AWS4-HMAC-SHA256 Credential=AKIDEXAMPLE/"), auth)
	assert.Contains(t, auth, "/eu-west-1/ec2/aws4_request")
	assert.NotContains(t, auth, testSecretKey)
}

func TestQueryTransport_Execute_Post(t *testing.T) {
	var body string
	var contentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		body = r.PostForm.Get("Action")
		contentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tr := newTestTransport(t, server.URL)
	_, err := tr.Execute(context.Background(), &Request{Method: http.MethodPost, Params: describeRegions()})
	require.NoError(t, err)
	assert.Equal(t, "DescribeRegions", body)
	assert.True(t, strings.HasPrefix(contentType, "application/x-www-form-urlencoded"))
}

func TestQueryTransport_Execute_EC2Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<Response><Errors><Error><Code>InvalidVolume.NotFound</Code><Message>The volume 'vol-1' does not exist.</Message></Error></Errors><RequestID>ea966190-f9aa-478e-9ede-example</RequestID></Response>`))
	}))
	defer server.Close()

	tr := newTestTransport(t, server.URL)
	_, err := tr.Execute(context.Background(), &Request{Params: describeRegions()})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrorTypeClient, te.Type)
	assert.Equal(t, 400, te.StatusCode)
	assert.Equal(t, "InvalidVolume.NotFound", te.Code)
	assert.Equal(t, "InvalidVolume.NotFound: The volume 'vol-1' does not exist.", te.Message)
	assert.Equal(t, "ea966190-f9aa-478e-9ede-example", te.RequestID)
	assert.Contains(t, te.Body, "<Response>")
}

func TestQueryTransport_Execute_ThrottleIsNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`<Response><Errors><Error><Code>RequestLimitExceeded</Code><Message>Request limit exceeded.</Message></Error></Errors></Response>`))
	}))
	defer server.Close()

	tr := newTestTransport(t, server.URL)
	_, err := tr.Execute(context.Background(), &Request{Params: describeRegions()})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrorTypeRateLimit, te.Type)
	assert.Equal(t, 1, calls)
}

func TestQueryTransport_Execute_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	tr := newTestTransport(t, "http://"+addr)
	_, err = tr.Execute(context.Background(), &Request{Params: describeRegions()})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrorTypeConnection, te.Type)
	assert.NotContains(t, te.Message, "Signature")
}

func TestQueryTransport_Execute_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	tr := newTestTransport(t, server.URL, func(c *Config) { c.Timeout = 50 * time.Millisecond })
	_, err := tr.Execute(context.Background(), &Request{Params: describeRegions()})

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrorTypeTimeout, te.Type)
}

func TestQueryTransport_Execute_InvalidRequest(t *testing.T) {
	tr := newTestTransport(t, "https://ec2.amazonaws.com")
	tests := []struct {
		name string
		req  *Request
	}{
		{"nil params", &Request{}},
		{"bad method", &Request{Method: "PATCH", Params: describeRegions()}},
		{"reserved header", &Request{Params: describeRegions(), Headers: http.Header{"Authorization": []string{"x"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tr.Execute(context.Background(), tt.req)
			var te *TransportError
			require.ErrorAs(t, err, &te)
			assert.Equal(t, ErrorTypeInvalidReq, te.Type)
		})
	}
}

func TestQueryTransport_DebugLogOmitsSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	tr := newTestTransport(t, server.URL, func(c *Config) {
		c.Debug = true
		c.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	})
	_, err := tr.Execute(context.Background(), &Request{Params: describeRegions()})
	require.NoError(t, err)

	logged := buf.String()
	assert.Contains(t, logged, "aws_action=DescribeRegions")
	assert.NotContains(t, logged, testSecretKey)
	assert.NotContains(t, logged, "Signature=")
}

func TestQueryTransport_RateLimiter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tr := newTestTransport(t, server.URL)
	tr.SetRateLimiter(rate.NewLimiter(rate.Every(time.Hour), 1))

	_, err := tr.Execute(context.Background(), &Request{Params: describeRegions()})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = tr.Execute(ctx, &Request{Params: describeRegions()})
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, ErrorTypeCancelled, te.Type)
}

func TestQueryTransport_Name(t *testing.T) {
	tr := newTestTransport(t, "https://ec2.us-west-1.amazonaws.com")
	assert.Equal(t, "aws_query", tr.Name())
	assert.Equal(t, "us-west-1", tr.Region())
}

func TestCalculatePayloadHash(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", calculatePayloadHash(nil))
}
