package httpclient

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNew_ValidConfig(t *testing.T) {
	cfg := DefaultConfig()
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if client.Timeout != cfg.Timeout {
		t.Errorf("expected timeout %v, got %v", cfg.Timeout, client.Timeout)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
		{"empty user agent", func(c *Config) { c.UserAgent = "" }},
		{"proxy without host", func(c *Config) { c.Proxy = &ProxyConfig{Port: 8080} }},
		{"proxy port out of range", func(c *Config) { c.Proxy = &ProxyConfig{Host: "p", Port: 70000} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			client, err := New(cfg)
			if err == nil {
				t.Fatal("expected error for invalid config")
			}
			if client != nil {
				t.Error("expected nil client on error")
			}
		})
	}
}

func TestNew_ProxyConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Proxy = &ProxyConfig{Host: "proxy.local", Port: 3128, Username: "bob", Password: "hunter2"}
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lt, ok := client.Transport.(*loggingTransport)
	if !ok {
		t.Fatalf("unexpected transport type %T", client.Transport)
	}
	base := lt.base.(*http.Transport)
	req := httptest.NewRequest(http.MethodGet, "https://ec2.amazonaws.com/", nil)
	proxyURL, err := base.Proxy(req)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if proxyURL.Host != "proxy.local:3128" {
		t.Errorf("proxy host = %q", proxyURL.Host)
	}
	if pw, _ := proxyURL.User.Password(); pw != "hunter2" || proxyURL.User.Username() != "bob" {
		t.Error("proxy credentials not attached")
	}
}

func TestLoggingTransport_SetsUserAgentAndRedacts(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Timeout = 5 * time.Second
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp, err := client.Get(server.URL + "/?Action=DescribeRegions&X-Amz-Signature=topsecret")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if gotUA != cfg.UserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, cfg.UserAgent)
	}
	logged := buf.String()
	if strings.Contains(logged, "topsecret") {
		t.Errorf("signature leaked into logs: %s", logged)
	}
	if !strings.Contains(logged, "status=200") {
		t.Errorf("expected status in log, got: %s", logged)
	}
}
