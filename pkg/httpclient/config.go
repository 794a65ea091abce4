package httpclient

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config configures the HTTP client with timeout, proxy, and logging settings.
type Config struct {
	// Timeout is the total request timeout.
	// Default: 30s. Must be > 0.
	Timeout time.Duration

	// UserAgent is the User-Agent header value.
	// Required. Must be non-empty.
	UserAgent string

	// Proxy routes requests through an HTTP proxy when set.
	Proxy *ProxyConfig

	// Logger receives request logs. Defaults to slog.Default().
	Logger *slog.Logger

	// Debug logs successful requests at Info instead of Debug level.
	Debug bool
}

// ProxyConfig describes an HTTP proxy. Username and Password are optional.
type ProxyConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// URL returns the proxy URL with userinfo attached when a username is set.
func (p *ProxyConfig) URL() *url.URL {
	u := &url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
	}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:   30 * time.Second,
		UserAgent: "ec2actions/1.0",
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required and must be non-empty")
	}
	if c.Proxy != nil {
		if c.Proxy.Host == "" {
			return fmt.Errorf("proxy host is required when a proxy is configured")
		}
		if c.Proxy.Port < 1 || c.Proxy.Port > 65535 {
			return fmt.Errorf("proxy port must be between 1 and 65535, got %d", c.Proxy.Port)
		}
	}
	return nil
}
