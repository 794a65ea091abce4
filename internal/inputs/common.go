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

package inputs

import (
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

const (
	// DefaultAPIService is the signing service name for EC2.
	DefaultAPIService = "ec2"

	// DefaultTimeout bounds one outbound request.
	DefaultTimeout = 30 * time.Second
)

// CommonConfig holds the raw inputs shared by every action.
type CommonConfig struct {
	Provider         string
	Endpoint         string
	Identity         string
	Credential       string
	ProxyHost        string
	ProxyPort        string
	ProxyUsername    string
	ProxyPassword    string
	Headers          string
	QueryParams      string
	Action           string
	APIService       string
	Version          string
	Delimiter        string
	HTTPClientMethod string
	DebugMode        string
	Timeout          string
	RequestURI       string
	RequestPayload   string
}

// Proxy is an optional outbound HTTP proxy.
type Proxy struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Enabled reports whether a proxy was configured.
func (p Proxy) Enabled() bool {
	return p.Host != ""
}

// CommonInputs is the validated form of CommonConfig. Values are built once
// by NewCommonInputs and not modified afterwards.
type CommonInputs struct {
	Provider       string
	Endpoint       string
	Identity       string
	Credential     string
	Proxy          Proxy
	Headers        string
	QueryParams    string
	Action         string
	APIService     string
	Version        string
	Delimiter      string
	HTTPMethod     HTTPMethod
	Debug          bool
	Timeout        time.Duration
	RequestURI     string
	RequestPayload string
}

// NewCommonInputs validates cfg and applies defaults: apiService "ec2",
// delimiter ",", method GET, debug off, 30 second timeout. An endpoint
// without a scheme is taken to be https.
func NewCommonInputs(cfg CommonConfig) (CommonInputs, error) {
	in := CommonInputs{
		Provider:       DefaultString(cfg.Provider, ""),
		Identity:       DefaultString(cfg.Identity, ""),
		Credential:     strings.TrimSpace(cfg.Credential),
		Headers:        cfg.Headers,
		QueryParams:    DefaultString(cfg.QueryParams, ""),
		Action:         DefaultString(cfg.Action, ""),
		APIService:     DefaultString(cfg.APIService, DefaultAPIService),
		Version:        DefaultString(cfg.Version, ""),
		Delimiter:      DefaultString(cfg.Delimiter, DefaultDelimiter),
		Debug:          EnforcedBoolean(cfg.DebugMode, false),
		RequestURI:     DefaultString(cfg.RequestURI, ""),
		RequestPayload: cfg.RequestPayload,
	}
	endpoint, err := normalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return CommonInputs{}, err
	}
	in.Endpoint = endpoint

	proxy, err := newProxy(cfg)
	if err != nil {
		return CommonInputs{}, err
	}
	in.Proxy = proxy

	if in.HTTPMethod, err = ParseHTTPMethod(cfg.HTTPClientMethod); err != nil {
		return CommonInputs{}, err
	}

	secs, err := ValidLong(InputTimeout, cfg.Timeout, int64(DefaultTimeout/time.Second))
	if err != nil {
		return CommonInputs{}, err
	}
	if secs <= 0 {
		return CommonInputs{}, ec2errors.Validation(InputTimeout, "timeout must be a positive number of seconds", "")
	}
	in.Timeout = time.Duration(secs) * time.Second

	return in, nil
}

// LogValue keeps the credential and proxy password out of log records.
func (c CommonInputs) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("endpoint", c.Endpoint),
		slog.String("identity", c.Identity),
		slog.String("api_service", c.APIService),
		slog.String("version", c.Version),
		slog.String("method", string(c.HTTPMethod)),
		slog.Duration("timeout", c.Timeout),
	}
	if c.Proxy.Enabled() {
		attrs = append(attrs, slog.String("proxy", c.Proxy.Host+":"+strconv.Itoa(c.Proxy.Port)))
	}
	return slog.GroupValue(attrs...)
}

func normalizeEndpoint(raw string) (string, error) {
	s := DefaultString(raw, "")
	if s == "" {
		return "", nil
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "", ec2errors.Validation(InputEndpoint, "not a valid URL: "+strconv.Quote(raw),
			"Example: https://ec2.us-east-1.amazonaws.com")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ec2errors.Validation(InputEndpoint, "scheme must be http or https", "")
	}
	return strings.TrimRight(s, "/"), nil
}

func newProxy(cfg CommonConfig) (Proxy, error) {
	host := DefaultString(cfg.ProxyHost, "")
	portRaw := DefaultString(cfg.ProxyPort, "")
	if host == "" && portRaw == "" {
		return Proxy{}, nil
	}
	if host == "" || portRaw == "" {
		return Proxy{}, ec2errors.Validation(InputProxyPort,
			"proxyHost and proxyPort must be set together",
			"Specify values for both proxyHost and proxyPort or leave both empty")
	}
	port, err := strconv.Atoi(portRaw)
	if err != nil || port < 1 || port > 65535 {
		return Proxy{}, ec2errors.Validation(InputProxyPort, "port must be between 1 and 65535", "")
	}
	return Proxy{
		Host:     host,
		Port:     port,
		Username: DefaultString(cfg.ProxyUsername, ""),
		Password: cfg.ProxyPassword,
	}, nil
}
