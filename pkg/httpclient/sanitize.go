package httpclient

import (
	"net/url"
	"strings"
)

// sensitiveParams contains query parameter names that should be redacted from logs.
// These are matched case-insensitively as substrings.
var sensitiveParams = []string{
	"x-amz-signature",
	"x-amz-credential",
	"x-amz-security-token",
	"signature",
	"awsaccesskeyid",
	"password",
	"secret",
	"token",
	"credential",
}

// sanitizeURL removes sensitive query parameters and userinfo from URLs
// before logging.
func sanitizeURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	q := u.Query()
	for param := range q {
		if isSensitiveParam(param) {
			q.Set(param, "[REDACTED]")
		}
	}

	safe := *u
	safe.User = nil
	safe.RawQuery = q.Encode()
	return safe.String()
}

// isSensitiveParam checks if a parameter name matches the sensitive list.
func isSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, sensitive := range sensitiveParams {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}

// SanitizeValues returns a copy of params with sensitive entries redacted,
// for logging query parameters outside of a URL.
func SanitizeValues(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		if isSensitiveParam(k) {
			v = "[REDACTED]"
		}
		out[k] = v
	}
	return out
}
