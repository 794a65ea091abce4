package transport

import (
	"net/http"
	"net/textproto"
	"strings"

	"github.com/tombee/ec2actions/internal/query"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// reservedHeaders are produced by request signing and may not be supplied
// by callers.
var reservedHeaders = map[string]bool{
	"Authorization":        true,
	"X-Amz-Date":           true,
	"Host":                 true,
	"X-Amz-Content-Sha256": true,
	"X-Amz-Security-Token": true,
}

func isReservedHeader(name string) bool {
	return reservedHeaders[textproto.CanonicalMIMEHeaderKey(name)]
}

// ParseHeaders parses caller headers given as "Name:Value" lines separated
// by CRLF or LF. Blank lines are skipped; repeated names accumulate values.
func ParseHeaders(action, raw string) (http.Header, error) {
	h := make(http.Header)
	if strings.TrimSpace(raw) == "" {
		return h, nil
	}
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, ec2errors.Request(action, "headers", "malformed header line "+quote(line)+"; expected Name:Value")
		}
		if isReservedHeader(name) {
			return nil, ec2errors.Request(action, name, "header is set by request signing and cannot be overridden")
		}
		h.Add(name, strings.TrimSpace(value))
	}
	return h, nil
}

// MergeQueryParams adds caller overrides given as "k=v&k2=v2" to p. A key
// the action already set is a conflict, never a silent replacement.
func MergeQueryParams(action string, p *query.Params, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	for _, pair := range strings.Split(raw, "&") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return ec2errors.Request(action, "queryParams", "malformed query parameter "+quote(pair)+"; expected key=value")
		}
		if p.Has(key) {
			return ec2errors.Request(action, key, "query parameter is already set by the action")
		}
		if err := p.Set(key, strings.TrimSpace(value)); err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}
