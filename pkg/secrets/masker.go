// Package secrets provides utilities for detecting and masking sensitive values.
package secrets

import (
	"sort"
	"strings"
)

// Mask replaces each secret value found in output.
const Mask = "***"

// minSecretLength keeps very short values from masking unrelated text.
const minSecretLength = 4

// Masker detects and masks sensitive values in strings and result maps.
// Input names ending in one of its patterns are treated as secrets.
type Masker struct {
	// patterns are lower-case name suffixes that indicate a secret
	// (e.g., "credential", "password")
	patterns []string

	// secrets is the set of known secret values to mask
	secrets map[string]bool
}

// NewMasker creates a new secret masker with default patterns.
func NewMasker() *Masker {
	return &Masker{
		patterns: []string{
			"credential",
			"password",
			"secret",
			"secretaccesskey",
			"sessiontoken",
		},
		secrets: make(map[string]bool),
	}
}

// AddSecret registers a value to be masked.
func (m *Masker) AddSecret(value string) {
	if len(value) >= minSecretLength {
		m.secrets[value] = true
	}
}

// AddSecretsFromInputs registers the values of every input whose name marks
// it as secret, such as credential and proxyPassword.
func (m *Masker) AddSecretsFromInputs(inputs map[string]string) {
	for name, value := range inputs {
		if m.IsSecretName(name) {
			m.AddSecret(value)
		}
	}
}

// IsSecretName reports whether an input or variable name denotes a secret.
func (m *Masker) IsSecretName(name string) bool {
	lower := strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(name))
	for _, pattern := range m.patterns {
		if strings.HasSuffix(lower, pattern) {
			return true
		}
	}
	return false
}

// Mask replaces all known secrets in s with "***". Longer secrets are
// replaced first so a secret containing another is masked whole.
func (m *Masker) Mask(s string) string {
	if len(m.secrets) == 0 || s == "" {
		return s
	}
	known := make([]string, 0, len(m.secrets))
	for secret := range m.secrets {
		known = append(known, secret)
	}
	sort.Slice(known, func(i, j int) bool { return len(known[i]) > len(known[j]) })

	for _, secret := range known {
		s = strings.ReplaceAll(s, secret, Mask)
	}
	return s
}

// MaskMap returns a copy of data with secrets masked in every value.
func (m *Masker) MaskMap(data map[string]string) map[string]string {
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = m.Mask(v)
	}
	return out
}

// RedactInputs returns a copy of inputs with secret-named values replaced,
// for logging or echoing an invocation back to the caller.
func (m *Masker) RedactInputs(inputs map[string]string) map[string]string {
	out := make(map[string]string, len(inputs))
	for name, value := range inputs {
		if value != "" && m.IsSecretName(name) {
			value = Mask
		}
		out[name] = value
	}
	return out
}
