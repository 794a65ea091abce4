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

// Package query maps validated action inputs onto EC2 Query API parameters.
package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// Params is an insertion-ordered set of query parameters with unique keys.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams returns Params holding the Action and Version keys every
// request carries.
func NewParams(action, version string) *Params {
	p := &Params{values: make(map[string]string)}
	p.keys = append(p.keys, "Action", "Version")
	p.values["Action"] = action
	p.values["Version"] = version
	return p
}

// Set adds key. Setting a key twice is a mapping bug and returns an error.
func (p *Params) Set(key, value string) error {
	if _, ok := p.values[key]; ok {
		return ec2errors.Errorf("query parameter %q set twice", key)
	}
	p.keys = append(p.keys, key)
	p.values[key] = value
	return nil
}

// SetIf adds key only when value is not empty.
func (p *Params) SetIf(key, value string) error {
	if value == "" {
		return nil
	}
	return p.Set(key, value)
}

// SetList adds prefix.1, prefix.2, ... for each item.
func (p *Params) SetList(prefix string, items []string) error {
	for i, item := range items {
		if err := p.Set(prefix+"."+strconv.Itoa(i+1), item); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value for key.
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Has reports whether key is set.
func (p *Params) Has(key string) bool {
	_, ok := p.values[key]
	return ok
}

// Keys returns the keys in insertion order.
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	return len(p.keys)
}

// Map returns a copy of the parameters as a plain map.
func (p *Params) Map() map[string]string {
	out := make(map[string]string, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Values converts the parameters to url.Values.
func (p *Params) Values() url.Values {
	v := make(url.Values, len(p.keys))
	for _, k := range p.keys {
		v.Set(k, p.values[k])
	}
	return v
}

// Encode renders the parameters as a query string sorted by key, which is
// also the canonical order used for signing.
func (p *Params) Encode() string {
	keys := p.Keys()
	sort.Strings(keys)
	buf := make([]byte, 0, 64*len(keys))
	for i, k := range keys {
		if i > 0 {
			buf = append(buf, '&')
		}
		buf = append(buf, escape(k)...)
		buf = append(buf, '=')
		buf = append(buf, escape(p.values[k])...)
	}
	return string(buf)
}

// escape percent-encodes s the way SigV4 canonical queries expect: spaces
// become %20, never '+'.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
