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

package query

import (
	"sort"
	"strconv"

	"github.com/tombee/ec2actions/internal/inputs"
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// Inputs bundles the validated aggregates a mapper may read.
type Inputs struct {
	Common    inputs.CommonInputs
	Custom    inputs.CustomInputs
	Volume    inputs.VolumeInputs
	Network   inputs.NetworkInputs
	ElasticIP inputs.ElasticIPInputs
	Image     inputs.ImageInputs
	Instance  inputs.InstanceInputs
}

// NewInputs validates every aggregate from a raw input map, stopping at the
// first invalid input.
func NewInputs(raw inputs.Raw) (Inputs, error) {
	var (
		in  Inputs
		err error
	)
	if in.Common, err = inputs.NewCommonInputs(raw.CommonConfig()); err != nil {
		return Inputs{}, err
	}
	if in.Custom, err = inputs.NewCustomInputs(raw.CustomConfig()); err != nil {
		return Inputs{}, err
	}
	if in.Volume, err = inputs.NewVolumeInputs(raw.VolumeConfig()); err != nil {
		return Inputs{}, err
	}
	if in.Network, err = inputs.NewNetworkInputs(raw.NetworkConfig()); err != nil {
		return Inputs{}, err
	}
	if in.ElasticIP, err = inputs.NewElasticIPInputs(raw.ElasticIPConfig()); err != nil {
		return Inputs{}, err
	}
	if in.Image, err = inputs.NewImageInputs(raw.ImageConfig()); err != nil {
		return Inputs{}, err
	}
	if in.Instance, err = inputs.NewInstanceInputs(raw.InstanceConfig()); err != nil {
		return Inputs{}, err
	}
	return in, nil
}

// list splits a delimited input with the caller's delimiter.
func (in Inputs) list(raw string) []string {
	return inputs.SplitList(raw, in.Common.Delimiter)
}

// Mapping describes how one AWS action is built.
type Mapping struct {
	// Action is the AWS action name sent as the Action parameter.
	Action string

	// Required lists the inputs that must be supplied before any
	// aggregate is built.
	Required []string

	build func(p *Params, in Inputs) error
}

var mappings = map[string]Mapping{}

func register(m Mapping) {
	if _, ok := mappings[m.Action]; ok {
		panic("query: duplicate mapping for " + m.Action)
	}
	mappings[m.Action] = m
}

// Lookup returns the mapping for an AWS action name.
func Lookup(action string) (Mapping, bool) {
	m, ok := mappings[action]
	return m, ok
}

// Actions returns the supported AWS action names, sorted.
func Actions() []string {
	out := make([]string, 0, len(mappings))
	for name := range mappings {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Build maps in onto the parameters for action. The result always starts
// with Action and Version; identical inputs always yield identical
// parameters in the same order.
func Build(action string, in Inputs) (*Params, error) {
	m, ok := mappings[action]
	if !ok {
		return nil, ec2errors.Request(action, "", "unsupported action")
	}
	p := NewParams(m.Action, in.Common.Version)
	if err := m.build(p, in); err != nil {
		return nil, err
	}
	return p, nil
}

// Filter is a named filter and the values it accepts.
type Filter struct {
	Name   string
	Values []string
}

// filters accumulates Filter.N.Name / Filter.N.Value.M parameters.
type filters struct {
	names  []string
	values [][]string
}

// add records a filter unless values is empty.
func (f *filters) add(name string, values ...string) {
	var vs []string
	for _, v := range values {
		if v != "" {
			vs = append(vs, v)
		}
	}
	if len(vs) == 0 {
		return
	}
	f.names = append(f.names, name)
	f.values = append(f.values, vs)
}

// addTags records tag:<key> filters for aligned key/value lists, or a
// single tag-key filter when no values were given.
func (f *filters) addTags(in Inputs) error {
	keys := in.list(in.Custom.KeyTagsString)
	if len(keys) == 0 {
		return nil
	}
	values := inputs.SplitValues(in.Custom.ValueTagsString, in.Common.Delimiter)
	if len(values) == 0 {
		f.add("tag-key", keys...)
		return nil
	}
	pairs, err := inputs.PairLists(inputs.InputKeyTagsString, keys, values)
	if err != nil {
		return err
	}
	for _, pair := range pairs {
		f.add("tag:"+pair.Key, pair.Value)
	}
	return nil
}

func (f *filters) apply(p *Params) error {
	for i, name := range f.names {
		prefix := "Filter." + strconv.Itoa(i+1)
		if err := p.Set(prefix+".Name", name); err != nil {
			return err
		}
		if err := p.SetList(prefix+".Value", f.values[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *filters) list() []Filter {
	out := make([]Filter, len(f.names))
	for i, name := range f.names {
		out[i] = Filter{Name: name, Values: f.values[i]}
	}
	return out
}

// setTags writes prefix.N.Key / prefix.N.Value from the tag lists. Keys and
// values must line up one to one.
func setTags(p *Params, prefix string, in Inputs) error {
	keys := in.list(in.Custom.KeyTagsString)
	values := inputs.SplitValues(in.Custom.ValueTagsString, in.Common.Delimiter)
	pairs, err := inputs.PairLists(inputs.InputKeyTagsString, keys, values)
	if err != nil {
		return err
	}
	for i, pair := range pairs {
		n := prefix + "." + strconv.Itoa(i+1)
		if err := p.Set(n+".Key", pair.Key); err != nil {
			return err
		}
		if err := p.Set(n+".Value", pair.Value); err != nil {
			return err
		}
	}
	return nil
}

// setAll applies a sequence of optional key/value pairs, stopping at the
// first error.
func setAll(p *Params, kv ...string) error {
	for i := 0; i+1 < len(kv); i += 2 {
		if err := p.SetIf(kv[i], kv[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// exactlyOne enforces that exactly one of two mutually exclusive
// identifiers is set.
func exactlyOne(action, nameA, a, nameB, b string) error {
	switch {
	case a != "" && b != "":
		return ec2errors.Request(action, nameA, nameA+" and "+nameB+" are mutually exclusive")
	case a == "" && b == "":
		return ec2errors.Request(action, nameA, "one of "+nameA+" or "+nameB+" is required")
	}
	return nil
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
