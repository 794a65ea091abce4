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
	"strconv"

	"github.com/tombee/ec2actions/internal/inputs"
)

func init() {
	register(Mapping{
		Action:   "CreateTags",
		Required: []string{inputs.InputResourceIDsString, inputs.InputKeyTagsString, inputs.InputValueTagsString},
		build: func(p *Params, in Inputs) error {
			if err := p.SetList("ResourceId", in.list(in.Custom.ResourceIDsString)); err != nil {
				return err
			}
			return setTags(p, "Tag", in)
		},
	})
	register(Mapping{
		Action:   "DeleteTags",
		Required: []string{inputs.InputResourceIDsString},
		build:    deleteTags,
	})
	register(Mapping{
		Action: "DescribeTags",
		build: func(p *Params, in Inputs) error {
			var f filters
			f.add("resource-id", in.list(in.Custom.ResourceIDsString)...)
			f.add("key", in.list(in.Custom.KeyTagsString)...)
			f.add("value", in.list(in.Custom.ValueTagsString)...)
			return f.apply(p)
		},
	})
}

// deleteTags removes the named keys. Values are optional; when given they
// must line up with the keys and restrict deletion to matching values.
func deleteTags(p *Params, in Inputs) error {
	if err := p.SetList("ResourceId", in.list(in.Custom.ResourceIDsString)); err != nil {
		return err
	}
	if inputs.IsBlank(in.Custom.ValueTagsString) {
		for i, key := range in.list(in.Custom.KeyTagsString) {
			if err := p.Set("Tag."+strconv.Itoa(i+1)+".Key", key); err != nil {
				return err
			}
		}
		return nil
	}
	return setTags(p, "Tag", in)
}
