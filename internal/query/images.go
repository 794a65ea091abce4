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
	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// launchPermission is the only image attribute the attribute actions handle.
const launchPermission = "launchPermission"

func init() {
	register(Mapping{
		Action:   "CreateImage",
		Required: []string{inputs.InputInstanceID, inputs.InputImageName},
		build: func(p *Params, in Inputs) error {
			return setAll(p,
				"InstanceId", in.Custom.InstanceID,
				"Name", in.Image.ImageName,
				"Description", in.Image.ImageDescription,
				"NoReboot", boolString(in.Image.NoReboot),
			)
		},
	})
	register(Mapping{
		Action:   "DeregisterImage",
		Required: []string{inputs.InputImageID},
		build: func(p *Params, in Inputs) error {
			return p.Set("ImageId", in.Custom.ImageID)
		},
	})
	register(Mapping{
		Action: "DescribeImages",
		build:  describeImages,
	})
	register(Mapping{
		Action:   "DescribeImageAttribute",
		Required: []string{inputs.InputImageID},
		build: func(p *Params, in Inputs) error {
			return setAll(p,
				"ImageId", in.Custom.ImageID,
				"Attribute", launchPermission,
			)
		},
	})
	register(Mapping{
		Action:   "ModifyImageAttribute",
		Required: []string{inputs.InputImageID, inputs.InputPermissionOperation},
		build:    modifyImageAttribute,
	})
	register(Mapping{
		Action:   "ResetImageAttribute",
		Required: []string{inputs.InputImageID},
		build: func(p *Params, in Inputs) error {
			return setAll(p,
				"ImageId", in.Custom.ImageID,
				"Attribute", launchPermission,
			)
		},
	})
}

func describeImages(p *Params, in Inputs) error {
	ids := in.list(in.Image.ImageIDsString)
	if len(ids) == 0 && in.Custom.ImageID != "" {
		ids = []string{in.Custom.ImageID}
	}
	if err := p.SetList("ImageId", ids); err != nil {
		return err
	}
	if err := p.SetList("Owner", in.list(in.Image.OwnersString)); err != nil {
		return err
	}
	if err := p.SetList("ExecutableBy", in.list(in.Image.UserIDsString)); err != nil {
		return err
	}

	img := in.Image
	var f filters
	f.add("image-type", string(img.Type))
	f.add("is-public", img.IsPublic)
	f.add("state", string(img.State))
	f.add("architecture", string(in.Instance.Architecture))
	f.add("name", img.ImageName)
	f.add("description", img.ImageDescription)
	if err := f.addTags(in); err != nil {
		return err
	}
	return f.apply(p)
}

// modifyImageAttribute grants or revokes launch permissions for the listed
// accounts and groups.
func modifyImageAttribute(p *Params, in Inputs) error {
	const action = "ModifyImageAttribute"
	users := in.list(in.Image.UserIDsString)
	groups := in.list(in.Image.UserGroupsString)
	if len(users) == 0 && len(groups) == 0 {
		return ec2errors.Request(action, "LaunchPermission",
			"one of "+inputs.InputUserIDsString+" or "+inputs.InputUserGroupsString+" is required")
	}

	var verb string
	switch in.Image.PermissionOperation {
	case inputs.PermissionAdd:
		verb = "Add"
	case inputs.PermissionRemove:
		verb = "Remove"
	default:
		return ec2errors.Required(inputs.InputPermissionOperation)
	}

	if err := p.Set("ImageId", in.Custom.ImageID); err != nil {
		return err
	}
	n := 0
	for _, u := range users {
		n++
		if err := p.Set("LaunchPermission."+verb+"."+strconv.Itoa(n)+".UserId", u); err != nil {
			return err
		}
	}
	for _, g := range groups {
		n++
		if err := p.Set("LaunchPermission."+verb+"."+strconv.Itoa(n)+".Group", g); err != nil {
			return err
		}
	}
	return nil
}
