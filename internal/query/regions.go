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

func init() {
	register(Mapping{
		Action: "DescribeRegions",
		build: func(p *Params, in Inputs) error {
			return p.SetList("RegionName", in.list(in.Custom.ResourceIDsString))
		},
	})
	register(Mapping{
		Action: "DescribeAvailabilityZones",
		build: func(p *Params, in Inputs) error {
			if err := p.SetList("ZoneName", in.list(in.Custom.AvailabilityZone)); err != nil {
				return err
			}
			var f filters
			f.add("region-name", in.Custom.Region)
			return f.apply(p)
		},
	})
}
