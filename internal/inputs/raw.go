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

import "strings"

// Raw is the string map an action is invoked with.
type Raw map[string]string

// Get returns the named input or "".
func (r Raw) Get(name string) string {
	return r[name]
}

// Blank reports whether the named input is absent or blank.
func (r Raw) Blank(name string) bool {
	return IsBlank(r[name])
}

// sentinelValues are inputs where NotRelevant is itself a value.
var sentinelValues = map[string]bool{
	InputValueTagsString: true,
}

// Missing reports whether a required input was not supplied.
func (r Raw) Missing(name string) bool {
	if sentinelValues[name] {
		return strings.TrimSpace(r[name]) == ""
	}
	return r.Blank(name)
}

// CommonConfig extracts the inputs shared by every action.
func (r Raw) CommonConfig() CommonConfig {
	return CommonConfig{
		Provider:         r[InputProvider],
		Endpoint:         r[InputEndpoint],
		Identity:         r[InputIdentity],
		Credential:       r[InputCredential],
		ProxyHost:        r[InputProxyHost],
		ProxyPort:        r[InputProxyPort],
		ProxyUsername:    r[InputProxyUsername],
		ProxyPassword:    r[InputProxyPassword],
		Headers:          r[InputHeaders],
		QueryParams:      r[InputQueryParams],
		Action:           r[InputAction],
		APIService:       r[InputAPIService],
		Version:          r[InputVersion],
		Delimiter:        r[InputDelimiter],
		HTTPClientMethod: r[InputHTTPClientMethod],
		DebugMode:        r[InputDebugMode],
		Timeout:          r[InputTimeout],
		RequestURI:       r[InputRequestURI],
		RequestPayload:   r[InputRequestPayload],
	}
}

// CustomConfig extracts resource identifiers and per-action extras.
func (r Raw) CustomConfig() CustomConfig {
	return CustomConfig{
		Region:            r[InputRegion],
		InstanceID:        r[InputInstanceID],
		VolumeID:          r[InputVolumeID],
		ImageID:           r[InputImageID],
		SnapshotID:        r[InputSnapshotID],
		AttachmentID:      r[InputAttachmentID],
		AllocationID:      r[InputAllocationID],
		AssociationID:     r[InputAssociationID],
		SubnetID:          r[InputSubnetID],
		AvailabilityZone:  r[InputAvailabilityZone],
		InstanceType:      r[InputInstanceType],
		KeyName:           r[InputKeyName],
		ResourceIDsString: r[InputResourceIDsString],
		KeyTagsString:     r[InputKeyTagsString],
		ValueTagsString:   r[InputValueTagsString],
		VolumeType:        r[InputVolumeType],
		KmsKeyID:          r[InputKmsKeyID],
		Attribute:         r[InputAttribute],
	}
}

// VolumeConfig extracts the volume inputs.
func (r Raw) VolumeConfig() VolumeConfig {
	return VolumeConfig{
		DeviceName:  r[InputDeviceName],
		Size:        r[InputSize],
		Iops:        r[InputIops],
		Encrypted:   r[InputEncrypted],
		Force:       r[InputForce],
		Description: r[InputDescription],
	}
}

// NetworkConfig extracts the network interface inputs.
func (r Raw) NetworkConfig() NetworkConfig {
	return NetworkConfig{
		NetworkInterfaceID:             r[InputNetworkInterfaceID],
		DeviceIndex:                    r[InputDeviceIndex],
		ForceDetach:                    r[InputForceDetach],
		Description:                    r[InputDescription],
		PrivateIPAddress:               r[InputPrivateIPAddress],
		SecurityGroupIDsString:         r[InputSecurityGroupIDsString],
		SecondaryPrivateIPAddressCount: r[InputSecondaryPrivateIPAddressCount],
	}
}

// ElasticIPConfig extracts the Elastic IP inputs.
func (r Raw) ElasticIPConfig() ElasticIPConfig {
	return ElasticIPConfig{
		Domain:             r[InputDomain],
		PublicIP:           r[InputPublicIP],
		PrivateIPAddress:   r[InputPrivateIPAddress],
		AllowReassociation: r[InputAllowReassociation],
	}
}

// ImageConfig extracts the image inputs.
func (r Raw) ImageConfig() ImageConfig {
	return ImageConfig{
		ImageName:           r[InputImageName],
		ImageDescription:    r[InputImageDescription],
		ImageIDsString:      r[InputImageIDsString],
		OwnersString:        r[InputOwnersString],
		UserIDsString:       r[InputUserIDsString],
		UserGroupsString:    r[InputUserGroupsString],
		Type:                r[InputImageType],
		IsPublic:            r[InputIsPublic],
		State:               r[InputImageState],
		ImageNoReboot:       r[InputImageNoReboot],
		PermissionOperation: r[InputPermissionOperation],
	}
}

// InstanceConfig extracts the instance inputs.
func (r Raw) InstanceConfig() InstanceConfig {
	return InstanceConfig{
		InstanceIDsString:                 r[InputInstanceIDsString],
		MinCount:                          r[InputMinCount],
		MaxCount:                          r[InputMaxCount],
		InstanceStateName:                 r[InputInstanceStateName],
		InstanceStateCode:                 r[InputInstanceStateCode],
		MonitoringState:                   r[InputMonitoringState],
		Tenancy:                           r[InputTenancy],
		InstanceInitiatedShutdownBehavior: r[InputInstanceInitiatedShutdownBehavior],
		UserData:                          r[InputUserData],
		ClientToken:                       r[InputClientToken],
		DisableAPITermination:             r[InputDisableAPITermination],
		Monitoring:                        r[InputMonitoring],
		ForceStop:                         r[InputForceStop],
		CheckStateTimeout:                 r[InputCheckStateTimeout],
		PollingInterval:                   r[InputPollingInterval],
		PlacementGroupName:                r[InputPlacementGroupName],
		Architecture:                      r[InputArchitecture],
	}
}
