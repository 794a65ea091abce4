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

// Input names accepted by the actions. They are the keys of the string map
// handed to an action and the Field of any ValidationError about them.
const (
	InputProvider         = "provider"
	InputEndpoint         = "endpoint"
	InputIdentity         = "identity"
	InputCredential       = "credential"
	InputProxyHost        = "proxyHost"
	InputProxyPort        = "proxyPort"
	InputProxyUsername    = "proxyUsername"
	InputProxyPassword    = "proxyPassword"
	InputHeaders          = "headers"
	InputQueryParams      = "queryParams"
	InputAction           = "action"
	InputAPIService       = "apiService"
	InputVersion          = "version"
	InputDelimiter        = "delimiter"
	InputHTTPClientMethod = "httpClientMethod"
	InputDebugMode        = "debugMode"
	InputTimeout          = "timeout"
	InputRequestURI       = "requestUri"
	InputRequestPayload   = "requestPayload"

	InputRegion            = "region"
	InputInstanceID        = "instanceId"
	InputVolumeID          = "volumeId"
	InputImageID           = "imageId"
	InputSnapshotID        = "snapshotId"
	InputAttachmentID      = "attachmentId"
	InputAllocationID      = "allocationId"
	InputAssociationID     = "associationId"
	InputSubnetID          = "subnetId"
	InputAvailabilityZone  = "availabilityZone"
	InputInstanceType      = "instanceType"
	InputKeyName           = "keyName"
	InputResourceIDsString = "resourceIdsString"
	InputKeyTagsString     = "keyTagsString"
	InputValueTagsString   = "valueTagsString"
	InputVolumeType        = "volumeType"
	InputKmsKeyID          = "kmsKeyId"
	InputAttribute         = "attribute"

	InputDeviceName  = "deviceName"
	InputSize        = "size"
	InputIops        = "iops"
	InputEncrypted   = "encrypted"
	InputForce       = "force"
	InputDescription = "description"

	InputNetworkInterfaceID             = "networkInterfaceId"
	InputDeviceIndex                    = "deviceIndex"
	InputForceDetach                    = "forceDetach"
	InputPrivateIPAddress               = "privateIpAddress"
	InputSecurityGroupIDsString         = "securityGroupIdsString"
	InputSecondaryPrivateIPAddressCount = "secondaryPrivateIpAddressCount"

	InputDomain             = "domain"
	InputPublicIP           = "publicIp"
	InputAllowReassociation = "allowReassociation"

	InputImageName           = "imageName"
	InputImageDescription    = "imageDescription"
	InputImageIDsString      = "imageIdsString"
	InputOwnersString        = "ownersString"
	InputUserIDsString       = "userIdsString"
	InputUserGroupsString    = "userGroupsString"
	InputImageType           = "type"
	InputIsPublic            = "isPublic"
	InputImageState          = "state"
	InputImageNoReboot       = "imageNoReboot"
	InputPermissionOperation = "permissionOperation"

	InputInstanceIDsString                 = "instanceIdsString"
	InputMinCount                          = "minCount"
	InputMaxCount                          = "maxCount"
	InputInstanceStateName                 = "instanceStateName"
	InputInstanceStateCode                 = "instanceStateCode"
	InputMonitoringState                   = "monitoringState"
	InputTenancy                           = "tenancy"
	InputInstanceInitiatedShutdownBehavior = "instanceInitiatedShutdownBehavior"
	InputUserData                          = "userData"
	InputClientToken                       = "clientToken"
	InputDisableAPITermination             = "disableApiTermination"
	InputMonitoring                        = "monitoring"
	InputForceStop                         = "forceStop"
	InputCheckStateTimeout                 = "checkStateTimeout"
	InputPollingInterval                   = "pollingInterval"
	InputPlacementGroupName                = "placementGroupName"
	InputArchitecture                      = "architecture"
)
