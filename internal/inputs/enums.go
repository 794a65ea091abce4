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

import (
	"strconv"
	"strings"

	ec2errors "github.com/tombee/ec2actions/pkg/errors"
)

// HTTPMethod is the method used by the query executor.
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodDelete  HTTPMethod = "DELETE"
	MethodHead    HTTPMethod = "HEAD"
	MethodOptions HTTPMethod = "OPTIONS"
	MethodTrace   HTTPMethod = "TRACE"
)

var httpMethods = []HTTPMethod{MethodDelete, MethodGet, MethodHead, MethodOptions, MethodPost, MethodPut, MethodTrace}

// ParseHTTPMethod matches raw case-insensitively. Blank means GET.
func ParseHTTPMethod(raw string) (HTTPMethod, error) {
	return parseEnum(InputHTTPClientMethod, raw, MethodGet, httpMethods)
}

// InstanceState is an instance lifecycle state name.
type InstanceState string

const (
	InstanceStatePending      InstanceState = "pending"
	InstanceStateRunning      InstanceState = "running"
	InstanceStateShuttingDown InstanceState = "shutting-down"
	InstanceStateTerminated   InstanceState = "terminated"
	InstanceStateStopping     InstanceState = "stopping"
	InstanceStateStopped      InstanceState = "stopped"
)

var instanceStates = []InstanceState{
	InstanceStatePending, InstanceStateRunning, InstanceStateShuttingDown,
	InstanceStateTerminated, InstanceStateStopping, InstanceStateStopped,
}

// ParseInstanceState matches raw against the instance state names. Blank
// means not relevant.
func ParseInstanceState(raw string) (InstanceState, error) {
	return parseEnum(InputInstanceStateName, raw, "", instanceStates)
}

// ImageType is the kind of machine image.
type ImageType string

const (
	ImageTypeMachine ImageType = "machine"
	ImageTypeKernel  ImageType = "kernel"
	ImageTypeRamdisk ImageType = "ramdisk"
)

var imageTypes = []ImageType{ImageTypeMachine, ImageTypeKernel, ImageTypeRamdisk}

// ParseImageType matches raw against the image types. Blank means not relevant.
func ParseImageType(raw string) (ImageType, error) {
	return parseEnum(InputImageType, raw, "", imageTypes)
}

// ImageState is the registration state of an image.
type ImageState string

const (
	ImageStateAvailable    ImageState = "available"
	ImageStatePending      ImageState = "pending"
	ImageStateFailed       ImageState = "failed"
	ImageStateDeregistered ImageState = "deregistered"
)

var imageStates = []ImageState{ImageStateAvailable, ImageStatePending, ImageStateFailed, ImageStateDeregistered}

// ParseImageState matches raw against the image states. Blank means not relevant.
func ParseImageState(raw string) (ImageState, error) {
	return parseEnum(InputImageState, raw, "", imageStates)
}

// Tenancy is the placement tenancy of an instance.
type Tenancy string

const (
	TenancyDefault   Tenancy = "default"
	TenancyDedicated Tenancy = "dedicated"
	TenancyHost      Tenancy = "host"
)

var tenancies = []Tenancy{TenancyDefault, TenancyDedicated, TenancyHost}

// ParseTenancy matches raw against the tenancy values. Blank means not relevant.
func ParseTenancy(raw string) (Tenancy, error) {
	return parseEnum(InputTenancy, raw, "", tenancies)
}

// MonitoringState is the detailed monitoring state of an instance.
type MonitoringState string

const (
	MonitoringDisabled  MonitoringState = "disabled"
	MonitoringDisabling MonitoringState = "disabling"
	MonitoringEnabled   MonitoringState = "enabled"
	MonitoringPending   MonitoringState = "pending"
)

var monitoringStates = []MonitoringState{MonitoringDisabled, MonitoringDisabling, MonitoringEnabled, MonitoringPending}

// ParseMonitoringState matches raw against the monitoring states. Blank
// means not relevant.
func ParseMonitoringState(raw string) (MonitoringState, error) {
	return parseEnum(InputMonitoringState, raw, "", monitoringStates)
}

// ShutdownBehavior is what an instance does when shut down from inside.
type ShutdownBehavior string

const (
	ShutdownStop      ShutdownBehavior = "stop"
	ShutdownTerminate ShutdownBehavior = "terminate"
)

var shutdownBehaviors = []ShutdownBehavior{ShutdownStop, ShutdownTerminate}

// ParseShutdownBehavior matches raw against the shutdown behaviors. Blank
// means not relevant.
func ParseShutdownBehavior(raw string) (ShutdownBehavior, error) {
	return parseEnum(InputInstanceInitiatedShutdownBehavior, raw, "", shutdownBehaviors)
}

// VolumeType is an EBS volume type.
type VolumeType string

const (
	VolumeStandard VolumeType = "standard"
	VolumeIo1      VolumeType = "io1"
	VolumeIo2      VolumeType = "io2"
	VolumeGp2      VolumeType = "gp2"
	VolumeGp3      VolumeType = "gp3"
	VolumeSc1      VolumeType = "sc1"
	VolumeSt1      VolumeType = "st1"
)

var volumeTypes = []VolumeType{VolumeStandard, VolumeIo1, VolumeIo2, VolumeGp2, VolumeGp3, VolumeSc1, VolumeSt1}

// ParseVolumeType matches raw against the volume types. Blank means not
// relevant; CreateVolume substitutes "standard" itself.
func ParseVolumeType(raw string) (VolumeType, error) {
	return parseEnum(InputVolumeType, raw, "", volumeTypes)
}

// Domain is the scope of an Elastic IP address.
type Domain string

const (
	DomainStandard Domain = "standard"
	DomainVPC      Domain = "vpc"
)

var domains = []Domain{DomainStandard, DomainVPC}

// ParseDomain matches raw against the address domains. Blank means not relevant.
func ParseDomain(raw string) (Domain, error) {
	return parseEnum(InputDomain, raw, "", domains)
}

// Architecture is an instance or image CPU architecture.
type Architecture string

const (
	ArchI386   Architecture = "i386"
	ArchX86_64 Architecture = "x86_64"
	ArchArm64  Architecture = "arm64"
)

var architectures = []Architecture{ArchI386, ArchX86_64, ArchArm64}

// ParseArchitecture matches raw against the architectures. Blank means not
// relevant.
func ParseArchitecture(raw string) (Architecture, error) {
	return parseEnum(InputArchitecture, raw, "", architectures)
}

// PermissionOperation selects whether launch permissions are granted or revoked.
type PermissionOperation string

const (
	PermissionAdd    PermissionOperation = "add"
	PermissionRemove PermissionOperation = "remove"
)

var permissionOperations = []PermissionOperation{PermissionAdd, PermissionRemove}

// ParsePermissionOperation matches raw against add/remove. Blank means not
// relevant.
func ParsePermissionOperation(raw string) (PermissionOperation, error) {
	return parseEnum(InputPermissionOperation, raw, "", permissionOperations)
}

// parseEnum returns the member of valid equal to raw under case folding, def
// when raw is blank, or a ValidationError listing the accepted values.
func parseEnum[T ~string](field, raw string, def T, valid []T) (T, error) {
	if IsBlank(raw) {
		return def, nil
	}
	s := strings.TrimSpace(raw)
	for _, v := range valid {
		if foldEqual(s, string(v)) {
			return v, nil
		}
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}
	var zero T
	return zero, ec2errors.Validation(field,
		"unrecognized value "+strconv.Quote(raw),
		"Valid values: "+strings.Join(names, ", "))
}
