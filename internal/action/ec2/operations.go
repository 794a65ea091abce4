package ec2

import (
	"sort"
	"strings"
	"unicode"

	"github.com/tombee/ec2actions/internal/inputs"
	"github.com/tombee/ec2actions/internal/query"
)

// Kind selects how an operation reaches EC2.
type Kind string

const (
	// KindQuery operations build a signed Query API request.
	KindQuery Kind = "query"

	// KindCompute operations go through the AWS SDK clients.
	KindCompute Kind = "compute"
)

// Compute operation names.
const (
	OpListRegions           = "list_regions"
	OpListInstancesInRegion = "list_instances_in_region"
	OpUpdateInstanceType    = "update_instance_type"
	OpVerifyCredentials     = "verify_credentials"
)

// Operation describes one invocable operation.
type Operation struct {
	// Name is the snake_case operation name (e.g., "create_tags")
	Name string `json:"name"`

	// AWSAction is the EC2 or STS action the operation calls
	AWSAction string `json:"awsAction"`

	// Kind selects the query or compute path
	Kind Kind `json:"kind"`

	// Required lists the inputs that must be non-blank
	Required []string `json:"required"`
}

// queryRequired are required by every query operation ahead of the
// action's own inputs.
var queryRequired = []string{
	inputs.InputEndpoint,
	inputs.InputIdentity,
	inputs.InputCredential,
	inputs.InputVersion,
}

var computeOperations = []Operation{
	{Name: OpListRegions, AWSAction: "DescribeRegions", Kind: KindCompute},
	{Name: OpListInstancesInRegion, AWSAction: "DescribeInstances", Kind: KindCompute, Required: []string{inputs.InputRegion}},
	{Name: OpUpdateInstanceType, AWSAction: "ModifyInstanceAttribute", Kind: KindCompute, Required: []string{inputs.InputInstanceID}},
	{Name: OpVerifyCredentials, AWSAction: "GetCallerIdentity", Kind: KindCompute},
}

var operations = buildOperations()

func buildOperations() map[string]Operation {
	ops := make(map[string]Operation)
	for _, action := range query.Actions() {
		m, _ := query.Lookup(action)
		required := append(append([]string{}, queryRequired...), m.Required...)
		ops[snakeCase(action)] = Operation{
			Name:      snakeCase(action),
			AWSAction: action,
			Kind:      KindQuery,
			Required:  required,
		}
	}
	for _, op := range computeOperations {
		if _, ok := ops[op.Name]; ok {
			panic("ec2: duplicate operation " + op.Name)
		}
		ops[op.Name] = op
	}
	return ops
}

// LookupOperation returns the operation registered under name.
func LookupOperation(name string) (Operation, bool) {
	op, ok := operations[name]
	return op, ok
}

// Operations returns every operation, sorted by name.
func Operations() []Operation {
	out := make([]Operation, 0, len(operations))
	for _, op := range operations {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OperationNames returns the sorted operation names.
func OperationNames() []string {
	ops := Operations()
	names := make([]string, len(ops))
	for i, op := range ops {
		names[i] = op.Name
	}
	return names
}

// snakeCase converts an AWS action name to an operation name:
// "AttachNetworkInterface" becomes "attach_network_interface".
func snakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
