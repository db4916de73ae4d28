package deployment

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// OperatorPlaceholder is replaced by the operator address when it appears as
// a constructor argument.
const OperatorPlaceholder = "{operator}"

// Descriptor names the contract to deploy and the ordered arguments handed to
// its constructor. The same descriptor is consumed by the deployer and by the
// source verifier; any difference between the two makes verification fail.
type Descriptor struct {
	ContractName    string
	ConstructorArgs []string
}

// NewDescriptor returns a descriptor with every operator placeholder in args
// replaced by the operator's hex address.
func NewDescriptor(contractName string, args []string, operator common.Address) Descriptor {
	resolved := make([]string, 0, len(args))
	for _, arg := range args {
		resolved = append(resolved, strings.ReplaceAll(arg, OperatorPlaceholder, operator.Hex()))
	}
	return Descriptor{
		ContractName:    contractName,
		ConstructorArgs: resolved,
	}
}

// Args returns a copy of the constructor arguments.
func (d Descriptor) Args() []string {
	args := make([]string, len(d.ConstructorArgs))
	copy(args, d.ConstructorArgs)
	return args
}

// Deployment is the result of a confirmed contract creation.
type Deployment struct {
	Descriptor  Descriptor
	Address     common.Address
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
}
