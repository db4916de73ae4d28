package module

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/asistencia/asistencia-deploy/model/deployment"
)

// ContractDeployer submits the contract creation transaction for a
// descriptor and blocks until the creation receipt is available.
type ContractDeployer interface {

	// Deploy deploys the contract described by descriptor. It returns the
	// confirmed deployment and a writer bound to the new contract address.
	// All errors are fatal to the run; no partial deployment is returned.
	Deploy(ctx context.Context, descriptor deployment.Descriptor) (*deployment.Deployment, ContractWriter, error)
}

// SourceVerifier registers the source of a deployed contract with a block
// explorer. Failures are advisory.
type SourceVerifier interface {

	// Verify associates the compiled source with the bytecode at address. The
	// descriptor must carry the exact constructor arguments used at
	// deployment.
	Verify(ctx context.Context, address common.Address, descriptor deployment.Descriptor) error
}

// ContractWriter submits state-changing calls to a deployed contract on
// behalf of the operator.
type ContractWriter interface {

	// Submit signs and sends a call to method with args. It returns once the
	// transaction is accepted by the node, not once it is mined. An error
	// means no transaction exists for the call.
	Submit(ctx context.Context, method string, args []any) (*types.Transaction, error)
}

// ReceiptWaiter is the read-only side of the chain used to confirm
// transactions.
type ReceiptWaiter interface {

	// WaitForReceipt blocks until the receipt of tx is available.
	WaitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error)
}
