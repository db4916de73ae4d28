// Package contracts deploys a compiled hardhat artifact and submits calls to
// the deployed instance using go-ethereum's bind package.
package contracts

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/asistencia/asistencia-deploy/model/deployment"
	"github.com/asistencia/asistencia-deploy/module"
	"github.com/asistencia/asistencia-deploy/module/chain"
)

// Deployer deploys one artifact with the operator identity.
type Deployer struct {
	log      zerolog.Logger
	backend  chain.Backend
	opts     *bind.TransactOpts
	artifact *Artifact
}

var _ module.ContractDeployer = (*Deployer)(nil)

// NewDeployer returns a deployer for artifact. opts carries the operator's
// signer and is copied for every transaction.
func NewDeployer(log zerolog.Logger, backend chain.Backend, opts *bind.TransactOpts, artifact *Artifact) *Deployer {
	return &Deployer{
		log:      log.With().Str("module", "contract_deployer").Logger(),
		backend:  backend,
		opts:     opts,
		artifact: artifact,
	}
}

// Deploy submits the creation transaction, waits for its receipt and checks
// that code exists at the new address.
func (d *Deployer) Deploy(ctx context.Context, descriptor deployment.Descriptor) (*deployment.Deployment, module.ContractWriter, error) {
	name := descriptor.ContractName
	if name != d.artifact.ContractName {
		return nil, nil, NewDeploymentErrorf(name, "artifact is for contract %s", d.artifact.ContractName)
	}

	args, err := ConvertArgs(d.artifact.ABI.Constructor.Inputs, descriptor.ConstructorArgs)
	if err != nil {
		return nil, nil, NewDeploymentErrorf(name, "invalid constructor arguments: %w", err)
	}

	// creation gas is always estimated, opts.GasLimit only caps calls
	opts := transactOpts(ctx, d.opts)
	opts.GasLimit = 0
	address, tx, bound, err := bind.DeployContract(opts, d.artifact.ABI, d.artifact.Bytecode, d.backend, args...)
	if err != nil {
		return nil, nil, NewDeploymentErrorf(name, "could not submit creation transaction: %w", err)
	}

	log := d.log.With().
		Str("contract", name).
		Str("address", address.Hex()).
		Str("tx", tx.Hash().Hex()).
		Logger()
	log.Info().Msg("creation transaction submitted, waiting for receipt")

	receipt, err := bind.WaitMined(context.WithoutCancel(ctx), d.backend, tx)
	if err != nil {
		return nil, nil, NewDeploymentErrorf(name, "could not obtain creation receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, nil, NewDeploymentErrorf(name, "creation transaction %s reverted", tx.Hash().Hex())
	}

	code, err := d.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return nil, nil, NewDeploymentErrorf(name, "could not read code at %s: %w", address.Hex(), err)
	}
	if len(code) == 0 {
		return nil, nil, NewDeploymentErrorf(name, "no code at %s after deployment", address.Hex())
	}

	log.Info().
		Uint64("block", receipt.BlockNumber.Uint64()).
		Uint64("gas_used", receipt.GasUsed).
		Msg("contract deployed")

	deployed := &deployment.Deployment{
		Descriptor:  descriptor,
		Address:     address,
		TxHash:      tx.Hash(),
		BlockNumber: receipt.BlockNumber.Uint64(),
		GasUsed:     receipt.GasUsed,
	}
	return deployed, NewWriter(d.log, bound, d.opts), nil
}

// transactOpts copies opts and binds the copy to ctx.
func transactOpts(ctx context.Context, opts *bind.TransactOpts) *bind.TransactOpts {
	cp := *opts
	cp.Context = ctx
	return &cp
}
