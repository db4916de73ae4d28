package contracts

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog"

	"github.com/asistencia/asistencia-deploy/module"
)

// Writer submits operator-signed calls to a deployed contract.
type Writer struct {
	log      zerolog.Logger
	contract *bind.BoundContract
	opts     *bind.TransactOpts
}

var _ module.ContractWriter = (*Writer)(nil)

func NewWriter(log zerolog.Logger, contract *bind.BoundContract, opts *bind.TransactOpts) *Writer {
	return &Writer{
		log:      log.With().Str("module", "contract_writer").Logger(),
		contract: contract,
		opts:     opts,
	}
}

// Submit signs and sends method(args...). Gas estimation runs against the
// current state, so calls the contract would reject fail here and no
// transaction is created.
func (w *Writer) Submit(ctx context.Context, method string, args []any) (*types.Transaction, error) {
	tx, err := w.contract.Transact(transactOpts(ctx, w.opts), method, args...)
	if err != nil {
		return nil, fmt.Errorf("could not submit %s: %w", method, err)
	}
	w.log.Debug().
		Str("method", method).
		Str("tx", tx.Hash().Hex()).
		Uint64("nonce", tx.Nonce()).
		Msg("transaction submitted")
	return tx, nil
}

// ReceiptWaiter confirms transactions through a read-only backend.
type ReceiptWaiter struct {
	backend bind.DeployBackend
}

var _ module.ReceiptWaiter = (*ReceiptWaiter)(nil)

func NewReceiptWaiter(backend bind.DeployBackend) *ReceiptWaiter {
	return &ReceiptWaiter{backend: backend}
}

// WaitForReceipt polls until the receipt of tx is available. The wait is
// detached from ctx cancellation; only process termination ends it early.
func (r *ReceiptWaiter) WaitForReceipt(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	receipt, err := bind.WaitMined(context.WithoutCancel(ctx), r.backend, tx)
	if err != nil {
		return nil, fmt.Errorf("could not obtain receipt of %s: %w", tx.Hash().Hex(), err)
	}
	return receipt, nil
}
