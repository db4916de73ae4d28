package deployment

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxState is the lifecycle state of a submitted operation.
type TxState int

const (
	TxStateUnknown TxState = iota
	TxStateSubmitted
	TxStateAwaitingConfirmation
	TxStateConfirmedSuccess
	TxStateConfirmedFailure
)

func (s TxState) String() string {
	switch s {
	case TxStateSubmitted:
		return "submitted"
	case TxStateAwaitingConfirmation:
		return "awaiting_confirmation"
	case TxStateConfirmedSuccess:
		return "confirmed_success"
	case TxStateConfirmedFailure:
		return "confirmed_failure"
	default:
		return "unknown"
	}
}

// Terminal returns true once a receipt with a definitive status was recorded.
func (s TxState) Terminal() bool {
	return s == TxStateConfirmedSuccess || s == TxStateConfirmedFailure
}

// Outcome tracks a single operation from submission to its receipt.
// Transitions are one way:
//
//	Submitted -> AwaitingConfirmation -> ConfirmedSuccess | ConfirmedFailure
type Outcome struct {
	Operation   Operation
	TxHash      common.Hash
	State       TxState
	BlockNumber uint64
	GasUsed     uint64
}

// NewOutcome records the submission of op under the given transaction hash.
func NewOutcome(op Operation, txHash common.Hash) *Outcome {
	return &Outcome{
		Operation: op,
		TxHash:    txHash,
		State:     TxStateSubmitted,
	}
}

// AwaitConfirmation moves a submitted outcome into the waiting state.
func (o *Outcome) AwaitConfirmation() error {
	if o.State != TxStateSubmitted {
		return fmt.Errorf("cannot await confirmation of %s in state %s", o.TxHash.Hex(), o.State)
	}
	o.State = TxStateAwaitingConfirmation
	return nil
}

// Confirm records the receipt and moves the outcome to its terminal state.
func (o *Outcome) Confirm(receipt *types.Receipt) error {
	if o.State != TxStateAwaitingConfirmation {
		return fmt.Errorf("cannot confirm %s in state %s", o.TxHash.Hex(), o.State)
	}
	if receipt == nil {
		return fmt.Errorf("cannot confirm %s with nil receipt", o.TxHash.Hex())
	}
	if receipt.TxHash != (common.Hash{}) && receipt.TxHash != o.TxHash {
		return fmt.Errorf("receipt for %s does not match transaction %s", receipt.TxHash.Hex(), o.TxHash.Hex())
	}
	if receipt.BlockNumber != nil {
		o.BlockNumber = receipt.BlockNumber.Uint64()
	}
	o.GasUsed = receipt.GasUsed
	if receipt.Status == types.ReceiptStatusSuccessful {
		o.State = TxStateConfirmedSuccess
	} else {
		o.State = TxStateConfirmedFailure
	}
	return nil
}

// Succeeded returns true if the receipt reported success.
func (o *Outcome) Succeeded() bool {
	return o.State == TxStateConfirmedSuccess
}

// StatusText is the console rendering of the receipt status.
func (o *Outcome) StatusText() string {
	if o.Succeeded() {
		return "OK"
	}
	return "Failed"
}

func (o *Outcome) String() string {
	return fmt.Sprintf("%s: %s", o.Operation.Label, o.StatusText())
}
