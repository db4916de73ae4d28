// Package sequencer issues contract calls one at a time, confirming each
// before the next one is submitted.
package sequencer

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/asistencia/asistencia-deploy/model/deployment"
	"github.com/asistencia/asistencia-deploy/module"
)

// ConfirmationConsumer is notified after each operation reaches a terminal
// state.
type ConfirmationConsumer func(*deployment.Outcome)

// Sequencer submits operations strictly in order from a single signer. Each
// operation is confirmed before the next is submitted, which keeps the
// signer's nonces in order. Operations are never retried and confirmed
// failures never stop the sequence.
type Sequencer struct {
	log       zerolog.Logger
	writer    module.ContractWriter
	receipts  module.ReceiptWaiter
	metrics   module.DeploymentMetrics
	consumers []ConfirmationConsumer
}

type Option func(*Sequencer)

// WithConfirmationConsumer registers a consumer for confirmed outcomes.
func WithConfirmationConsumer(consumer ConfirmationConsumer) Option {
	return func(s *Sequencer) {
		s.consumers = append(s.consumers, consumer)
	}
}

func New(
	log zerolog.Logger,
	writer module.ContractWriter,
	receipts module.ReceiptWaiter,
	metrics module.DeploymentMetrics,
	opts ...Option,
) *Sequencer {
	s := &Sequencer{
		log:      log.With().Str("module", "sequencer").Logger(),
		writer:   writer,
		receipts: receipts,
		metrics:  metrics,
	}
	for _, apply := range opts {
		apply(s)
	}
	return s
}

// Execute runs ops in order and returns the outcome of every confirmed
// operation. A SubmissionError, or a failure to obtain a receipt, stops the
// sequence; the outcomes confirmed so far are returned with the error.
func (s *Sequencer) Execute(ctx context.Context, ops []deployment.Operation) ([]*deployment.Outcome, error) {
	outcomes := make([]*deployment.Outcome, 0, len(ops))
	for i, op := range ops {
		outcome, err := s.execute(ctx, op)
		if err != nil {
			return outcomes, fmt.Errorf("operation %d (%s) failed: %w", i+1, op.Label, err)
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes, nil
}

func (s *Sequencer) execute(ctx context.Context, op deployment.Operation) (*deployment.Outcome, error) {
	log := s.log.With().Str("operation", op.Label).Str("method", op.Method).Logger()

	tx, err := s.writer.Submit(ctx, op.Method, op.Args)
	if err != nil {
		return nil, NewSubmissionError(op.Method, err)
	}
	outcome := deployment.NewOutcome(op, tx.Hash())
	log = log.With().Str("tx", tx.Hash().Hex()).Logger()
	log.Info().Msg("transaction submitted")

	err = outcome.AwaitConfirmation()
	if err != nil {
		return nil, err
	}

	// no timeout: the receipt is a hard dependency of the next operation
	receipt, err := s.receipts.WaitForReceipt(context.WithoutCancel(ctx), tx)
	if err != nil {
		return nil, fmt.Errorf("could not confirm %s: %w", tx.Hash().Hex(), err)
	}
	err = outcome.Confirm(receipt)
	if err != nil {
		return nil, err
	}

	s.metrics.TransactionConfirmed(op.Method, outcome.Succeeded(), outcome.GasUsed)
	event := log.Info()
	if !outcome.Succeeded() {
		event = log.Warn()
	}
	event.
		Uint64("block", outcome.BlockNumber).
		Uint64("gas_used", outcome.GasUsed).
		Str("state", outcome.State.String()).
		Msg("transaction confirmed")

	for _, consume := range s.consumers {
		consume(outcome)
	}
	return outcome, nil
}
