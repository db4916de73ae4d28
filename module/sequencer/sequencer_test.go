package sequencer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/asistencia/asistencia-deploy/model/deployment"
	"github.com/asistencia/asistencia-deploy/module/commitment"
	"github.com/asistencia/asistencia-deploy/module/metrics"
	mockmodule "github.com/asistencia/asistencia-deploy/module/mock"
	"github.com/asistencia/asistencia-deploy/utils/unittest"
)

type SequencerSuite struct {
	suite.Suite

	writer   *mockmodule.ContractWriter
	receipts *mockmodule.ReceiptWaiter
	ops      []deployment.Operation
	txs      []*types.Transaction

	// events records submissions and receipt waits in the order they happen
	events    []string
	confirmed []*deployment.Outcome

	sequencer *Sequencer
}

func TestSequencer(t *testing.T) {
	suite.Run(t, new(SequencerSuite))
}

func (s *SequencerSuite) SetupTest() {
	s.writer = mockmodule.NewContractWriter(s.T())
	s.receipts = mockmodule.NewReceiptWaiter(s.T())
	s.events = nil
	s.confirmed = nil

	s.ops = []deployment.Operation{
		deployment.RegisterParticipant("registrarAlumno", 1, deployment.Participant{Address: unittest.AddressFixture()}),
		deployment.RegisterParticipant("registrarAlumno", 2, deployment.Participant{Address: unittest.AddressFixture()}),
		deployment.CreateSession("crearSesion", deployment.Session{SecretCommitment: commitment.Commit("solidity"), Duration: 3}),
	}
	s.txs = []*types.Transaction{
		unittest.TransactionFixture(1),
		unittest.TransactionFixture(2),
		unittest.TransactionFixture(3),
	}

	s.sequencer = New(unittest.Logger(), s.writer, s.receipts, metrics.NewNoopCollector(),
		WithConfirmationConsumer(func(o *deployment.Outcome) {
			s.confirmed = append(s.confirmed, o)
		}),
	)
}

// expectSubmit expects the i-th operation to be submitted and return its tx.
func (s *SequencerSuite) expectSubmit(i int) {
	op := s.ops[i]
	s.writer.On("Submit", mock.Anything, op.Method, op.Args).
		Run(func(mock.Arguments) { s.events = append(s.events, fmt.Sprintf("submit %d", i)) }).
		Return(s.txs[i], nil).
		Once()
}

func (s *SequencerSuite) expectReceipt(i int, receipt *types.Receipt) {
	s.receipts.On("WaitForReceipt", mock.Anything, s.txs[i]).
		Run(func(mock.Arguments) { s.events = append(s.events, fmt.Sprintf("wait %d", i)) }).
		Return(receipt, nil).
		Once()
}

// TestAllSucceed checks every operation is confirmed before the next one is
// submitted and that all outcomes report OK.
func (s *SequencerSuite) TestAllSucceed() {
	for i := range s.ops {
		s.expectSubmit(i)
		s.expectReceipt(i, unittest.SuccessReceiptFixture(s.txs[i]))
	}

	outcomes, err := s.sequencer.Execute(context.Background(), s.ops)
	s.Require().NoError(err)
	s.Require().Len(outcomes, 3)

	s.Assert().Equal([]string{"submit 0", "wait 0", "submit 1", "wait 1", "submit 2", "wait 2"}, s.events)
	for i, o := range outcomes {
		s.Assert().Equal(s.txs[i].Hash(), o.TxHash)
		s.Assert().Equal(deployment.TxStateConfirmedSuccess, o.State)
		s.Assert().Equal("OK", o.StatusText())
	}
	s.Assert().Equal(outcomes, s.confirmed)
}

// TestFailedRegistrationDoesNotStopSequence checks a failed receipt for the
// first participant neither blocks the second registration nor the session.
func (s *SequencerSuite) TestFailedRegistrationDoesNotStopSequence() {
	s.expectSubmit(0)
	s.expectReceipt(0, unittest.FailedReceiptFixture(s.txs[0]))
	s.expectSubmit(1)
	s.expectReceipt(1, unittest.SuccessReceiptFixture(s.txs[1]))
	s.expectSubmit(2)
	s.expectReceipt(2, unittest.SuccessReceiptFixture(s.txs[2]))

	outcomes, err := s.sequencer.Execute(context.Background(), s.ops)
	s.Require().NoError(err)
	s.Require().Len(outcomes, 3)

	s.Assert().Equal("Participant 1 registered: Failed", outcomes[0].String())
	s.Assert().Equal("Participant 2 registered: OK", outcomes[1].String())
	s.Assert().Equal("Session created: OK", outcomes[2].String())
}

// TestFailedSessionKeepsRegistrations checks a failed session creation is
// reported without touching the earlier outcomes.
func (s *SequencerSuite) TestFailedSessionKeepsRegistrations() {
	s.expectSubmit(0)
	s.expectReceipt(0, unittest.SuccessReceiptFixture(s.txs[0]))
	s.expectSubmit(1)
	s.expectReceipt(1, unittest.SuccessReceiptFixture(s.txs[1]))
	s.expectSubmit(2)
	s.expectReceipt(2, unittest.FailedReceiptFixture(s.txs[2]))

	outcomes, err := s.sequencer.Execute(context.Background(), s.ops)
	s.Require().NoError(err)
	s.Assert().True(outcomes[0].Succeeded())
	s.Assert().True(outcomes[1].Succeeded())
	s.Assert().False(outcomes[2].Succeeded())
}

// TestSubmissionErrorAborts checks a call rejected before submission stops
// the sequence and is reported as a SubmissionError.
func (s *SequencerSuite) TestSubmissionErrorAborts() {
	s.expectSubmit(0)
	s.expectReceipt(0, unittest.SuccessReceiptFixture(s.txs[0]))
	rejected := errors.New("execution reverted: only profesor")
	s.writer.On("Submit", mock.Anything, s.ops[1].Method, s.ops[1].Args).Return(nil, rejected).Once()

	outcomes, err := s.sequencer.Execute(context.Background(), s.ops)
	s.Require().Error(err)
	s.Assert().True(IsSubmissionError(err))
	s.Assert().ErrorIs(err, rejected)
	s.Assert().Len(outcomes, 1)

	// the session was never submitted
	s.writer.AssertNotCalled(s.T(), "Submit", mock.Anything, s.ops[2].Method, s.ops[2].Args)
}

// TestReceiptWaitIgnoresCancellation checks the receipt wait does not see
// the caller's cancellation.
func (s *SequencerSuite) TestReceiptWaitIgnoresCancellation() {
	ctx, cancel := context.WithCancel(context.Background())

	s.writer.On("Submit", mock.Anything, s.ops[0].Method, s.ops[0].Args).Return(s.txs[0], nil).Once()
	s.receipts.On("WaitForReceipt", mock.Anything, s.txs[0]).
		Run(func(args mock.Arguments) {
			cancel()
			waitCtx := args.Get(0).(context.Context)
			s.Assert().NoError(waitCtx.Err())
		}).
		Return(unittest.SuccessReceiptFixture(s.txs[0]), nil).
		Once()

	outcomes, err := s.sequencer.Execute(ctx, s.ops[:1])
	s.Require().NoError(err)
	s.Assert().True(outcomes[0].Succeeded())
}

func TestSubmissionError(t *testing.T) {
	inner := errors.New("unauthorized")
	err := fmt.Errorf("wrapped: %w", NewSubmissionError("crearSesion", inner))
	require.True(t, IsSubmissionError(err))
	assert.ErrorIs(t, err, inner)
	assert.False(t, IsSubmissionError(inner))
}
