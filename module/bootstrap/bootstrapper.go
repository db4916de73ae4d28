// Package bootstrap runs the one-shot deployment of the attendance contract:
// deploy, verify, register participants, create the first session.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/asistencia/asistencia-deploy/model/deployment"
	"github.com/asistencia/asistencia-deploy/module"
	"github.com/asistencia/asistencia-deploy/module/commitment"
	"github.com/asistencia/asistencia-deploy/module/metrics"
	"github.com/asistencia/asistencia-deploy/module/sequencer"
	"github.com/asistencia/asistencia-deploy/module/verification"
)

// Plan is everything a run needs to know about what to create on-chain.
type Plan struct {
	Descriptor      deployment.Descriptor
	Participants    []deployment.Participant
	Secret          string
	SessionDuration uint64
	RegisterMethod  string
	SessionMethod   string
}

// Operations returns the contract calls of the plan in submission order:
// one registration per participant, then the session.
func (p Plan) Operations() []deployment.Operation {
	ops := make([]deployment.Operation, 0, len(p.Participants)+1)
	for i, participant := range p.Participants {
		ops = append(ops, deployment.RegisterParticipant(p.RegisterMethod, i+1, participant))
	}
	ops = append(ops, deployment.CreateSession(p.SessionMethod, deployment.Session{
		SecretCommitment: commitment.Commit(p.Secret),
		Duration:         p.SessionDuration,
	}))
	return ops
}

// Bootstrapper drives the run. Progress meant for the operator is written to
// console, everything else goes to the logger.
type Bootstrapper struct {
	log      zerolog.Logger
	console  io.Writer
	deployer module.ContractDeployer
	verifier module.SourceVerifier
	receipts module.ReceiptWaiter
	metrics  module.DeploymentMetrics
}

// New returns a bootstrapper. verifier may be nil, in which case
// verification is skipped.
func New(
	log zerolog.Logger,
	console io.Writer,
	deployer module.ContractDeployer,
	verifier module.SourceVerifier,
	receipts module.ReceiptWaiter,
	metrics module.DeploymentMetrics,
) *Bootstrapper {
	return &Bootstrapper{
		log:      log.With().Str("module", "bootstrapper").Logger(),
		console:  console,
		deployer: deployer,
		verifier: verifier,
		receipts: receipts,
		metrics:  metrics,
	}
}

// Run executes plan. The returned report is never nil and holds whatever was
// achieved before an error. Errors are DeploymentErrors from the deployer or
// errors from the sequencer; verification never fails the run and confirmed
// failures are only reported.
func (b *Bootstrapper) Run(ctx context.Context, plan Plan) (*Report, error) {
	start := time.Now()
	report := &Report{}
	defer func() {
		report.Duration = time.Since(start)
		b.metrics.RunFinished(report.Duration)
	}()

	deployed, writer, err := b.deployer.Deploy(ctx, plan.Descriptor)
	if err != nil {
		return report, err
	}
	report.Deployment = deployed
	b.metrics.ContractDeployed(deployed.GasUsed)
	b.printf("Contract deployed at %s\n", deployed.Address.Hex())

	report.Verification, report.VerificationErr = b.verify(ctx, deployed)

	ops := plan.Operations()
	session := ops[len(ops)-1]
	b.log.Info().
		Int("participants", len(plan.Participants)).
		Hex("commitment", sessionCommitment(session)).
		Uint64("duration", plan.SessionDuration).
		Msg("bootstrapping contract state")

	seq := sequencer.New(b.log, writer, b.receipts, b.metrics,
		sequencer.WithConfirmationConsumer(func(outcome *deployment.Outcome) {
			b.printf("%s\n", outcome)
		}),
	)
	report.Outcomes, err = seq.Execute(ctx, ops)
	if err != nil {
		return report, err
	}
	return report, nil
}

func (b *Bootstrapper) verify(ctx context.Context, deployed *deployment.Deployment) (string, error) {
	if b.verifier == nil {
		b.log.Info().Msg("no explorer configured, skipping source verification")
		b.printf("Contract verification skipped\n")
		b.metrics.VerificationFinished(metrics.VerificationSkipped)
		return metrics.VerificationSkipped, nil
	}

	err := b.verifier.Verify(ctx, deployed.Address, deployed.Descriptor)
	switch {
	case err == nil:
		b.printf("Contract verified\n")
		b.metrics.VerificationFinished(metrics.VerificationVerified)
		return metrics.VerificationVerified, nil
	case verification.IsAlreadyVerified(err):
		b.log.Info().Err(err).Msg("contract already verified")
		b.printf("Error verifying contract: %v\n", err)
		b.metrics.VerificationFinished(metrics.VerificationAlreadyVerified)
		return metrics.VerificationAlreadyVerified, err
	default:
		b.log.Warn().Err(err).Msg("source verification failed, continuing")
		b.printf("Error verifying contract: %v\n", err)
		b.metrics.VerificationFinished(metrics.VerificationFailed)
		return metrics.VerificationFailed, err
	}
}

func (b *Bootstrapper) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(b.console, format, args...)
}

func sessionCommitment(op deployment.Operation) []byte {
	c, ok := op.Args[0].([32]byte)
	if !ok {
		return nil
	}
	return c[:]
}
