// Package verification registers the source of the deployed contract with a
// block explorer. Every failure here is advisory.
package verification

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"

	"github.com/asistencia/asistencia-deploy/model/deployment"
	"github.com/asistencia/asistencia-deploy/module"
	"github.com/asistencia/asistencia-deploy/module/contracts"
)

// CodeReader reads deployed code. bind.DeployBackend implements it.
type CodeReader interface {
	CodeAt(ctx context.Context, contract common.Address, blockNumber *big.Int) ([]byte, error)
}

// Explorer is the explorer side of verification.
type Explorer interface {
	SubmitSource(ctx context.Context, s SourceSubmission) (string, error)
	CheckStatus(ctx context.Context, guid string) (Status, error)
}

// Config controls the waits around the single verification attempt.
type Config struct {
	// Delay is the fixed wait before submitting, giving the explorer time to
	// index the creation transaction.
	Delay time.Duration

	CodePollInterval time.Duration
	CodePollAttempts uint64

	StatusPollInterval time.Duration
	StatusPollAttempts uint64
}

func DefaultConfig() Config {
	return Config{
		Delay:              5 * time.Second,
		CodePollInterval:   time.Second,
		CodePollAttempts:   10,
		StatusPollInterval: 3 * time.Second,
		StatusPollAttempts: 10,
	}
}

// Verifier submits the artifact's source once per Verify call. It never
// resubmits; only the status of the single submission is polled.
type Verifier struct {
	log       zerolog.Logger
	cfg       Config
	reader    CodeReader
	explorer  Explorer
	artifact  *contracts.Artifact
	buildInfo *contracts.BuildInfo
}

var _ module.SourceVerifier = (*Verifier)(nil)

func NewVerifier(
	log zerolog.Logger,
	cfg Config,
	reader CodeReader,
	explorer Explorer,
	artifact *contracts.Artifact,
	buildInfo *contracts.BuildInfo,
) *Verifier {
	return &Verifier{
		log:       log.With().Str("module", "source_verifier").Logger(),
		cfg:       cfg,
		reader:    reader,
		explorer:  explorer,
		artifact:  artifact,
		buildInfo: buildInfo,
	}
}

// Verify submits the source of the contract at address. The constructor
// arguments are taken from descriptor and must be the ones used to deploy.
// All errors are VerificationErrors.
func (v *Verifier) Verify(ctx context.Context, address common.Address, descriptor deployment.Descriptor) error {
	log := v.log.With().Str("address", address.Hex()).Str("contract", v.artifact.FullyQualifiedName()).Logger()

	if descriptor.ContractName != v.artifact.ContractName {
		return NewVerificationErrorf("descriptor is for %s, artifact is %s", descriptor.ContractName, v.artifact.ContractName)
	}

	packed, err := contracts.PackConstructorArgs(v.artifact.ABI, descriptor.ConstructorArgs)
	if err != nil {
		return NewVerificationErrorf("could not encode constructor arguments: %w", err)
	}

	err = v.waitForCode(ctx, address)
	if err != nil {
		return NewVerificationErrorf("contract code not available at %s: %w", address.Hex(), err)
	}

	// the node has the code, the explorer may still be indexing it
	log.Debug().Dur("delay", v.cfg.Delay).Msg("waiting before verification")
	select {
	case <-ctx.Done():
		return NewVerificationErrorf("verification aborted: %w", ctx.Err())
	case <-time.After(v.cfg.Delay):
	}

	guid, err := v.explorer.SubmitSource(ctx, SourceSubmission{
		Address:           address.Hex(),
		ContractName:      v.artifact.FullyQualifiedName(),
		CompilerVersion:   "v" + v.buildInfo.SolcLongVersion,
		StandardJSONInput: string(v.buildInfo.Input),
		ConstructorArgs:   hex.EncodeToString(packed),
	})
	if err != nil {
		return NewVerificationErrorf("could not submit source: %w", err)
	}
	log.Info().Str("guid", guid).Msg("source submitted for verification")

	status, err := v.awaitStatus(ctx, guid)
	if err != nil {
		return NewVerificationErrorf("verification %s: %w", guid, err)
	}
	if status == StatusAlreadyVerified {
		return VerificationError{Err: ErrAlreadyVerified}
	}

	log.Info().Msg("contract verified")
	return nil
}

func (v *Verifier) waitForCode(ctx context.Context, address common.Address) error {
	constRetry := retry.NewConstant(v.cfg.CodePollInterval)
	return retry.Do(ctx, retry.WithMaxRetries(v.cfg.CodePollAttempts, constRetry), func(ctx context.Context) error {
		code, err := v.reader.CodeAt(ctx, address, nil)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("could not read code: %w", err))
		}
		if len(code) == 0 {
			return retry.RetryableError(errors.New("no code at address"))
		}
		return nil
	})
}

var errPending = errors.New("verification still pending")

func (v *Verifier) awaitStatus(ctx context.Context, guid string) (Status, error) {
	constRetry := retry.NewConstant(v.cfg.StatusPollInterval)

	var status Status
	err := retry.Do(ctx, retry.WithMaxRetries(v.cfg.StatusPollAttempts, constRetry), func(ctx context.Context) error {
		var err error
		status, err = v.explorer.CheckStatus(ctx, guid)
		if err != nil {
			return err
		}
		if status == StatusPending {
			return retry.RetryableError(errPending)
		}
		return nil
	})
	return status, err
}
