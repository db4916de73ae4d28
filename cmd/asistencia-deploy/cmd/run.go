package cmd

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/asistencia/asistencia-deploy/config"
	"github.com/asistencia/asistencia-deploy/module"
	"github.com/asistencia/asistencia-deploy/module/bootstrap"
	"github.com/asistencia/asistencia-deploy/module/chain"
	"github.com/asistencia/asistencia-deploy/module/contracts"
	"github.com/asistencia/asistencia-deploy/module/metrics"
	"github.com/asistencia/asistencia-deploy/module/verification"
	"github.com/asistencia/asistencia-deploy/utils/io"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Deploy the contract, verify it, register the participants and create the first session",
	Long: `Deploys the contract from its hardhat artifact, submits its source to the
block explorer if an API key is configured, registers every participant and
creates the initial session from the keccak256 commitment of the secret.
Each transaction is confirmed before the next one is sent.`,
	Run: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	config.InitializeRunFlags(runCmd.Flags(), config.Default())
}

func runRun(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	err = run(cmd.Context(), cfg, newEnvironment)
	if err != nil {
		log.Fatal().Err(err).Msg("deployment failed")
	}
}

// environment is what a run needs once the run lock is held.
type environment struct {
	bootstrapper *bootstrap.Bootstrapper
	plan         bootstrap.Plan
	chainID      *big.Int
	close        func()
}

// environmentBuilder builds the collaborators of a run reporting to metrics.
type environmentBuilder func(ctx context.Context, cfg config.Config, metrics module.DeploymentMetrics) (*environment, error)

func run(ctx context.Context, cfg config.Config, build environmentBuilder) error {
	lock := io.NewFileLock(cfg.LockDir)
	err := lock.Lock()
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			log.Warn().Err(err).Msg("could not release run lock")
		}
	}()

	registry := prometheus.NewRegistry()
	env, err := build(ctx, cfg, metrics.NewDeploymentCollector(registry))
	if err != nil {
		return err
	}
	defer env.close()

	report, runErr := env.bootstrapper.Run(ctx, env.plan)

	if cfg.Record != "" && report.Deployment != nil {
		err = io.WriteRecord(cfg.Record, report.Record(env.chainID))
		if err != nil {
			log.Error().Err(err).Str("path", cfg.Record).Msg("could not write deployment record")
		} else {
			log.Info().Str("path", cfg.Record).Msg("deployment record written")
		}
	}

	if cfg.PushGateway != "" {
		err = metrics.Push(context.WithoutCancel(ctx), cfg.PushGateway, registry)
		if err != nil {
			log.Warn().Err(err).Msg("could not push run metrics")
		}
	}

	if runErr != nil {
		return runErr
	}
	if cfg.Strict {
		err = report.FailedOperations()
		if err != nil {
			return fmt.Errorf("some operations failed: %w", err)
		}
	}
	return nil
}

// newEnvironment connects to the node with the operator key and wires the
// bootstrapper to it.
func newEnvironment(ctx context.Context, cfg config.Config, collector module.DeploymentMetrics) (*environment, error) {
	provider, artifact, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts, err := provider.TransactOpts(cfg.GasLimit)
	if err != nil {
		provider.Close()
		return nil, err
	}
	plan, err := cfg.Plan(provider.Operator())
	if err != nil {
		provider.Close()
		return nil, err
	}

	bootstrapper := bootstrap.New(
		log,
		os.Stdout,
		contracts.NewDeployer(log, provider.Backend(), opts, artifact),
		newVerifier(cfg.Verification, provider, artifact),
		contracts.NewReceiptWaiter(provider.Backend()),
		collector,
	)
	return &environment{
		bootstrapper: bootstrapper,
		plan:         plan,
		chainID:      provider.ChainID(),
		close:        provider.Close,
	}, nil
}

// connect derives the operator key, dials the node and loads the artifact.
func connect(ctx context.Context, cfg config.Config) (*chain.Provider, *contracts.Artifact, error) {
	artifact, err := contracts.LoadArtifact(cfg.Artifacts, cfg.Contract)
	if err != nil {
		return nil, nil, err
	}

	key, err := chain.OperatorKey(cfg.KeyConfig())
	if err != nil {
		return nil, nil, err
	}

	provider, err := chain.Connect(ctx, log, cfg.DialConfig(), key)
	if err != nil {
		return nil, nil, err
	}
	return provider, artifact, nil
}

// newVerifier returns nil if verification is disabled or cannot be set up.
func newVerifier(cfg config.VerificationConfig, provider *chain.Provider, artifact *contracts.Artifact) module.SourceVerifier {
	if !cfg.Enabled() {
		return nil
	}

	buildInfo, err := artifact.ReadBuildInfo()
	if err != nil {
		log.Warn().Err(err).Msg("no build info for the artifact, source verification disabled")
		return nil
	}

	explorer := verification.NewEtherscanClient(cfg.APIURL, cfg.APIKey, provider.ChainID(), cfg.Timeout)
	return verification.NewVerifier(log, cfg.VerifierConfig(), provider.Backend(), explorer, artifact, buildInfo)
}
