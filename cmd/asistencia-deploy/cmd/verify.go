package cmd

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"

	"github.com/asistencia/asistencia-deploy/config"
	"github.com/asistencia/asistencia-deploy/module/verification"
)

var flagAddress string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Submit the source of an already deployed contract to the block explorer",
	Run:   verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	defaults := config.Default()
	config.InitializeChainFlags(verifyCmd.Flags(), defaults)
	config.InitializeContractFlags(verifyCmd.Flags(), defaults)
	config.InitializeVerificationFlags(verifyCmd.Flags(), defaults)
	verifyCmd.Flags().StringVar(&flagAddress, "address", "", "address of the deployed contract")
	_ = verifyCmd.MarkFlagRequired("address")
}

// verifyRun verifies the contract at --address, built with the configured
// constructor arguments. Unlike during a run, a verification failure is an
// error here.
func verifyRun(cmd *cobra.Command, _ []string) {
	if !common.IsHexAddress(flagAddress) {
		log.Fatal().Str("address", flagAddress).Msg("invalid contract address")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}
	if !cfg.Verification.Enabled() {
		log.Fatal().Msg("no explorer API key configured")
	}

	provider, artifact, err := connect(cmd.Context(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect")
	}
	defer provider.Close()

	verifier := newVerifier(cfg.Verification, provider, artifact)
	if verifier == nil {
		log.Fatal().Msg("source verification is not available")
	}

	address := common.HexToAddress(flagAddress)
	err = verifier.Verify(cmd.Context(), address, cfg.Descriptor(provider.Operator()))
	switch {
	case err == nil:
		fmt.Println("Contract verified")
	case verification.IsAlreadyVerified(err):
		fmt.Println("Contract already verified")
	default:
		provider.Close()
		log.Fatal().Err(err).Str("address", address.Hex()).Msg("verification failed")
	}
}
