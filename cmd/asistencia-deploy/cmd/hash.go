package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/asistencia/asistencia-deploy/config"
	"github.com/asistencia/asistencia-deploy/module/commitment"
)

var flagCheck string

var hashCmd = &cobra.Command{
	Use:   "hash-secret",
	Short: "Print the keccak256 commitment of the session secret",
	Long: `Prints the commitment the run stores on-chain for the configured secret,
which is resolved from --secret, ASISTENCIA_SECRET or the config file exactly
as for run. With --check, compares the secret against a commitment read from
the contract instead.`,
	Args: cobra.NoArgs,
	Run:  hashRun,
}

func init() {
	rootCmd.AddCommand(hashCmd)
	config.InitializeSecretFlags(hashCmd.Flags(), config.Default())
	hashCmd.Flags().StringVar(&flagCheck, "check", "", "0x-prefixed commitment to compare the secret with")
}

func hashRun(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	err = hashSecret(os.Stdout, cfg.Secret, flagCheck)
	if err != nil {
		log.Fatal().Err(err).Msg("could not check secret")
	}
}

var errSecretMismatch = errors.New("secret does not match commitment")

// hashSecret prints the commitment of secret, or, if check is set, whether
// secret matches it.
func hashSecret(out io.Writer, secret string, check string) error {
	if check == "" {
		_, err := fmt.Fprintln(out, commitment.Commit(secret).Hex())
		return err
	}

	expected, err := commitment.FromHex(check)
	if err != nil {
		return err
	}
	if !commitment.Matches(secret, expected) {
		return fmt.Errorf("%w %s", errSecretMismatch, expected.Hex())
	}
	_, err = fmt.Fprintln(out, "Secret matches commitment")
	return err
}
