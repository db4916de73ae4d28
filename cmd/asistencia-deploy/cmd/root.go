package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/asistencia/asistencia-deploy/config"
)

var (
	flagConfig   string
	flagLogLevel string
	log          zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "asistencia-deploy",
	Short: "Deploy the Asistencia contract and bootstrap its first session",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", flagLogLevel, err)
		}
		log = log.Level(level)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "",
		"config file (yaml, json or toml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info",
		"log level (trace, debug, info, warn, error)")

	// stdout carries the run report, logs go to stderr
	log = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
}

// loadConfig reads the config of cmd from its flags, the environment and the
// config file, in that order of precedence.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v, err := config.NewViper(cmd.Flags(), config.Default())
	if err != nil {
		return config.Config{}, err
	}
	if flagConfig != "" {
		v.SetConfigFile(flagConfig)
		err = v.ReadInConfig()
		if err != nil {
			return config.Config{}, fmt.Errorf("could not read config file %s: %w", flagConfig, err)
		}
	}
	return config.Load(v)
}
