// Package config holds the settings of a deployment run. Values come from an
// optional config file, ASISTENCIA_ environment variables and command line
// flags, in increasing order of precedence.
package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/asistencia/asistencia-deploy/model/deployment"
	"github.com/asistencia/asistencia-deploy/module/bootstrap"
	"github.com/asistencia/asistencia-deploy/module/chain"
	"github.com/asistencia/asistencia-deploy/module/verification"
)

// EnvPrefix is the prefix of every environment variable read into the config.
const EnvPrefix = "ASISTENCIA"

type Config struct {
	RPCURL            string        `mapstructure:"rpc-url" validate:"required,url"`
	DialRetryInterval time.Duration `mapstructure:"dial-retry-interval" validate:"gt=0"`
	DialMaxRetries    uint64        `mapstructure:"dial-max-retries"`

	// PrivateKey takes precedence over Mnemonic when set.
	PrivateKey   string `mapstructure:"private-key" validate:"omitempty,hexadecimal"`
	Mnemonic     string `mapstructure:"mnemonic" validate:"required_without=PrivateKey"`
	AccountIndex uint32 `mapstructure:"account-index"`
	// GasLimit of every contract call; the creation is always estimated.
	// Zero estimates the limit, which rejects reverting calls before they
	// are submitted.
	GasLimit uint64 `mapstructure:"gas-limit"`

	Artifacts       string   `mapstructure:"artifacts" validate:"required"`
	Contract        string   `mapstructure:"contract" validate:"required"`
	ConstructorArgs []string `mapstructure:"constructor-args"`

	Participants    []string `mapstructure:"participants" validate:"min=1,dive,eth_addr"`
	Secret          string   `mapstructure:"secret" validate:"required"`
	SessionDuration uint64   `mapstructure:"session-duration"`
	RegisterMethod  string   `mapstructure:"register-method" validate:"required"`
	SessionMethod   string   `mapstructure:"session-method" validate:"required"`

	Verification VerificationConfig `mapstructure:"verification"`

	Record      string `mapstructure:"record"`
	PushGateway string `mapstructure:"push-gateway" validate:"omitempty,url"`
	Strict      bool   `mapstructure:"strict"`
	LockDir     string `mapstructure:"lock-dir" validate:"required"`
}

type VerificationConfig struct {
	APIURL  string        `mapstructure:"api-url" validate:"omitempty,url"`
	APIKey  string        `mapstructure:"api-key"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`

	Delay              time.Duration `mapstructure:"delay" validate:"gte=0"`
	CodePollInterval   time.Duration `mapstructure:"code-poll-interval" validate:"gt=0"`
	CodePollAttempts   uint64        `mapstructure:"code-poll-attempts"`
	StatusPollInterval time.Duration `mapstructure:"status-poll-interval" validate:"gt=0"`
	StatusPollAttempts uint64        `mapstructure:"status-poll-attempts"`
}

// Default reproduces a local hardhat deployment: the node on localhost, the
// first mnemonic account as operator and the next two as participants.
func Default() Config {
	verifier := verification.DefaultConfig()
	return Config{
		RPCURL:            "http://127.0.0.1:8545",
		DialRetryInterval: time.Second,
		DialMaxRetries:    10,
		Mnemonic:          chain.HardhatMnemonic,
		AccountIndex:      0,
		Artifacts:         "artifacts",
		Contract:          "Asistencia",
		ConstructorArgs:   []string{"AsistenciaToken", "AST", deployment.OperatorPlaceholder},
		Participants: []string{
			"0x70997970C51812dc3A010C7d01b50e0d17dc79C8",
			"0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC",
		},
		Secret:          "solidity",
		SessionDuration: 3,
		RegisterMethod:  "registrarAlumno",
		SessionMethod:   "crearSesion",
		Verification: VerificationConfig{
			APIURL:             "https://api.etherscan.io/v2/api",
			Timeout:            30 * time.Second,
			Delay:              verifier.Delay,
			CodePollInterval:   verifier.CodePollInterval,
			CodePollAttempts:   verifier.CodePollAttempts,
			StatusPollInterval: verifier.StatusPollInterval,
			StatusPollAttempts: verifier.StatusPollAttempts,
		},
		LockDir: ".",
	}
}

// Load decodes and validates the config held by v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("could not decode config: %w", err)
	}
	err = cfg.Validate()
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	err := validator.New().Struct(c)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c Config) KeyConfig() chain.KeyConfig {
	return chain.KeyConfig{
		PrivateKey:   c.PrivateKey,
		Mnemonic:     c.Mnemonic,
		AccountIndex: c.AccountIndex,
	}
}

func (c Config) DialConfig() chain.DialConfig {
	return chain.DialConfig{
		URL:           c.RPCURL,
		RetryInterval: c.DialRetryInterval,
		MaxRetries:    c.DialMaxRetries,
	}
}

// Descriptor returns the contract descriptor with operator in place of the
// operator placeholder.
func (c Config) Descriptor(operator common.Address) deployment.Descriptor {
	return deployment.NewDescriptor(c.Contract, c.ConstructorArgs, operator)
}

// Plan returns everything the bootstrapper creates on-chain.
func (c Config) Plan(operator common.Address) (bootstrap.Plan, error) {
	participants, err := deployment.ParticipantsFromHex(c.Participants)
	if err != nil {
		return bootstrap.Plan{}, err
	}
	return bootstrap.Plan{
		Descriptor:      c.Descriptor(operator),
		Participants:    participants,
		Secret:          c.Secret,
		SessionDuration: c.SessionDuration,
		RegisterMethod:  c.RegisterMethod,
		SessionMethod:   c.SessionMethod,
	}, nil
}

// Enabled returns true if an explorer is configured. Without an API key the
// explorer is not contacted at all.
func (c VerificationConfig) Enabled() bool {
	return c.APIURL != "" && c.APIKey != ""
}

func (c VerificationConfig) VerifierConfig() verification.Config {
	return verification.Config{
		Delay:              c.Delay,
		CodePollInterval:   c.CodePollInterval,
		CodePollAttempts:   c.CodePollAttempts,
		StatusPollInterval: c.StatusPollInterval,
		StatusPollAttempts: c.StatusPollAttempts,
	}
}
