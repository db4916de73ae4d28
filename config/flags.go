package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names. Each one is also the config key, except for the verification
// flags, which live under the "verification" key.
const (
	rpcURL            = "rpc-url"
	dialRetryInterval = "dial-retry-interval"
	dialMaxRetries    = "dial-max-retries"
	privateKey        = "private-key"
	mnemonic          = "mnemonic"
	accountIndex      = "account-index"
	gasLimit          = "gas-limit"
	artifacts         = "artifacts"
	contract          = "contract"
	constructorArgs   = "constructor-args"
	participants      = "participants"
	secret            = "secret"
	sessionDuration   = "session-duration"
	registerMethod    = "register-method"
	sessionMethod     = "session-method"
	record            = "record"
	pushGateway       = "push-gateway"
	strict            = "strict"
	lockDir           = "lock-dir"

	verificationAPIURL             = "verification-api-url"
	verificationAPIKey             = "verification-api-key"
	verificationTimeout            = "verification-timeout"
	verificationDelay              = "verification-delay"
	verificationCodePollInterval   = "verification-code-poll-interval"
	verificationCodePollAttempts   = "verification-code-poll-attempts"
	verificationStatusPollInterval = "verification-status-poll-interval"
	verificationStatusPollAttempts = "verification-status-poll-attempts"
)

const verificationPrefix = "verification-"

// InitializeChainFlags adds the flags needed to connect and sign.
func InitializeChainFlags(flags *pflag.FlagSet, config Config) {
	flags.String(rpcURL, config.RPCURL, "JSON-RPC endpoint of the node")
	flags.Duration(dialRetryInterval, config.DialRetryInterval, "interval between attempts to reach the node")
	flags.Uint64(dialMaxRetries, config.DialMaxRetries, "number of retries before giving up on the node")
	flags.String(privateKey, config.PrivateKey, "hex private key of the operator, takes precedence over the mnemonic")
	flags.String(mnemonic, config.Mnemonic, "BIP-39 mnemonic the operator key is derived from")
	flags.Uint32(accountIndex, config.AccountIndex, "index of the operator account in the mnemonic")
	flags.Uint64(gasLimit, config.GasLimit, "gas limit of every contract call after deployment, 0 to estimate")
}

// InitializeContractFlags adds the flags describing the contract.
func InitializeContractFlags(flags *pflag.FlagSet, config Config) {
	flags.String(artifacts, config.Artifacts, "hardhat artifacts directory")
	flags.String(contract, config.Contract, "name of the contract to deploy")
	flags.StringSlice(constructorArgs, config.ConstructorArgs, "ordered constructor arguments, {operator} is replaced by the operator address")
}

// InitializeVerificationFlags adds the explorer flags.
func InitializeVerificationFlags(flags *pflag.FlagSet, config Config) {
	v := config.Verification
	flags.String(verificationAPIURL, v.APIURL, "Etherscan compatible verification API")
	flags.String(verificationAPIKey, v.APIKey, "explorer API key, verification is skipped without one")
	flags.Duration(verificationTimeout, v.Timeout, "timeout of each explorer request")
	flags.Duration(verificationDelay, v.Delay, "wait before submitting the source")
	flags.Duration(verificationCodePollInterval, v.CodePollInterval, "interval between checks for deployed code")
	flags.Uint64(verificationCodePollAttempts, v.CodePollAttempts, "retries of the deployed code check")
	flags.Duration(verificationStatusPollInterval, v.StatusPollInterval, "interval between verification status checks")
	flags.Uint64(verificationStatusPollAttempts, v.StatusPollAttempts, "retries of the verification status check")
}

// InitializeSecretFlags adds the session secret flag.
func InitializeSecretFlags(flags *pflag.FlagSet, config Config) {
	flags.String(secret, config.Secret, "session secret, only its keccak256 commitment is sent")
}

// InitializeRunFlags adds the flags of a full run.
func InitializeRunFlags(flags *pflag.FlagSet, config Config) {
	InitializeChainFlags(flags, config)
	InitializeContractFlags(flags, config)
	InitializeVerificationFlags(flags, config)
	flags.StringSlice(participants, config.Participants, "ordered participant addresses to register")
	InitializeSecretFlags(flags, config)
	flags.Uint64(sessionDuration, config.SessionDuration, "duration of the initial session, in the contract's units")
	flags.String(registerMethod, config.RegisterMethod, "contract method registering a participant")
	flags.String(sessionMethod, config.SessionMethod, "contract method creating a session")
	flags.String(record, config.Record, "write a deployment record to this path (.json, .yaml or .yml)")
	flags.String(pushGateway, config.PushGateway, "Prometheus Pushgateway URL run metrics are pushed to")
	flags.Bool(strict, config.Strict, "exit with an error if any transaction fails")
	flags.String(lockDir, config.LockDir, "directory holding the run lock")
}

// configKey returns the config key of a flag.
func configKey(flagName string) string {
	if strings.HasPrefix(flagName, verificationPrefix) {
		return "verification." + strings.TrimPrefix(flagName, verificationPrefix)
	}
	return flagName
}

// NewViper returns a viper store holding config's values as defaults, with
// environment variables and every flag of flags bound on top. Environment
// variables use the config key, upper cased, prefixed with ASISTENCIA_ and
// with "-" and "." replaced by "_", e.g. ASISTENCIA_VERIFICATION_API_KEY.
func NewViper(flags *pflag.FlagSet, config Config) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v, config)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var err error
	flags.VisitAll(func(flag *pflag.Flag) {
		if err != nil {
			return
		}
		if bindErr := v.BindPFlag(configKey(flag.Name), flag); bindErr != nil {
			err = fmt.Errorf("could not bind flag %s: %w", flag.Name, bindErr)
		}
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// SetDefaults registers every config key with its default value, so that
// environment variables are picked up on Unmarshal.
func SetDefaults(v *viper.Viper, config Config) {
	v.SetDefault(rpcURL, config.RPCURL)
	v.SetDefault(dialRetryInterval, config.DialRetryInterval)
	v.SetDefault(dialMaxRetries, config.DialMaxRetries)
	v.SetDefault(privateKey, config.PrivateKey)
	v.SetDefault(mnemonic, config.Mnemonic)
	v.SetDefault(accountIndex, config.AccountIndex)
	v.SetDefault(gasLimit, config.GasLimit)
	v.SetDefault(artifacts, config.Artifacts)
	v.SetDefault(contract, config.Contract)
	v.SetDefault(constructorArgs, config.ConstructorArgs)
	v.SetDefault(participants, config.Participants)
	v.SetDefault(secret, config.Secret)
	v.SetDefault(sessionDuration, config.SessionDuration)
	v.SetDefault(registerMethod, config.RegisterMethod)
	v.SetDefault(sessionMethod, config.SessionMethod)
	v.SetDefault(record, config.Record)
	v.SetDefault(pushGateway, config.PushGateway)
	v.SetDefault(strict, config.Strict)
	v.SetDefault(lockDir, config.LockDir)

	v.SetDefault(configKey(verificationAPIURL), config.Verification.APIURL)
	v.SetDefault(configKey(verificationAPIKey), config.Verification.APIKey)
	v.SetDefault(configKey(verificationTimeout), config.Verification.Timeout)
	v.SetDefault(configKey(verificationDelay), config.Verification.Delay)
	v.SetDefault(configKey(verificationCodePollInterval), config.Verification.CodePollInterval)
	v.SetDefault(configKey(verificationCodePollAttempts), config.Verification.CodePollAttempts)
	v.SetDefault(configKey(verificationStatusPollInterval), config.Verification.StatusPollInterval)
	v.SetDefault(configKey(verificationStatusPollAttempts), config.Verification.StatusPollAttempts)
}
