package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistencia/asistencia-deploy/module/commitment"
)

func load(t *testing.T, args ...string) (Config, error) {
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	InitializeRunFlags(flags, Default())
	require.NoError(t, flags.Parse(args))

	v, err := NewViper(flags, Default())
	require.NoError(t, err)
	return Load(v)
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	operator := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	plan, err := cfg.Plan(operator)
	require.NoError(t, err)
	assert.Equal(t, []string{"AsistenciaToken", "AST", operator.Hex()}, plan.Descriptor.ConstructorArgs)
	require.Len(t, plan.Participants, 2)
	assert.Equal(t, uint64(3), plan.SessionDuration)

	ops := plan.Operations()
	assert.Equal(t, [32]byte(commitment.Commit("solidity")), ops[2].Args[0])

	// no API key, no verification
	assert.False(t, cfg.Verification.Enabled())
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("ASISTENCIA_SECRET", "from-env")
	t.Setenv("ASISTENCIA_VERIFICATION_API_KEY", "env-key")
	t.Setenv("ASISTENCIA_SESSION_DURATION", "10")

	cfg, err := load(t, "--secret", "from-flag", "--verification-delay", "1s", "--participants", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Secret)
	assert.Equal(t, "env-key", cfg.Verification.APIKey)
	assert.True(t, cfg.Verification.Enabled())
	assert.Equal(t, uint64(10), cfg.SessionDuration)
	assert.Equal(t, time.Second, cfg.Verification.Delay)
	assert.Equal(t, []string{"0x70997970C51812dc3A010C7d01b50e0d17dc79C8"}, cfg.Participants)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deploy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rpc-url: https://sepolia.example.org
session-duration: 5
verification:
  api-key: file-key
  status-poll-attempts: 2
`), 0644))

	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	InitializeRunFlags(flags, Default())
	v, err := NewViper(flags, Default())
	require.NoError(t, err)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "https://sepolia.example.org", cfg.RPCURL)
	assert.Equal(t, uint64(5), cfg.SessionDuration)
	assert.Equal(t, "file-key", cfg.Verification.APIKey)
	assert.Equal(t, uint64(2), cfg.Verification.StatusPollAttempts)
	// untouched nested values keep their defaults
	assert.Equal(t, Default().Verification.APIURL, cfg.Verification.APIURL)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"bad participant": func(c *Config) { c.Participants = []string{"0x1234"} },
		"no participants": func(c *Config) { c.Participants = nil },
		"no secret":       func(c *Config) { c.Secret = "" },
		"bad rpc url":     func(c *Config) { c.RPCURL = "localhost" },
		"no signer":       func(c *Config) { c.Mnemonic = "" },
		"bad private key": func(c *Config) { c.PrivateKey = "not-hex" },
		"no poll interval": func(c *Config) {
			c.Verification.StatusPollInterval = 0
		},
		"no code poll interval": func(c *Config) {
			c.Verification.CodePollInterval = 0
		},
		"no dial retry interval": func(c *Config) { c.DialRetryInterval = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("private key without mnemonic", func(t *testing.T) {
		cfg := Default()
		cfg.Mnemonic = ""
		cfg.PrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
		assert.NoError(t, cfg.Validate())
	})
}
