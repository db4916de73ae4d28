package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asistencia/asistencia-deploy/module/commitment"
)

// TestHashSecretResolvesSecret checks hash-secret hashes the secret run
// would use, wherever it is configured.
func TestHashSecretResolvesSecret(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		cfg, err := loadConfig(hashCmd)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, hashSecret(&out, cfg.Secret, ""))
		assert.Equal(t, commitment.Commit("solidity").Hex()+"\n", out.String())
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("ASISTENCIA_SECRET", "blockchain")

		cfg, err := loadConfig(hashCmd)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, hashSecret(&out, cfg.Secret, ""))
		assert.Equal(t, commitment.Commit("blockchain").Hex()+"\n", out.String())
	})

	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "asistencia.yaml")
		require.NoError(t, os.WriteFile(path, []byte("secret: ethereum\n"), 0644))
		flagConfig = path
		t.Cleanup(func() { flagConfig = "" })

		cfg, err := loadConfig(hashCmd)
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, hashSecret(&out, cfg.Secret, ""))
		assert.Equal(t, commitment.Commit("ethereum").Hex()+"\n", out.String())
	})
}

func TestHashSecretCheck(t *testing.T) {
	t.Run("matching commitment", func(t *testing.T) {
		var out bytes.Buffer
		err := hashSecret(&out, "solidity", commitment.Commit("solidity").Hex())
		require.NoError(t, err)
		assert.Equal(t, "Secret matches commitment\n", out.String())
	})

	t.Run("other secret", func(t *testing.T) {
		var out bytes.Buffer
		err := hashSecret(&out, "blockchain", commitment.Commit("solidity").Hex())
		require.ErrorIs(t, err, errSecretMismatch)
		assert.Empty(t, out.String())
	})

	t.Run("malformed commitment", func(t *testing.T) {
		var out bytes.Buffer
		err := hashSecret(&out, "solidity", "0x1234")
		require.Error(t, err)
		assert.NotErrorIs(t, err, errSecretMismatch)
		assert.Empty(t, out.String())
	})
}
