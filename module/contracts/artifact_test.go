package contracts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadArtifact(t *testing.T) {
	dir := writeHardhatLayout(t, stopBytecode)

	artifact, err := LoadArtifact(dir, "Asistencia")
	require.NoError(t, err)

	assert.Equal(t, "Asistencia", artifact.ContractName)
	assert.Equal(t, "contracts/Asistencia.sol:Asistencia", artifact.FullyQualifiedName())
	assert.Len(t, artifact.ABI.Constructor.Inputs, 3)
	assert.Contains(t, artifact.ABI.Methods, "registrarAlumno")
	assert.Contains(t, artifact.ABI.Methods, "crearSesion")
	assert.NotEmpty(t, artifact.Bytecode)

	info, err := artifact.ReadBuildInfo()
	require.NoError(t, err)
	assert.Equal(t, "0.8.28+commit.7893614a", info.SolcLongVersion)
	assert.Contains(t, string(info.Input), "contracts/Asistencia.sol")
}

func TestLoadArtifactErrors(t *testing.T) {
	t.Run("unknown contract", func(t *testing.T) {
		dir := writeHardhatLayout(t, stopBytecode)
		_, err := LoadArtifact(dir, "Missing")
		require.Error(t, err)
	})

	t.Run("ambiguous name", func(t *testing.T) {
		dir := writeHardhatLayout(t, stopBytecode)
		other := filepath.Join(dir, "contracts", "Other.sol")
		require.NoError(t, os.MkdirAll(other, 0755))
		src, err := os.ReadFile(filepath.Join(dir, "contracts", "Asistencia.sol", "Asistencia.json"))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(other, "Asistencia.json"), src, 0644))

		_, err = LoadArtifact(dir, "Asistencia")
		require.Error(t, err)
	})

	t.Run("no bytecode", func(t *testing.T) {
		dir := writeHardhatLayout(t, "0x")
		_, err := LoadArtifact(dir, "Asistencia")
		require.Error(t, err)
	})

	t.Run("missing build info", func(t *testing.T) {
		dir := writeHardhatLayout(t, stopBytecode)
		require.NoError(t, os.RemoveAll(filepath.Join(dir, "build-info")))
		artifact, err := LoadArtifact(dir, "Asistencia")
		require.NoError(t, err)
		_, err = artifact.ReadBuildInfo()
		require.Error(t, err)
	})
}
