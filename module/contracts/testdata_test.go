package contracts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// Creation code returning a one byte runtime (STOP); every call succeeds.
const stopBytecode = "0x6001600c60003960016000f300"

// Creation code returning a runtime that always reverts.
const revertBytecode = "0x6005600c60003960056000f360006000fd"

const asistenciaABI = `[
	{"type":"constructor","stateMutability":"nonpayable","inputs":[
		{"name":"name","type":"string"},
		{"name":"symbol","type":"string"},
		{"name":"profesor","type":"address"}]},
	{"type":"function","name":"registrarAlumno","stateMutability":"nonpayable",
		"inputs":[{"name":"alumno","type":"address"}],"outputs":[]},
	{"type":"function","name":"crearSesion","stateMutability":"nonpayable",
		"inputs":[{"name":"hashPalabra","type":"bytes32"},{"name":"duracion","type":"uint256"}],"outputs":[]}
]`

// writeHardhatLayout writes artifacts/contracts/Asistencia.sol/Asistencia.json
// together with its debug file and build info, returning the artifacts dir.
func writeHardhatLayout(t *testing.T, bytecode string) string {
	root := t.TempDir()
	artifacts := filepath.Join(root, "artifacts")
	contractDir := filepath.Join(artifacts, "contracts", "Asistencia.sol")
	buildInfoDir := filepath.Join(artifacts, "build-info")
	require.NoError(t, os.MkdirAll(contractDir, 0755))
	require.NoError(t, os.MkdirAll(buildInfoDir, 0755))

	artifact := map[string]any{
		"_format":      "hh-sol-artifact-1",
		"contractName": "Asistencia",
		"sourceName":   "contracts/Asistencia.sol",
		"abi":          json.RawMessage(asistenciaABI),
		"bytecode":     bytecode,
	}
	writeJSON(t, filepath.Join(contractDir, "Asistencia.json"), artifact)
	writeJSON(t, filepath.Join(contractDir, "Asistencia.dbg.json"), map[string]any{
		"_format":   "hh-sol-dbg-1",
		"buildInfo": "../../build-info/abc123.json",
	})
	writeJSON(t, filepath.Join(buildInfoDir, "abc123.json"), map[string]any{
		"_format":         "hh-sol-build-info-1",
		"solcVersion":     "0.8.28",
		"solcLongVersion": "0.8.28+commit.7893614a",
		"input": map[string]any{
			"language": "Solidity",
			"sources": map[string]any{
				"contracts/Asistencia.sol": map[string]any{"content": "// SPDX-License-Identifier: MIT"},
			},
		},
	})
	return artifacts
}

func writeJSON(t *testing.T, path string, v any) {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0644))
}
