package contracts

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	artifactExt = ".json"
	debugExt    = ".dbg.json"
)

// Artifact is a compiled contract as emitted by hardhat under
// artifacts/<source>/<Contract>.json.
type Artifact struct {
	ContractName string
	SourceName   string
	ABI          abi.ABI
	Bytecode     []byte
	path         string
}

type artifactFile struct {
	ContractName string          `json:"contractName"`
	SourceName   string          `json:"sourceName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     string          `json:"bytecode"`
}

// BuildInfo is the compiler input and version that produced an artifact.
// Explorers need both to reproduce the bytecode.
type BuildInfo struct {
	SolcVersion     string          `json:"solcVersion"`
	SolcLongVersion string          `json:"solcLongVersion"`
	Input           json.RawMessage `json:"input"`
}

type debugFile struct {
	BuildInfo string `json:"buildInfo"`
}

// FindArtifact walks dir for the artifact of contractName. It is an error if
// the name is ambiguous.
func FindArtifact(dir string, contractName string) (string, error) {
	target := contractName + artifactExt
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// build-info holds compiler in/output, never artifacts
			if d.Name() == "build-info" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() == target {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("could not search artifacts in %s: %w", dir, err)
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no artifact for contract %s in %s", contractName, dir)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("contract name %s is ambiguous: %s", contractName, strings.Join(found, ", "))
	}
}

// LoadArtifact finds and parses the artifact of contractName under dir.
func LoadArtifact(dir string, contractName string) (*Artifact, error) {
	path, err := FindArtifact(dir, contractName)
	if err != nil {
		return nil, err
	}
	return ReadArtifact(path)
}

// ReadArtifact parses the hardhat artifact at path.
func ReadArtifact(path string) (*Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read artifact: %w", err)
	}

	var file artifactFile
	err = json.Unmarshal(raw, &file)
	if err != nil {
		return nil, fmt.Errorf("could not decode artifact %s: %w", path, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(file.ABI))
	if err != nil {
		return nil, fmt.Errorf("could not parse abi of %s: %w", file.ContractName, err)
	}

	bytecode, err := hexutil.Decode(file.Bytecode)
	if err != nil && !errors.Is(err, hexutil.ErrEmptyString) {
		return nil, fmt.Errorf("could not decode bytecode of %s: %w", file.ContractName, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("contract %s has no creation bytecode (abstract or interface?)", file.ContractName)
	}

	return &Artifact{
		ContractName: file.ContractName,
		SourceName:   file.SourceName,
		ABI:          parsed,
		Bytecode:     bytecode,
		path:         path,
	}, nil
}

// FullyQualifiedName returns "<source>:<contract>" as expected by explorers.
func (a *Artifact) FullyQualifiedName() string {
	return a.SourceName + ":" + a.ContractName
}

// ReadBuildInfo follows the artifact's debug file to the build info.
func (a *Artifact) ReadBuildInfo() (*BuildInfo, error) {
	dbgPath := strings.TrimSuffix(a.path, artifactExt) + debugExt
	raw, err := os.ReadFile(dbgPath)
	if err != nil {
		return nil, fmt.Errorf("could not read debug file of %s: %w", a.ContractName, err)
	}
	var dbg debugFile
	err = json.Unmarshal(raw, &dbg)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", dbgPath, err)
	}

	buildInfoPath := dbg.BuildInfo
	if !filepath.IsAbs(buildInfoPath) {
		buildInfoPath = filepath.Join(filepath.Dir(dbgPath), buildInfoPath)
	}
	raw, err = os.ReadFile(buildInfoPath)
	if err != nil {
		return nil, fmt.Errorf("could not read build info of %s: %w", a.ContractName, err)
	}
	var info BuildInfo
	err = json.Unmarshal(raw, &info)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", buildInfoPath, err)
	}
	if info.SolcLongVersion == "" || len(info.Input) == 0 {
		return nil, fmt.Errorf("build info %s lacks compiler version or input", buildInfoPath)
	}
	return &info, nil
}
