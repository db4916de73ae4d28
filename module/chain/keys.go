package chain

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	gethCrypto "github.com/ethereum/go-ethereum/crypto"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
)

const (
	// Ethereum root path for reference
	rootPath = "m/44'/60'/0'/0/"

	// HardhatMnemonic is the well known mnemonic of the hardhat and anvil
	// development accounts. Never fund these accounts on a public network.
	HardhatMnemonic = "test test test test test test test test test test test junk"
)

// KeyConfig selects the operator key. A raw private key takes precedence
// over a mnemonic.
type KeyConfig struct {
	PrivateKey   string
	Mnemonic     string
	AccountIndex uint32
}

// OperatorKey loads the operator signing key described by cfg.
func OperatorKey(cfg KeyConfig) (*ecdsa.PrivateKey, error) {
	if cfg.PrivateKey != "" {
		key, err := gethCrypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("could not decode operator private key: %w", err)
		}
		return key, nil
	}
	if cfg.Mnemonic == "" {
		return nil, fmt.Errorf("either a private key or a mnemonic is required")
	}
	return DeriveKey(cfg.Mnemonic, cfg.AccountIndex)
}

// DeriveKey derives the key at m/44'/60'/0'/0/index from mnemonic.
func DeriveKey(mnemonic string, index uint32) (*ecdsa.PrivateKey, error) {
	wallet, err := hdwallet.NewFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("could not create wallet from mnemonic: %w", err)
	}
	path, err := hdwallet.ParseDerivationPath(fmt.Sprintf("%s%d", rootPath, index))
	if err != nil {
		return nil, fmt.Errorf("could not parse derivation path: %w", err)
	}
	account, err := wallet.Derive(path, false)
	if err != nil {
		return nil, fmt.Errorf("could not derive account %d: %w", index, err)
	}
	key, err := wallet.PrivateKey(account)
	if err != nil {
		return nil, fmt.Errorf("could not get private key of account %d: %w", index, err)
	}
	return key, nil
}
