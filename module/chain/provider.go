// Package chain provides the operator identity and the JSON-RPC handle used
// to deploy and call the contract.
package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	gethCrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// Backend is the part of the JSON-RPC client used to deploy, transact and
// confirm. *ethclient.Client implements it.
type Backend interface {
	bind.ContractBackend
	bind.DeployBackend
}

// DialConfig controls how long Connect waits for the node to answer.
type DialConfig struct {
	URL           string
	RetryInterval time.Duration
	MaxRetries    uint64
}

// Provider bundles the operator identity with the node connection.
type Provider struct {
	client   *ethclient.Client
	chainID  *big.Int
	operator common.Address
	key      *ecdsa.PrivateKey
}

// Connect dials the node and reads its chain ID, retrying at a constant
// interval while the node is not reachable yet.
func Connect(ctx context.Context, log zerolog.Logger, cfg DialConfig, key *ecdsa.PrivateKey) (*Provider, error) {
	client, err := ethclient.DialContext(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("could not dial %s: %w", cfg.URL, err)
	}

	constRetry := retry.NewConstant(cfg.RetryInterval)

	var chainID *big.Int
	attempt := 0
	err = retry.Do(ctx, retry.WithMaxRetries(cfg.MaxRetries, constRetry), func(ctx context.Context) error {
		attempt++
		chainID, err = client.ChainID(ctx)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Str("url", cfg.URL).Msg("node not reachable yet")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not read chain id from %s: %w", cfg.URL, err)
	}

	p := &Provider{
		client:   client,
		chainID:  chainID,
		operator: gethCrypto.PubkeyToAddress(key.PublicKey),
		key:      key,
	}

	log.Info().
		Str("url", cfg.URL).
		Str("chain_id", chainID.String()).
		Str("operator", p.operator.Hex()).
		Msg("connected to node")

	return p, nil
}

// Backend returns the read/write JSON-RPC handle.
func (p *Provider) Backend() Backend {
	return p.client
}

// ChainID returns the chain ID reported by the node.
func (p *Provider) ChainID() *big.Int {
	return new(big.Int).Set(p.chainID)
}

// Operator returns the address of the signing identity.
func (p *Provider) Operator() common.Address {
	return p.operator
}

// TransactOpts returns fresh EIP-155 signing options for the operator.
// gasLimit 0 lets the node estimate gas for every call.
func (p *Provider) TransactOpts(gasLimit uint64) (*bind.TransactOpts, error) {
	opts, err := bind.NewKeyedTransactorWithChainID(p.key, p.chainID)
	if err != nil {
		return nil, fmt.Errorf("could not create transactor for %s: %w", p.operator.Hex(), err)
	}
	opts.GasLimit = gasLimit
	return opts, nil
}

// Close closes the node connection.
func (p *Provider) Close() {
	p.client.Close()
}
