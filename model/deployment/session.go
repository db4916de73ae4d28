package deployment

import (
	"math/big"
)

// Session is the initial session created after participants are registered.
// Only the commitment of the secret is ever placed on-chain. Duration is
// interpreted by the contract; the orchestrator treats it as an opaque count.
type Session struct {
	SecretCommitment [32]byte
	Duration         uint64
}

// DurationArg returns the duration in the uint256 representation the
// contract expects.
func (s Session) DurationArg() *big.Int {
	return new(big.Int).SetUint64(s.Duration)
}
