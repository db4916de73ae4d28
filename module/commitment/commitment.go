// Package commitment turns a human readable secret into the fixed-size
// keccak256 commitment stored on-chain in its place.
package commitment

import (
	"crypto/subtle"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	gethCrypto "github.com/ethereum/go-ethereum/crypto"
)

// Size is the length of a commitment in bytes.
const Size = 32

// Commitment is the keccak256 hash of a secret's UTF-8 bytes.
type Commitment [Size]byte

// Commit hashes the UTF-8 encoding of secret. There is no salt: anyone who
// knows the secret can recompute the commitment and compare it with the one
// stored on-chain.
func Commit(secret string) Commitment {
	return Commitment(gethCrypto.Keccak256Hash([]byte(secret)))
}

// Matches reports whether secret hashes to c, in constant time.
func Matches(secret string, c Commitment) bool {
	candidate := Commit(secret)
	return subtle.ConstantTimeCompare(candidate[:], c[:]) == 1
}

// FromHex parses a 0x-prefixed hex commitment.
func FromHex(s string) (Commitment, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return Commitment{}, fmt.Errorf("invalid commitment %q: %w", s, err)
	}
	if len(b) != Size {
		return Commitment{}, fmt.Errorf("invalid commitment length %d, expected %d", len(b), Size)
	}
	return Commitment(b), nil
}

// Hex returns the 0x-prefixed hex encoding.
func (c Commitment) Hex() string {
	return hexutil.Encode(c[:])
}

func (c Commitment) String() string {
	return c.Hex()
}
