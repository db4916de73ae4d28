package deployment

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Participant is an address registered on the contract by the operator.
type Participant struct {
	Address common.Address
}

// ParticipantsFromHex parses an ordered list of hex addresses. Order is
// preserved; it is the order registrations are submitted in.
func ParticipantsFromHex(addresses []string) ([]Participant, error) {
	participants := make([]Participant, 0, len(addresses))
	for i, addr := range addresses {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("participant %d: invalid address %q", i+1, addr)
		}
		participants = append(participants, Participant{Address: common.HexToAddress(addr)})
	}
	return participants, nil
}
