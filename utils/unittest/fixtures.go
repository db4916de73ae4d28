package unittest

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

func AddressFixture() common.Address {
	var addr common.Address
	_, _ = crand.Read(addr[:])
	return addr
}

func HashFixture() common.Hash {
	var h common.Hash
	_, _ = crand.Read(h[:])
	return h
}

// TransactionFixture returns an unsigned legacy transaction; its hash is
// unique per nonce and destination.
func TransactionFixture(nonce uint64) *types.Transaction {
	to := AddressFixture()
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Gas:      100_000,
		GasPrice: big.NewInt(1_000_000_000),
		Value:    big.NewInt(0),
	})
}

// ReceiptFixture returns a receipt of tx with the given status.
func ReceiptFixture(tx *types.Transaction, status uint64) *types.Receipt {
	return &types.Receipt{
		Status:      status,
		TxHash:      tx.Hash(),
		BlockNumber: big.NewInt(int64(rand.Intn(1_000_000) + 1)),
		GasUsed:     uint64(rand.Intn(100_000) + 21_000),
	}
}

func SuccessReceiptFixture(tx *types.Transaction) *types.Receipt {
	return ReceiptFixture(tx, types.ReceiptStatusSuccessful)
}

func FailedReceiptFixture(tx *types.Transaction) *types.Receipt {
	return ReceiptFixture(tx, types.ReceiptStatusFailed)
}
