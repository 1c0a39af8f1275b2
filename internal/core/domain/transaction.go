package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Transaction represents a transaction body as returned inside a block.
type Transaction struct {
	Hash        common.Hash
	From        common.Address
	To          *common.Address
	Nonce       uint64
	Value       *big.Int
	Gas         uint64
	GasPrice    *big.Int
	Input       []byte
	BlockNumber *uint64
	BlockHash   *common.Hash
	Index       *uint64
}

// IsContractCreation reports whether the transaction has no recipient.
func (t Transaction) IsContractCreation() bool {
	return t.To == nil
}

// Receipt is the subset of a transaction receipt the node client works with.
type Receipt struct {
	TxHash          common.Hash
	BlockNumber     *uint64
	BlockHash       *common.Hash
	Status          uint64
	GasUsed         uint64
	ContractAddress *common.Address
}

// IsPending reports whether the receipt is not yet attached to a block.
func (r *Receipt) IsPending() bool {
	return r.BlockNumber == nil
}
