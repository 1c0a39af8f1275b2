// Package domain defines the core domain models shared by the node client and the wallet layer.
package domain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Block represents the decoded node reply for a block query.
type Block struct {
	Number     uint64
	Hash       common.Hash
	ParentHash common.Hash
	Timestamp  uint64
	GasLimit   uint64
	GasUsed    uint64
	Miner      common.Address
	BaseFee    *big.Int

	// TransactionHashes is always populated. Transactions holds full bodies only when
	// the block was requested with transaction bodies inlined.
	TransactionHashes []common.Hash
	Transactions      []Transaction
}

// HasFullTransactions reports whether the block carries transaction bodies rather than hashes only.
func (b *Block) HasFullTransactions() bool {
	return b.Transactions != nil
}

// IsChildOf checks whether b directly follows parent on the same chain.
func (b *Block) IsChildOf(parent *Block) bool {
	if parent == nil {
		return false
	}
	return b.Number == parent.Number+1 && b.ParentHash == parent.Hash
}
