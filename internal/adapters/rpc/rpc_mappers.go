package rpc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"subgraph_setup_utils/internal/core/domain"
)

var errPendingBlock = errors.New("block has no number or hash (pending block)")

// mapRPCBlockToDomain converts the RPC DTO for a block to the domain model.
func mapRPCBlockToDomain(rpcBlock *Block, fullTransactions bool) (*domain.Block, error) {
	if rpcBlock.Number == nil || rpcBlock.Hash == nil {
		return nil, errPendingBlock
	}

	block := &domain.Block{
		Number:            uint64(*rpcBlock.Number),
		Hash:              *rpcBlock.Hash,
		ParentHash:        rpcBlock.ParentHash,
		Timestamp:         uint64(rpcBlock.Timestamp),
		GasLimit:          uint64(rpcBlock.GasLimit),
		GasUsed:           uint64(rpcBlock.GasUsed),
		Miner:             rpcBlock.Miner,
		TransactionHashes: make([]common.Hash, 0, len(rpcBlock.Transactions)),
	}
	if rpcBlock.BaseFeePerGas != nil {
		block.BaseFee = rpcBlock.BaseFeePerGas.ToInt()
	}
	if fullTransactions {
		block.Transactions = make([]domain.Transaction, 0, len(rpcBlock.Transactions))
	}

	for i, raw := range rpcBlock.Transactions {
		if isJSONString(raw) {
			if fullTransactions {
				return nil, fmt.Errorf("transaction %d: expected a transaction object, got a hash", i)
			}
			var h common.Hash
			if err := json.Unmarshal(raw, &h); err != nil {
				return nil, fmt.Errorf("transaction %d: invalid hash: %w", i, err)
			}
			block.TransactionHashes = append(block.TransactionHashes, h)
			continue
		}

		var rpcTx Transaction
		if err := json.Unmarshal(raw, &rpcTx); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
		tx := mapRPCTransactionToDomain(&rpcTx)
		block.TransactionHashes = append(block.TransactionHashes, tx.Hash)
		if fullTransactions {
			block.Transactions = append(block.Transactions, tx)
		}
	}

	return block, nil
}

// mapRPCTransactionToDomain converts the RPC DTO for a transaction to the domain model.
func mapRPCTransactionToDomain(rpcTx *Transaction) domain.Transaction {
	tx := domain.Transaction{
		Hash:      rpcTx.Hash,
		From:      rpcTx.From,
		To:        rpcTx.To,
		Nonce:     uint64(rpcTx.Nonce),
		Value:     bigOrZero(rpcTx.Value.ToInt()),
		Gas:       uint64(rpcTx.Gas),
		GasPrice:  bigOrZero(rpcTx.GasPrice.ToInt()),
		Input:     []byte(rpcTx.Input),
		BlockHash: rpcTx.BlockHash,
	}
	if rpcTx.BlockNumber != nil {
		n := uint64(*rpcTx.BlockNumber)
		tx.BlockNumber = &n
	}
	if rpcTx.TransactionIndex != nil {
		idx := uint64(*rpcTx.TransactionIndex)
		tx.Index = &idx
	}
	return tx
}

// mapRPCReceiptToDomain converts the RPC DTO for a receipt to the domain model.
func mapRPCReceiptToDomain(rpcReceipt *Receipt) *domain.Receipt {
	r := &domain.Receipt{
		TxHash:          rpcReceipt.TransactionHash,
		BlockHash:       rpcReceipt.BlockHash,
		GasUsed:         uint64(rpcReceipt.GasUsed),
		ContractAddress: rpcReceipt.ContractAddress,
	}
	if rpcReceipt.BlockNumber != nil {
		n := uint64(*rpcReceipt.BlockNumber)
		r.BlockNumber = &n
	}
	if rpcReceipt.Status != nil {
		r.Status = uint64(*rpcReceipt.Status)
	}
	return r
}

func bigOrZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
