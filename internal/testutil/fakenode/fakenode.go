// Package fakenode provides an in-process JSON-RPC development node for tests. It implements the
// subset of eth_* and evm_* methods the node client uses, mines deterministically and supports
// fault injection at the HTTP, envelope and method level.
package fakenode

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Defaults mirror a freshly started local development node.
const (
	DefaultChainID     = 31337
	DefaultGenesisTime = 1_700_000_000
	DefaultGasPrice    = 1_000_000_000
	blockGasLimit      = 30_000_000
)

// JSON-RPC error codes used by the node.
const (
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeServerError    = -32000
)

type block struct {
	number    uint64
	timestamp uint64
	hash      common.Hash
	parent    common.Hash
	txs       []common.Hash
}

type txRecord struct {
	tx          *types.Transaction
	from        common.Address
	blockNumber *uint64
	index       uint64
}

type snapshot struct {
	blocks       []*block
	txs          map[common.Hash]*txRecord
	nonces       map[common.Address]uint64
	pendingShift uint64
}

// Node is a fake development node served over HTTP.
type Node struct {
	mu sync.Mutex

	chainID      *big.Int
	gasPrice     *big.Int
	blocks       []*block
	txs          map[common.Hash]*txRecord
	nonces       map[common.Address]uint64
	pendingShift uint64
	snapshots    map[string]snapshot
	nextSnapshot uint64

	forcedStatus int
	rawBody      []byte
	methodErrors map[string]json.RawMessage
	calls        map[string]int

	srv *httptest.Server
}

// Option configures a Node.
type Option func(*Node)

// WithChainID sets the chain id reported by eth_chainId and enforced on raw transactions.
func WithChainID(id int64) Option {
	return func(n *Node) {
		n.chainID = big.NewInt(id)
	}
}

// WithGenesisTime sets the timestamp of block 0.
func WithGenesisTime(ts uint64) Option {
	return func(n *Node) {
		n.blocks[0].timestamp = ts
		n.blocks[0].hash = blockHash(n.blocks[0])
	}
}

// New starts a node and registers its shutdown with t.Cleanup.
func New(t testing.TB, opts ...Option) *Node {
	t.Helper()

	genesis := &block{number: 0, timestamp: DefaultGenesisTime}
	genesis.hash = blockHash(genesis)

	n := &Node{
		chainID:      big.NewInt(DefaultChainID),
		gasPrice:     big.NewInt(DefaultGasPrice),
		blocks:       []*block{genesis},
		txs:          make(map[common.Hash]*txRecord),
		nonces:       make(map[common.Address]uint64),
		snapshots:    make(map[string]snapshot),
		methodErrors: make(map[string]json.RawMessage),
		calls:        make(map[string]int),
	}
	for _, opt := range opts {
		opt(n)
	}

	n.srv = httptest.NewServer(http.HandlerFunc(n.serveHTTP))
	t.Cleanup(n.srv.Close)
	return n
}

// URL returns the HTTP endpoint of the node.
func (n *Node) URL() string {
	return n.srv.URL
}

// ChainID returns the configured chain id.
func (n *Node) ChainID() *big.Int {
	return new(big.Int).Set(n.chainID)
}

// Head returns the number of the latest block.
func (n *Node) Head() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.head().number
}

// Calls returns how many requests for method the node has served.
func (n *Node) Calls(method string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.calls[method]
}

// FailWithStatus makes every subsequent request fail with the given HTTP status.
func (n *Node) FailWithStatus(status int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.forcedStatus = status
}

// RespondWithRaw makes every subsequent request answer 200 with body verbatim.
func (n *Node) RespondWithRaw(body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rawBody = []byte(body)
}

// FailMethod makes method answer with errorObject as its JSON-RPC error member.
func (n *Node) FailMethod(method, errorObject string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.methodErrors[method] = json.RawMessage(errorObject)
}

// ClearFaults removes all injected faults.
func (n *Node) ClearFaults() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.forcedStatus = 0
	n.rawBody = nil
	n.methodErrors = make(map[string]json.RawMessage)
}

// AddPendingTransaction registers a transaction the node knows about but has not mined.
func (n *Node) AddPendingTransaction(tx *types.Transaction, from common.Address) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.txs[tx.Hash()] = &txRecord{tx: tx, from: from}
}

type request struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string { return e.Message }

func (n *Node) serveHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req request
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, map[string]any{"jsonrpc": "2.0", "id": nil, "error": rpcError{Code: -32700, Message: "parse error"}})
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	n.calls[req.Method]++
	if n.forcedStatus != 0 {
		w.WriteHeader(n.forcedStatus)
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x0"}`))
		return
	}
	if n.rawBody != nil {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(n.rawBody)
		return
	}
	if errObj, ok := n.methodErrors[req.Method]; ok {
		writeJSON(w, map[string]any{"jsonrpc": "2.0", "id": req.ID, "error": errObj})
		return
	}

	result, callErr := n.dispatch(req.Method, req.Params)
	if callErr != nil {
		writeJSON(w, map[string]any{"jsonrpc": "2.0", "id": req.ID, "error": callErr})
		return
	}
	writeJSON(w, map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": result})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func (n *Node) dispatch(method string, params []json.RawMessage) (any, *rpcError) {
	switch method {
	case "eth_blockNumber":
		return hexutil.Uint64(n.head().number), nil
	case "eth_chainId":
		return (*hexutil.Big)(n.chainID), nil
	case "eth_gasPrice":
		return (*hexutil.Big)(n.gasPrice), nil
	case "eth_getBlockByNumber":
		return n.getBlockByNumber(params)
	case "eth_getBlockByHash":
		return n.getBlockByHash(params)
	case "eth_getTransactionReceipt":
		return n.getReceipt(params)
	case "eth_getTransactionCount":
		return n.getTransactionCount(params)
	case "eth_sendRawTransaction":
		return n.sendRawTransaction(params)
	case "evm_mine":
		n.mine(nil)
		return "0x0", nil
	case "evm_increaseTime":
		var seconds uint64
		if err := param(params, 0, &seconds); err != nil {
			return nil, err
		}
		n.pendingShift += seconds
		return seconds, nil
	case "evm_snapshot":
		return n.takeSnapshot(), nil
	case "evm_revert":
		var id string
		if err := param(params, 0, &id); err != nil {
			return nil, err
		}
		return n.revert(id), nil
	default:
		return nil, &rpcError{Code: CodeMethodNotFound, Message: fmt.Sprintf("the method %s does not exist/is not available", method)}
	}
}

func param(params []json.RawMessage, i int, out any) *rpcError {
	if i >= len(params) {
		return &rpcError{Code: CodeInvalidParams, Message: fmt.Sprintf("missing value for required argument %d", i)}
	}
	if err := json.Unmarshal(params[i], out); err != nil {
		return &rpcError{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid argument %d: %v", i, err)}
	}
	return nil
}

func (n *Node) head() *block {
	return n.blocks[len(n.blocks)-1]
}

func (n *Node) mine(txs []common.Hash) *block {
	parent := n.head()
	ts := parent.timestamp + 1
	if n.pendingShift > 0 {
		ts = parent.timestamp + n.pendingShift
		n.pendingShift = 0
	}
	b := &block{
		number:    parent.number + 1,
		timestamp: ts,
		parent:    parent.hash,
		txs:       txs,
	}
	b.hash = blockHash(b)
	n.blocks = append(n.blocks, b)

	for i, h := range txs {
		num := b.number
		rec := n.txs[h]
		rec.blockNumber = &num
		rec.index = uint64(i)
	}
	return b
}

func blockHash(b *block) common.Hash {
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], b.number)
	binary.BigEndian.PutUint64(buf[8:], b.timestamp)
	parts := [][]byte{b.parent.Bytes(), buf}
	for _, h := range b.txs {
		parts = append(parts, h.Bytes())
	}
	return crypto.Keccak256Hash(parts...)
}

func (n *Node) getBlockByNumber(params []json.RawMessage) (any, *rpcError) {
	var tag string
	if err := param(params, 0, &tag); err != nil {
		return nil, err
	}
	var full bool
	if err := param(params, 1, &full); err != nil {
		return nil, err
	}

	var number uint64
	switch tag {
	case "latest", "pending", "safe", "finalized":
		number = n.head().number
	case "earliest":
		number = 0
	default:
		v, err := hexutil.DecodeUint64(tag)
		if err != nil {
			return nil, &rpcError{Code: CodeInvalidParams, Message: fmt.Sprintf("invalid argument 0: %v", err)}
		}
		number = v
	}
	if number >= uint64(len(n.blocks)) {
		return nil, nil
	}
	return n.marshalBlock(n.blocks[number], full), nil
}

func (n *Node) getBlockByHash(params []json.RawMessage) (any, *rpcError) {
	var hash common.Hash
	if err := param(params, 0, &hash); err != nil {
		return nil, err
	}
	var full bool
	if err := param(params, 1, &full); err != nil {
		return nil, err
	}
	for _, b := range n.blocks {
		if b.hash == hash {
			return n.marshalBlock(b, full), nil
		}
	}
	return nil, nil
}

func (n *Node) marshalBlock(b *block, full bool) map[string]any {
	txs := make([]any, 0, len(b.txs))
	for _, h := range b.txs {
		if full {
			txs = append(txs, n.marshalTx(n.txs[h]))
		} else {
			txs = append(txs, h)
		}
	}
	return map[string]any{
		"number":        hexutil.Uint64(b.number),
		"hash":          b.hash,
		"parentHash":    b.parent,
		"timestamp":     hexutil.Uint64(b.timestamp),
		"gasLimit":      hexutil.Uint64(blockGasLimit),
		"gasUsed":       hexutil.Uint64(21_000 * uint64(len(b.txs))),
		"miner":         common.Address{},
		"baseFeePerGas": (*hexutil.Big)(big.NewInt(DefaultGasPrice)),
		"transactions":  txs,
	}
}

func (n *Node) marshalTx(rec *txRecord) map[string]any {
	out := map[string]any{
		"hash":     rec.tx.Hash(),
		"from":     rec.from,
		"to":       rec.tx.To(),
		"nonce":    hexutil.Uint64(rec.tx.Nonce()),
		"value":    (*hexutil.Big)(rec.tx.Value()),
		"gas":      hexutil.Uint64(rec.tx.Gas()),
		"gasPrice": (*hexutil.Big)(rec.tx.GasPrice()),
		"input":    hexutil.Bytes(rec.tx.Data()),
	}
	if rec.blockNumber != nil {
		out["blockNumber"] = hexutil.Uint64(*rec.blockNumber)
		out["blockHash"] = n.blocks[*rec.blockNumber].hash
		out["transactionIndex"] = hexutil.Uint64(rec.index)
	} else {
		out["blockNumber"] = nil
		out["blockHash"] = nil
		out["transactionIndex"] = nil
	}
	return out
}

func (n *Node) getReceipt(params []json.RawMessage) (any, *rpcError) {
	var hash common.Hash
	if err := param(params, 0, &hash); err != nil {
		return nil, err
	}
	rec, ok := n.txs[hash]
	if !ok {
		return nil, nil
	}
	out := map[string]any{
		"transactionHash":  hash,
		"status":           hexutil.Uint64(types.ReceiptStatusSuccessful),
		"gasUsed":          hexutil.Uint64(rec.tx.Gas()),
		"contractAddress":  nil,
		"blockNumber":      nil,
		"blockHash":        nil,
		"transactionIndex": nil,
	}
	if rec.blockNumber != nil {
		out["blockNumber"] = hexutil.Uint64(*rec.blockNumber)
		out["blockHash"] = n.blocks[*rec.blockNumber].hash
		out["transactionIndex"] = hexutil.Uint64(rec.index)
	}
	if rec.tx.To() == nil {
		out["contractAddress"] = crypto.CreateAddress(rec.from, rec.tx.Nonce())
	}
	return out, nil
}

func (n *Node) getTransactionCount(params []json.RawMessage) (any, *rpcError) {
	var addr common.Address
	if err := param(params, 0, &addr); err != nil {
		return nil, err
	}
	return hexutil.Uint64(n.nonces[addr]), nil
}

func (n *Node) sendRawTransaction(params []json.RawMessage) (any, *rpcError) {
	var raw hexutil.Bytes
	if err := param(params, 0, &raw); err != nil {
		return nil, err
	}
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return nil, &rpcError{Code: CodeServerError, Message: "failed to decode signed transaction: " + err.Error()}
	}
	if tx.Protected() && tx.ChainId().Cmp(n.chainID) != 0 {
		return nil, &rpcError{Code: CodeServerError, Message: "invalid chain id for signer"}
	}
	from, err := types.Sender(types.LatestSignerForChainID(n.chainID), tx)
	if err != nil {
		return nil, &rpcError{Code: CodeServerError, Message: "invalid sender: " + err.Error()}
	}
	if want := n.nonces[from]; tx.Nonce() != want {
		return nil, &rpcError{Code: CodeServerError, Message: fmt.Sprintf("nonce mismatch: have %d, want %d", tx.Nonce(), want)}
	}

	n.nonces[from]++
	n.txs[tx.Hash()] = &txRecord{tx: tx, from: from}
	n.mine([]common.Hash{tx.Hash()})
	return tx.Hash(), nil
}

func (n *Node) takeSnapshot() string {
	n.nextSnapshot++
	id := "0x" + strconv.FormatUint(n.nextSnapshot, 16)

	txs := make(map[common.Hash]*txRecord, len(n.txs))
	for h, rec := range n.txs {
		cp := *rec
		txs[h] = &cp
	}
	nonces := make(map[common.Address]uint64, len(n.nonces))
	for a, v := range n.nonces {
		nonces[a] = v
	}
	n.snapshots[id] = snapshot{
		blocks:       append([]*block(nil), n.blocks...),
		txs:          txs,
		nonces:       nonces,
		pendingShift: n.pendingShift,
	}
	return id
}

func (n *Node) revert(id string) bool {
	snap, ok := n.snapshots[id]
	if !ok {
		return false
	}
	n.blocks = snap.blocks
	n.txs = snap.txs
	n.nonces = snap.nonces
	n.pendingShift = snap.pendingShift
	delete(n.snapshots, id)
	return true
}
