package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrTransport indicates that the HTTP exchange with the node failed or returned a non-success status.
	ErrTransport = errors.New("transport error")

	// ErrProtocol indicates that the node reply could not be interpreted as a JSON-RPC response object.
	ErrProtocol = errors.New("protocol error")

	// ErrNode indicates that the node answered with a JSON-RPC error object.
	ErrNode = errors.New("node error")

	// ErrDecode indicates that a JSON-RPC result could not be decoded into the expected shape.
	ErrDecode = errors.New("decode error")

	// ErrMissingResult indicates a response that carries neither a result nor an error.
	ErrMissingResult = errors.New("response has neither result nor error")

	// ErrDerivation indicates that a keypair could not be derived from the mnemonic.
	ErrDerivation = errors.New("wallet derivation error")

	// ErrInvalidEndpoint indicates a node URL that cannot back an HTTP provider.
	ErrInvalidEndpoint = errors.New("invalid node endpoint")

	// ErrBlockNotFound indicates that the node has no block for the requested number or hash.
	ErrBlockNotFound = errors.New("block not found")

	// ErrTransactionNotFound indicates that the node has no receipt for the requested transaction.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrPendingTransaction indicates a receipt that is not yet attached to a block.
	ErrPendingTransaction = errors.New("transaction is not included in a block")

	// ErrTimeAdvancedNotMined indicates that the node clock was shifted but the follow-up block was not mined.
	ErrTimeAdvancedNotMined = errors.New("chain time advanced but block was not mined")

	// ErrNilDependency indicates a constructor called with a nil collaborator.
	ErrNilDependency = errors.New("nil dependency")
)

// MissingNodeErrorMessage is reported when a JSON-RPC error object has no message field.
const MissingNodeErrorMessage = "node error response is missing the message field"

// TransportError describes a failed HTTP exchange. StatusCode is zero when no response was received.
type TransportError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
	}
	return fmt.Sprintf("%s: HTTP status %d (%s)", ErrTransport, e.StatusCode, e.Status)
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NodeError is a JSON-RPC error object returned by the node.
type NodeError struct {
	Code           int
	Message        string
	Data           json.RawMessage
	MessageMissing bool
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNode, e.Message)
}

// Is reports whether target is ErrNode.
func (e *NodeError) Is(target error) bool {
	return target == ErrNode
}
