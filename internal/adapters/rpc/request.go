package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"subgraph_setup_utils/internal/core/domain"
)

var errNotJSONObject = errors.New("response body is not a JSON object")

// sendRequest posts one JSON-RPC request and interprets the reply:
//  1. non-2xx status: *domain.TransportError carrying the status, body ignored;
//  2. body that is not a JSON object: domain.ErrProtocol;
//  3. error member present: *domain.NodeError with the node's message;
//  4. otherwise the raw result. An absent result is domain.ErrMissingResult.
func (a *NodeAdapter) sendRequest(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	req := JSONRPCRequest{
		JSONRPC: JSONRPCVersion,
		ID:      a.nextID.Add(1),
		Method:  method,
		Params:  params,
	}

	reqLogger := a.logger.With("method", method, "id", req.ID)
	reqLogger.Debug("Sending JSON-RPC request")

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal RPC request %s: %w", method, err)
	}

	resp, err := a.transport.Post(ctx, body)
	if err != nil {
		reqLogger.Debug("JSON-RPC transport failure", "error", err)
		return nil, fmt.Errorf("%s: %w", method, err)
	}

	if !resp.IsSuccess() {
		reqLogger.Debug("JSON-RPC request rejected by HTTP status", "status", resp.StatusCode)
		return nil, fmt.Errorf("%s: %w", method, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		})
	}

	rpcResp, err := parseResponse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", method, domain.ErrProtocol, err)
	}

	if len(rpcResp.Error) > 0 && !isJSONNull(rpcResp.Error) {
		nodeErr := parseNodeError(rpcResp.Error)
		reqLogger.Warn("Node returned JSON-RPC error", "code", nodeErr.Code, "message", nodeErr.Message)
		return nil, fmt.Errorf("%s: %w", method, nodeErr)
	}

	if len(rpcResp.Result) == 0 {
		return nil, fmt.Errorf("%s: %w: %w", method, domain.ErrProtocol, domain.ErrMissingResult)
	}

	return rpcResp.Result, nil
}

// exchange sends a request, hands the raw result to decode (if any) and reports
// the final outcome, decode failures included, to the call observer.
func (a *NodeAdapter) exchange(ctx context.Context, method string, decode func(json.RawMessage) error, params ...any) (err error) {
	start := time.Now()
	defer func() {
		if a.observer != nil {
			a.observer.ObserveCall(method, time.Since(start), err)
		}
	}()

	raw, err := a.sendRequest(ctx, method, params...)
	if err != nil {
		return err
	}
	if decode == nil {
		return nil
	}
	return decode(raw)
}

// call sends a request and decodes its result into out.
func (a *NodeAdapter) call(ctx context.Context, out any, method string, params ...any) error {
	return a.exchange(ctx, method, func(raw json.RawMessage) error {
		if err := jsonUnmarshal(raw, out); err != nil {
			return fmt.Errorf("%s: %w: %w. JSON: %s", method, domain.ErrDecode, err, string(raw))
		}
		return nil
	}, params...)
}

func parseResponse(body []byte) (*JSONRPCResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotJSONObject
	}
	var rpcResp JSONRPCResponse
	if err := json.Unmarshal(trimmed, &rpcResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal RPC response: %w", err)
	}
	return &rpcResp, nil
}

func parseNodeError(raw json.RawMessage) *domain.NodeError {
	var rpcErr Error
	if err := json.Unmarshal(raw, &rpcErr); err != nil || rpcErr.Message == nil {
		return &domain.NodeError{
			Code:           rpcErr.Code,
			Message:        domain.MissingNodeErrorMessage,
			Data:           rpcErr.Data,
			MessageMissing: true,
		}
	}
	return &domain.NodeError{
		Code:    rpcErr.Code,
		Message: *rpcErr.Message,
		Data:    rpcErr.Data,
	}
}
