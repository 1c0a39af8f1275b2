package client

import "context"

// RawResponse is an uninterpreted HTTP reply.
type RawResponse struct {
	StatusCode int
	Status     string
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *RawResponse) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport sends a single JSON body to a fixed endpoint.
type Transport interface {
	// URL returns the endpoint.
	URL() string

	// Post issues exactly one HTTP POST with body as JSON. A non-nil error means no response was received.
	Post(ctx context.Context, body []byte) (*RawResponse, error)
}
