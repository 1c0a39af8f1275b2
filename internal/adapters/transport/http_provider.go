// Package transport implements the single-request HTTP transport used by the node client.
package transport

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"subgraph_setup_utils/internal/core/domain"
	"subgraph_setup_utils/internal/core/domain/client"
)

// HTTPProvider posts JSON bodies to a fixed node endpoint through a resty client.
type HTTPProvider struct {
	endpoint string
	rc       *resty.Client
}

// Compile-time check to ensure HTTPProvider implements client.Transport
var _ client.Transport = (*HTTPProvider)(nil)

// ProviderOption configures an HTTPProvider.
type ProviderOption func(*HTTPProvider)

// WithTimeout sets a per-request timeout. Zero keeps the client default.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(p *HTTPProvider) {
		if timeout > 0 {
			p.rc.SetTimeout(timeout)
		}
	}
}

// WithRestyClient replaces the underlying resty client.
func WithRestyClient(rc *resty.Client) ProviderOption {
	return func(p *HTTPProvider) {
		if rc != nil {
			p.rc = rc
		}
	}
}

// NewHTTPProvider validates endpoint and creates a provider for it.
func NewHTTPProvider(endpoint string, opts ...ProviderOption) (*HTTPProvider, error) {
	if err := ValidateEndpoint(endpoint); err != nil {
		return nil, err
	}

	p := &HTTPProvider{
		endpoint: endpoint,
		rc:       resty.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	// one POST per call; failures are reported, never retried
	p.rc.SetRetryCount(0)

	return p, nil
}

// ValidateEndpoint checks that endpoint is an absolute http(s) URL with a host.
func ValidateEndpoint(endpoint string) error {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return fmt.Errorf("%w: endpoint is empty", domain.ErrInvalidEndpoint)
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", domain.ErrInvalidEndpoint, endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q: unsupported scheme %q", domain.ErrInvalidEndpoint, endpoint, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: %q: missing host", domain.ErrInvalidEndpoint, endpoint)
	}
	return nil
}

// URL returns the endpoint the provider posts to.
func (p *HTTPProvider) URL() string {
	return p.endpoint
}

// Post sends body as a JSON POST request and returns the raw reply.
func (p *HTTPProvider) Post(ctx context.Context, body []byte) (*client.RawResponse, error) {
	resp, err := p.rc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(body).
		Post(p.endpoint)
	if err != nil {
		return nil, &domain.TransportError{Err: err}
	}

	return &client.RawResponse{
		StatusCode: resp.StatusCode(),
		Status:     resp.Status(),
		Body:       resp.Body(),
	}, nil
}
