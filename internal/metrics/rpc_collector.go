// Package metrics exposes prometheus instrumentation for node JSON-RPC calls.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"subgraph_setup_utils/internal/core/domain"
)

// Call outcomes used as the "outcome" label value.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
	OutcomeProtocol  = "protocol"
	OutcomeNode      = "node"
	OutcomeDecode    = "decode"
	OutcomeCanceled  = "canceled"
	OutcomeError     = "error"
)

// RPCCollector records the count and latency of JSON-RPC calls per method.
type RPCCollector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRPCCollector creates the RPC metrics under namespace and registers them with reg.
// A nil reg leaves the metrics unregistered.
func NewRPCCollector(namespace string, reg prometheus.Registerer) (*RPCCollector, error) {
	c := &RPCCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Number of JSON-RPC requests sent to the node, by method and outcome.",
		}, []string{"method", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_request_duration_seconds",
			Help:      "Latency of JSON-RPC requests sent to the node.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"method"}),
	}

	if reg == nil {
		return c, nil
	}
	for _, collector := range []prometheus.Collector{c.requests, c.duration} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("failed to register rpc metrics: %w", err)
		}
	}
	return c, nil
}

// ObserveCall records one finished call.
func (c *RPCCollector) ObserveCall(method string, duration time.Duration, err error) {
	c.requests.WithLabelValues(method, Outcome(err)).Inc()
	c.duration.WithLabelValues(method).Observe(duration.Seconds())
}

// Outcome classifies a call error into one of the Outcome* label values.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	case errors.Is(err, domain.ErrTransport):
		return OutcomeTransport
	case errors.Is(err, domain.ErrProtocol):
		return OutcomeProtocol
	case errors.Is(err, domain.ErrNode):
		return OutcomeNode
	case errors.Is(err, domain.ErrDecode):
		return OutcomeDecode
	default:
		return OutcomeError
	}
}

// DurationVec exposes the latency histogram, mainly for tests and custom registries.
func (c *RPCCollector) DurationVec() *prometheus.HistogramVec {
	return c.duration
}
