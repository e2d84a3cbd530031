package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// RPCMetrics records per-method request counts and latencies.
type RPCMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRPCMetrics registers the RPC metrics on the provided registerer.
func NewRPCMetrics(reg prometheus.Registerer) *RPCMetrics {
	if reg == nil {
		return &RPCMetrics{}
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pricecmp_rpc_requests_total",
		Help: "Handled RPCs by method and status code.",
	}, []string{"method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pricecmp_rpc_duration_seconds",
		Help:    "RPC handling latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
	reg.MustRegister(requests, duration)
	return &RPCMetrics{
		requests: requests,
		duration: duration,
	}
}

// Observe records one finished call.
func (m *RPCMetrics) Observe(method, code string, elapsed time.Duration) {
	if m == nil || m.requests == nil {
		return
	}
	m.requests.WithLabelValues(normalizeLabel(method), normalizeLabel(code)).Inc()
	m.duration.WithLabelValues(normalizeLabel(method)).Observe(elapsed.Seconds())
}

// UnaryServerInterceptor observes every unary call.
func (m *RPCMetrics) UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		m.Observe(info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}
