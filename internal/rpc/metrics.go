package rpc

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomad_indexer_rpc_requests_total",
			Help: "Total number of RPC requests by method and domain",
		},
		[]string{"method", "domain"},
	)

	RPCErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nomad_indexer_rpc_errors_total",
			Help: "Total number of failed RPC attempts by method, domain and error class",
		},
		[]string{"method", "domain", "error_type"},
	)

	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nomad_indexer_rpc_request_duration_seconds",
			Help:    "Duration of RPC requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "domain"},
	)

	RPCRateLimitWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nomad_indexer_rpc_rate_limit_wait_seconds",
			Help:    "Time spent waiting for compute units before a request",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"domain"},
	)
)

func domainLabel(domain uint32) string {
	return strconv.FormatUint(uint64(domain), 10)
}

func RPCMethodInc(method string, domain uint32) {
	RPCRequests.WithLabelValues(method, domainLabel(domain)).Inc()
}

func RPCMethodDuration(method string, domain uint32, duration time.Duration) {
	RPCDuration.WithLabelValues(method, domainLabel(domain)).Observe(duration.Seconds())
}

func RPCMethodError(method string, domain uint32, errorType string) {
	RPCErrors.WithLabelValues(method, domainLabel(domain), errorType).Inc()
}

func RPCRateLimitWaitLog(domain uint32, duration time.Duration) {
	RPCRateLimitWait.WithLabelValues(domainLabel(domain)).Observe(duration.Seconds())
}
