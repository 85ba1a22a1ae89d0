package metrics

import (
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nomad_indexer"

var (
	// Store metrics
	dbRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_requests_total",
			Help:      "Total number of message store requests by type",
		},
		[]string{"type"},
	)

	dbRequestTime = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_request_duration_seconds",
			Help:      "Duration of message store requests",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"type"},
	)

	dbErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_errors_total",
			Help:      "Total number of failed message store requests",
		},
		[]string{"type"},
	)

	// Message lifecycle metrics
	numberMessages = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "number_messages",
			Help:      "Number of messages per lifecycle stage and origin domain",
		},
		[]string{"stage", "domain"},
	)

	StageTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stage_transitions_total",
			Help:      "Messages that reached a lifecycle stage",
		},
		[]string{"stage", "home", "replica"},
	)

	stageLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_latency_seconds",
			Help:      "Time between a stage and the previous observed stage",
			Buckets:   []float64{10, 30, 60, 300, 900, 1800, 3600, 7200, 14400, 43200, 86400},
		},
		[]string{"stage", "home", "replica"},
	)

	stageGas = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_gas_used",
			Help:      "Gas used by the transaction of a stage",
			Buckets:   prometheus.ExponentialBuckets(21_000, 2, 10),
		},
		[]string{"stage", "home", "replica"},
	)

	// Poller metrics
	LastIndexedBlock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_indexed_block",
			Help:      "Chain head covered by the last successful poll",
		},
		[]string{"domain"},
	)

	eventsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_fetched_total",
			Help:      "Events fetched from chain by type",
		},
		[]string{"domain", "event_type"},
	)

	pollFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "poll_failures_total",
			Help:      "Polling ticks that failed",
		},
		[]string{"domain"},
	)

	pollDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time taken by one polling tick",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"domain"},
	)

	// Processor metrics
	dedupCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dedup_cache_size",
			Help:      "Messages tracked by the recent event cache",
		},
	)

	pooledEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pooled_events_total",
			Help:      "Events parked until their message is dispatched",
		},
		[]string{"event_type"},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uptime_seconds",
			Help:      "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "component_health",
			Help:      "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "goroutines",
			Help:      "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "memory_usage_bytes",
			Help:      "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func domainLabel(domain uint32) string {
	return strconv.FormatUint(uint64(domain), 10)
}

func DBRequestInc(requestType string) {
	dbRequests.WithLabelValues(requestType).Inc()
}

func DBRequestDuration(requestType string, duration time.Duration) {
	dbRequestTime.WithLabelValues(requestType).Observe(duration.Seconds())
}

func DBErrorsInc(requestType string) {
	dbErrors.WithLabelValues(requestType).Inc()
}

func NumberMessagesSet(stage string, domain uint32, count int) {
	numberMessages.WithLabelValues(stage, domainLabel(domain)).Set(float64(count))
}

// StageReached records a lifecycle transition. Latency is in milliseconds and skipped when unknown.
func StageReached(stage string, home, replica uint32, latencyMs int64, hasLatency bool, gas uint64) {
	h, r := domainLabel(home), domainLabel(replica)
	StageTransitions.WithLabelValues(stage, h, r).Inc()
	if hasLatency {
		stageLatency.WithLabelValues(stage, h, r).Observe(float64(latencyMs) / 1000)
	}
	if gas > 0 {
		stageGas.WithLabelValues(stage, h, r).Observe(float64(gas))
	}
}

func LastIndexedBlockSet(domain uint32, block uint64) {
	LastIndexedBlock.WithLabelValues(domainLabel(domain)).Set(float64(block))
}

func EventsFetchedInc(domain uint32, eventType string, count int) {
	eventsFetched.WithLabelValues(domainLabel(domain), eventType).Add(float64(count))
}

func PollFailuresInc(domain uint32) {
	pollFailures.WithLabelValues(domainLabel(domain)).Inc()
}

func PollDurationLog(domain uint32, duration time.Duration) {
	pollDuration.WithLabelValues(domainLabel(domain)).Observe(duration.Seconds())
}

func DedupCacheSizeSet(size int) {
	dedupCacheSize.Set(float64(size))
}

func PooledEventsInc(eventType string) {
	pooledEvents.WithLabelValues(eventType).Inc()
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics refreshes runtime gauges. The metrics server calls it every 15 seconds.
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())
	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
