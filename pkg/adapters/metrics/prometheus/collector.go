package prometheus

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "qaserve"

// Collector implements MetricsCollector using Prometheus
type Collector struct {
	correctRequests   *prometheus.CounterVec
	requests          *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	inferenceDuration *prometheus.HistogramVec
	cacheLookups      *prometheus.CounterVec
	workerPoolIdle    prometheus.Gauge
	workerPoolBusy    prometheus.Gauge
	workerPoolStopped prometheus.Gauge
	queueDepth        prometheus.Gauge
}

// NewCollector creates the service metrics and registers them on reg.
// A registration error means the metrics set is misconfigured and is
// meant to abort startup.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		correctRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "correct_http_requests_total",
				Help:      "Total HTTP requests that were processed correctly.",
			},
			[]string{"endpoint"},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by outcome.",
			},
			[]string{"endpoint", "outcome"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds by route, method and status",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint", "method", "status"},
		),
		inferenceDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "inference_duration_seconds",
				Help:      "Inference call duration in seconds",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"engine", "status"},
		),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_lookups_total",
				Help:      "Answer cache lookups by result",
			},
			[]string{"result"},
		),
		workerPoolIdle: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "worker_pool_idle",
				Help:      "Number of idle workers",
			},
		),
		workerPoolBusy: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "worker_pool_busy",
				Help:      "Number of busy workers",
			},
		),
		workerPoolStopped: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "worker_pool_stopped",
				Help:      "Number of stopped workers",
			},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "worker_queue_depth",
				Help:      "Tasks waiting for a worker",
			},
		),
	}

	collectors := []prometheus.Collector{
		c.correctRequests,
		c.requests,
		c.httpDuration,
		c.inferenceDuration,
		c.cacheLookups,
		c.workerPoolIdle,
		c.workerPoolBusy,
		c.workerPoolStopped,
		c.queueDepth,
	}
	for _, col := range collectors {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	return c, nil
}

// InitEndpoint creates the answered-request series of endpoint so it is
// scraped as 0 before the first answer
func (c *Collector) InitEndpoint(endpoint string) {
	c.correctRequests.WithLabelValues(endpoint)
}

// IncCorrectRequests increments the answered-request counter for endpoint
func (c *Collector) IncCorrectRequests(endpoint string) {
	c.correctRequests.WithLabelValues(endpoint).Inc()
}

// RecordRequest counts a request by its outcome
func (c *Collector) RecordRequest(endpoint, outcome string) {
	c.requests.WithLabelValues(endpoint, outcome).Inc()
}

// ObserveHTTPRequest records the duration of a served HTTP request
func (c *Collector) ObserveHTTPRequest(endpoint, method, status string, duration time.Duration) {
	c.httpDuration.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())
}

// ObserveInference records the duration of an inference call
func (c *Collector) ObserveInference(engine, status string, duration time.Duration) {
	c.inferenceDuration.WithLabelValues(engine, status).Observe(duration.Seconds())
}

// RecordCacheLookup counts an answer cache lookup
func (c *Collector) RecordCacheLookup(result string) {
	c.cacheLookups.WithLabelValues(result).Inc()
}

// RecordWorkerPoolStatus records worker pool status
func (c *Collector) RecordWorkerPoolStatus(idle, busy, stopped int) {
	c.workerPoolIdle.Set(float64(idle))
	c.workerPoolBusy.Set(float64(busy))
	c.workerPoolStopped.Set(float64(stopped))
}

// SetQueueDepth sets the number of queued tasks
func (c *Collector) SetQueueDepth(depth int) {
	c.queueDepth.Set(float64(depth))
}

// CorrectRequests exposes the answered-request counter vector
func (c *Collector) CorrectRequests() *prometheus.CounterVec {
	return c.correctRequests
}

// Requests exposes the per-outcome request counter vector
func (c *Collector) Requests() *prometheus.CounterVec {
	return c.requests
}

// HTTPDuration exposes the per-route request duration histogram
func (c *Collector) HTTPDuration() *prometheus.HistogramVec {
	return c.httpDuration
}
