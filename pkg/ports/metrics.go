package ports

import "time"

// MetricsCollector records service metrics
type MetricsCollector interface {
	// InitEndpoint exports the request counters of endpoint at zero
	InitEndpoint(endpoint string)

	// IncCorrectRequests counts a request answered with a candidate
	IncCorrectRequests(endpoint string)

	// RecordRequest counts every request by outcome
	RecordRequest(endpoint, outcome string)

	// ObserveHTTPRequest records the latency of any served route
	ObserveHTTPRequest(endpoint, method, status string, duration time.Duration)

	ObserveInference(engine, status string, duration time.Duration)
	RecordCacheLookup(result string)
	RecordWorkerPoolStatus(idle, busy, stopped int)
	SetQueueDepth(depth int)
}
