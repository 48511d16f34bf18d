// Package prometheus implements the metrics collector on top of
// client_golang. All metrics live on the registry passed to NewCollector,
// which is also the registry served on /metrics.
package prometheus
