// Package http provides the HTTP API implementation.
//
// The HTTP server exposes endpoints for:
//   - Question answering (POST /qa)
//   - Offload pool health checks
//   - Prometheus metrics
package http
