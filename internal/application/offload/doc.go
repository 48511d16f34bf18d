// Package offload implements the bounded worker pool that runs blocking
// inference calls away from the HTTP request goroutines.
//
// The pool manages a fixed number of goroutines that:
//   - Take tasks from a bounded queue (a full queue rejects new work)
//   - Recover task panics and hand them back to the waiting caller as errors
//   - Keep running submitted tasks to completion, even when the caller
//     stops waiting
//
// Submit returns a Future that callers await with their own context.
// The health monitor tracks worker status and publishes pool gauges.
package offload
