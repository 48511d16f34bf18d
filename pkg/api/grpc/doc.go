// Package grpc exposes the standard gRPC health checking service,
// reporting SERVING while the offload pool is healthy.
package grpc
