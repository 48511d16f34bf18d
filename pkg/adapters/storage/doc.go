// Package storage provides answer cache implementations.
//
// Implementations:
//   - redis: Redis with JSON serialization and TTL, shared across replicas
//   - memory: bounded in-process map with TTL
package storage
