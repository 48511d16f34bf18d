// Package ports defines the interfaces between the application layer and
// its adapters (inference engines, answer caches, metrics).
package ports
