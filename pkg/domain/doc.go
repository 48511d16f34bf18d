// Package domain holds the question-answering types shared by the
// application layer, the adapters and the API surface.
package domain
