package ports

import (
	"context"

	"github.com/aescanero/qaserve/pkg/domain"
)

//go:generate mockgen -source=inference.go -destination=mocks/mock_inference.go -package=mocks

// InferenceEngine answers questions against a context.
// Implementations must be safe for concurrent Predict calls.
type InferenceEngine interface {
	// Predict returns one ranked candidate list per query, at most topK long
	Predict(ctx context.Context, queries []domain.QAInput, topK, maxAnswerLength int) ([][]domain.AnswerCandidate, error)

	// Name identifies the engine in logs, metrics and cache keys
	Name() string
}
