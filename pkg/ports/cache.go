package ports

import (
	"context"

	"github.com/aescanero/qaserve/pkg/domain"
)

//go:generate mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks

// AnswerCache stores inference results keyed by query fingerprint
type AnswerCache interface {
	Get(ctx context.Context, key string) ([]domain.AnswerCandidate, bool, error)
	Set(ctx context.Context, key string, candidates []domain.AnswerCandidate) error
	Close() error
}
