package qa

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/aescanero/qaserve/internal/application/offload"
	"github.com/aescanero/qaserve/pkg/domain"
	"github.com/aescanero/qaserve/pkg/ports"
	"go.uber.org/zap"
)

// ErrInferenceTimeout is returned when the inference await deadline passes
var ErrInferenceTimeout = errors.New("inference timed out")

// Service answers inquiries through the offload pool
type Service struct {
	pool      *offload.Pool
	engine    ports.InferenceEngine
	cache     ports.AnswerCache
	metrics   ports.MetricsCollector
	validator *Validator
	logger    *zap.Logger

	// Zero waits for inference indefinitely
	timeout time.Duration
}

// NewService creates a new QA service. cache may be nil.
func NewService(
	pool *offload.Pool,
	engine ports.InferenceEngine,
	cache ports.AnswerCache,
	metrics ports.MetricsCollector,
	validator *Validator,
	logger *zap.Logger,
	timeout time.Duration,
) *Service {
	return &Service{
		pool:      pool,
		engine:    engine,
		cache:     cache,
		metrics:   metrics,
		validator: validator,
		logger:    logger,
		timeout:   timeout,
	}
}

// Validate checks an inquiry before it is answered
func (s *Service) Validate(inquiry domain.Inquiry) error {
	return s.validator.Validate(inquiry)
}

// Answer runs the inquiry through the engine and classifies the result.
// Failures are returned inside the outcome, never as a panic.
func (s *Service) Answer(ctx context.Context, inquiry domain.Inquiry) domain.Outcome {
	var key string
	if s.cache != nil {
		key = Fingerprint(s.engine.Name(), inquiry)
		if candidates, ok := s.lookup(ctx, key); ok {
			return outcomeFor(candidates)
		}
	}

	candidates, err := s.infer(ctx, inquiry)
	if err != nil {
		return domain.Failed(err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, candidates); err != nil {
			s.logger.Warn("failed to cache answer", zap.Error(err))
		}
	}

	return outcomeFor(candidates)
}

// infer submits a single-query batch to the pool and awaits it
func (s *Service) infer(ctx context.Context, inquiry domain.Inquiry) ([]domain.AnswerCandidate, error) {
	queries := []domain.QAInput{{
		Question: inquiry.Question,
		Context:  inquiry.Context,
	}}
	engineName := s.engine.Name()

	future, err := offload.Submit(s.pool, func(taskCtx context.Context) ([][]domain.AnswerCandidate, error) {
		start := time.Now()
		answers, err := s.engine.Predict(taskCtx, queries, domain.DefaultTopK, domain.DefaultMaxAnswerLength)

		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.ObserveInference(engineName, status, time.Since(start))

		return answers, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dispatch inference: %w", err)
	}

	awaitCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		awaitCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	answers, err := future.Await(awaitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("%w after %s", ErrInferenceTimeout, s.timeout)
		}
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	if len(answers) == 0 {
		return []domain.AnswerCandidate{}, nil
	}
	return answers[0], nil
}

func (s *Service) lookup(ctx context.Context, key string) ([]domain.AnswerCandidate, bool) {
	candidates, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.RecordCacheLookup("error")
		s.logger.Warn("answer cache lookup failed", zap.Error(err))
		return nil, false
	case !ok:
		s.metrics.RecordCacheLookup("miss")
		return nil, false
	default:
		s.metrics.RecordCacheLookup("hit")
		return candidates, true
	}
}

func outcomeFor(candidates []domain.AnswerCandidate) domain.Outcome {
	if len(candidates) == 0 {
		return domain.NoAnswer()
	}
	return domain.Answered(candidates[0])
}

// Fingerprint derives the cache key of an inquiry for an engine
func Fingerprint(engine string, inquiry domain.Inquiry) string {
	h := sha256.New()
	h.Write([]byte(engine))
	h.Write([]byte{0})
	h.Write([]byte(inquiry.Question))
	h.Write([]byte{0})
	h.Write([]byte(inquiry.Context))
	return hex.EncodeToString(h.Sum(nil))
}
