package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/qaserve/pkg/domain"
)

const keyPrefix = "qaserve:answer:"

// AnswerCache implements ports.AnswerCache using Redis
type AnswerCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// NewAnswerCache creates a new Redis answer cache. The cache owns client
// and closes it on Close.
func NewAnswerCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *AnswerCache {
	return &AnswerCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

// Get retrieves cached candidates for key
func (c *AnswerCache) Get(ctx context.Context, key string) ([]domain.AnswerCandidate, bool, error) {
	data, err := c.client.Get(ctx, getAnswerKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get answer: %w", err)
	}

	var candidates []domain.AnswerCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal answer: %w", err)
	}

	return candidates, true, nil
}

// Set stores candidates under key with the cache TTL
func (c *AnswerCache) Set(ctx context.Context, key string, candidates []domain.AnswerCandidate) error {
	if candidates == nil {
		candidates = []domain.AnswerCandidate{}
	}

	data, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}

	if err := c.client.Set(ctx, getAnswerKey(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save answer: %w", err)
	}

	c.logger.Debug("answer cached",
		zap.String("key", key),
		zap.Int("candidates", len(candidates)))

	return nil
}

// Close closes the underlying Redis client
func (c *AnswerCache) Close() error {
	return c.client.Close()
}

// getAnswerKey returns the Redis key for a cached answer
func getAnswerKey(key string) string {
	return fmt.Sprintf("%s%s", keyPrefix, key)
}
