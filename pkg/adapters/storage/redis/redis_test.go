package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aescanero/qaserve/pkg/domain"
)

func TestGetAnswerKey(t *testing.T) {
	if got := getAnswerKey("abc"); got != "qaserve:answer:abc" {
		t.Errorf("getAnswerKey() = %q, want qaserve:answer:abc", got)
	}
}

func TestAnswerCache_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	c := NewAnswerCache(client, time.Minute, zap.NewNop())
	defer c.Close()

	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "sky"); err == nil || ok {
		t.Errorf("Get() = %v, %v, want error", ok, err)
	}

	err := c.Set(ctx, "sky", []domain.AnswerCandidate{{Text: "blue"}})
	if err == nil {
		t.Error("Set() error = nil, want error")
	}
}
