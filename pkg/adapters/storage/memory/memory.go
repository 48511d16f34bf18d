package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/aescanero/qaserve/pkg/domain"
)

// AnswerCache implements ports.AnswerCache with a bounded in-memory map.
// The oldest entry is evicted when the cache is full.
type AnswerCache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List
}

type entry struct {
	key        string
	candidates []domain.AnswerCandidate
	expiresAt  time.Time
}

// NewAnswerCache creates a new in-memory answer cache. A zero ttl keeps
// entries until they are evicted.
func NewAnswerCache(ttl time.Duration, maxEntries int) *AnswerCache {
	return &AnswerCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

// Get returns the cached candidates for key
func (c *AnswerCache) Get(ctx context.Context, key string) ([]domain.AnswerCandidate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}

	e := el.Value.(*entry)
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.order.Remove(el)
		delete(c.entries, key)
		return nil, false, nil
	}

	return copyCandidates(e.candidates), true, nil
}

// Set stores candidates under key
func (c *AnswerCache) Set(ctx context.Context, key string, candidates []domain.AnswerCandidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = c.now().Add(c.ttl)
	}

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		e.candidates = copyCandidates(candidates)
		e.expiresAt = expiresAt
		c.order.MoveToBack(el)
		return nil
	}

	for c.order.Len() >= c.maxEntries {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*entry).key)
	}

	c.entries[key] = c.order.PushBack(&entry{
		key:        key,
		candidates: copyCandidates(candidates),
		expiresAt:  expiresAt,
	})

	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *AnswerCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Close drops all entries
func (c *AnswerCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*list.Element)
	c.order.Init()
	return nil
}

func copyCandidates(candidates []domain.AnswerCandidate) []domain.AnswerCandidate {
	out := make([]domain.AnswerCandidate, len(candidates))
	copy(out, candidates)
	return out
}
