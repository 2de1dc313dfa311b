package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gemlabs/gem-platform/internal/entity"
)

// RedisSearchHistory is the live search-history store: a per-user Redis
// list trimmed to the newest MaxSearchHistory entries.
type RedisSearchHistory struct {
	Client *redis.Client
}

func NewRedisSearchHistory(client *redis.Client) *RedisSearchHistory {
	return &RedisSearchHistory{Client: client}
}

func historyKey(userID string) string {
	return "search:history:" + userID
}

func (s *RedisSearchHistory) Get(ctx context.Context, userID string) ([]entity.SearchEntry, error) {
	raw, err := s.Client.LRange(ctx, historyKey(userID), 0, int64(entity.MaxSearchHistory)-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]entity.SearchEntry, 0, len(raw))
	for _, item := range raw {
		var e entity.SearchEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			continue // skip entries written by older versions
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *RedisSearchHistory) Append(ctx context.Context, userID, query string) error {
	entry, err := json.Marshal(entity.SearchEntry{Query: query, CreatedAt: time.Now()})
	if err != nil {
		return err
	}

	key := historyKey(userID)
	pipe := s.Client.TxPipeline()
	pipe.LPush(ctx, key, entry)
	pipe.LTrim(ctx, key, 0, int64(entity.MaxSearchHistory)-1)
	_, err = pipe.Exec(ctx)
	return err
}

// MemorySearchHistory is the explicit dev fallback. Per-process only: it is
// not shared across instances and resets on restart.
type MemorySearchHistory struct {
	mu      sync.Mutex
	entries map[string][]entity.SearchEntry
}

func NewMemorySearchHistory() *MemorySearchHistory {
	return &MemorySearchHistory{entries: make(map[string][]entity.SearchEntry)}
}

func (s *MemorySearchHistory) Get(ctx context.Context, userID string) ([]entity.SearchEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.entries[userID]
	out := make([]entity.SearchEntry, len(history))
	copy(out, history)
	return out, nil
}

func (s *MemorySearchHistory) Append(ctx context.Context, userID, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append([]entity.SearchEntry{{Query: query, CreatedAt: time.Now()}}, s.entries[userID]...)
	if len(history) > entity.MaxSearchHistory {
		history = history[:entity.MaxSearchHistory]
	}
	s.entries[userID] = history
	return nil
}
