package entity

import (
	"context"
	"time"
)

// SearchEntry is one recorded search query for a user.
type SearchEntry struct {
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchHistoryStore keeps at most MaxSearchHistory entries per user,
// newest first. The in-memory implementation is per-process only and does
// not survive restarts; that limitation is a property of the
// implementation, not of this interface.
type SearchHistoryStore interface {
	Get(ctx context.Context, userID string) ([]SearchEntry, error)
	Append(ctx context.Context, userID string, query string) error
}

const MaxSearchHistory = 20
