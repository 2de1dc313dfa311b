package entity

import (
	"context"
	"errors"
	"time"
)

var ErrConnectionNotFound = errors.New("platform connection not found")

// PlatformConnection tracks per-user OAuth state for an external social
// platform. Created by the redirect callback, invalidated on disconnect.
type PlatformConnection struct {
	UserID    string            `json:"user_id"`
	Platform  string            `json:"platform"`
	Connected bool              `json:"connected"`
	UserInfo  map[string]string `json:"user_info,omitempty"`
	Pages     []string          `json:"pages,omitempty"`
	ExpiresAt time.Time         `json:"expires_at"`
	CreatedAt time.Time         `json:"created_at"`
}

func (c *PlatformConnection) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

type ConnectionRepositoryInterface interface {
	Get(ctx context.Context, userID, platform string) (*PlatformConnection, error)
	Save(ctx context.Context, conn *PlatformConnection) error
	Disconnect(ctx context.Context, userID, platform string) error
	ExpireOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}
