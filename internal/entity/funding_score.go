package entity

import (
	"context"
	"errors"
	"time"
)

var ErrScoreNotFound = errors.New("funding score not found")

// FundingScore is a 0-100 funding-readiness metric. The current value is
// kept alongside an append-only history log.
type FundingScore struct {
	Score     int            `json:"score"`
	Details   map[string]int `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

const (
	TierVCReady  = "VC-Ready"
	TierEmerging = "Emerging"
	TierBuilding = "Building"
)

// ScoreTier maps a score to its display tier. This is the single definition;
// every surface that renders a score goes through it.
func ScoreTier(score int) string {
	switch {
	case score >= 70:
		return TierVCReady
	case score >= 40:
		return TierEmerging
	default:
		return TierBuilding
	}
}

// TierColor returns the accent color for a tier, keyed off the same
// boundaries as ScoreTier.
func TierColor(score int) string {
	switch ScoreTier(score) {
	case TierVCReady:
		return "green"
	case TierEmerging:
		return "amber"
	default:
		return "gray"
	}
}

type FundingScoreRepositoryInterface interface {
	Current(ctx context.Context, memberID string) (*FundingScore, error)
	History(ctx context.Context, memberID string) ([]FundingScore, error)
	Append(ctx context.Context, memberID string, score *FundingScore) error
}
