package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/gemlabs/gem-platform/internal/entity"
)

// Category weights for the readiness score. Unknown categories contribute
// at weight 1 so a new backend category degrades gracefully instead of
// being dropped.
var scoreWeights = map[string]int{
	"traction":   3,
	"team":       2,
	"financials": 2,
	"market":     1,
	"pitch":      1,
}

type FundingScoreUseCase struct {
	Repo entity.FundingScoreRepositoryInterface
}

func NewFundingScoreUseCase(repo entity.FundingScoreRepositoryInterface) *FundingScoreUseCase {
	return &FundingScoreUseCase{Repo: repo}
}

type ScoreView struct {
	Score     int            `json:"score"`
	Tier      string         `json:"tier"`
	Color     string         `json:"color"`
	Details   map[string]int `json:"details"`
	CreatedAt time.Time      `json:"created_at"`
}

func toView(s *entity.FundingScore) ScoreView {
	return ScoreView{
		Score:     s.Score,
		Tier:      entity.ScoreTier(s.Score),
		Color:     entity.TierColor(s.Score),
		Details:   s.Details,
		CreatedAt: s.CreatedAt,
	}
}

func (uc *FundingScoreUseCase) Current(ctx context.Context, memberID string) (*ScoreView, error) {
	if uc.Repo == nil {
		return nil, NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}

	score, err := uc.Repo.Current(ctx, memberID)
	if err != nil {
		if errors.Is(err, entity.ErrScoreNotFound) {
			return nil, NewError(KindNotFound, "SCORE_NOT_FOUND", "no score computed yet")
		}
		return nil, NewError(KindInternal, "SCORE_READ_FAILED", "failed to load score")
	}

	view := toView(score)
	return &view, nil
}

func (uc *FundingScoreUseCase) History(ctx context.Context, memberID string) ([]ScoreView, error) {
	if uc.Repo == nil {
		return nil, NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}

	scores, err := uc.Repo.History(ctx, memberID)
	if err != nil {
		return nil, NewError(KindInternal, "SCORE_READ_FAILED", "failed to load score history")
	}

	views := make([]ScoreView, 0, len(scores))
	for i := range scores {
		views = append(views, toView(&scores[i]))
	}
	return views, nil
}

// Recompute derives a fresh 0-100 score as the weighted mean of the
// category percentages and appends it to the member's log.
func (uc *FundingScoreUseCase) Recompute(ctx context.Context, memberID string, input RecomputeScoreInput) (*ScoreView, error) {
	if len(input.Details) == 0 {
		return nil, NewError(KindInvalid, "VALIDATION_ERROR", "details must not be empty")
	}
	for category, pct := range input.Details {
		if pct < 0 || pct > 100 {
			return nil, NewError(KindInvalid, "VALIDATION_ERROR", "category "+category+" must be within 0-100")
		}
	}

	if uc.Repo == nil {
		return nil, NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}

	score := &entity.FundingScore{
		Score:     ComputeScore(input.Details),
		Details:   input.Details,
		CreatedAt: time.Now(),
	}

	if err := uc.Repo.Append(ctx, memberID, score); err != nil {
		return nil, NewError(KindInternal, "SCORE_WRITE_FAILED", "failed to store score")
	}

	view := toView(score)
	return &view, nil
}

// ComputeScore is the weighted mean of category percentages, clamped to
// [0,100].
func ComputeScore(details map[string]int) int {
	sum, weights := 0, 0
	for category, pct := range details {
		w := scoreWeights[category]
		if w == 0 {
			w = 1
		}
		sum += pct * w
		weights += w
	}
	if weights == 0 {
		return 0
	}

	score := int(float64(sum)/float64(weights) + 0.5)
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
