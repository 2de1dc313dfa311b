package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/gemlabs/gem-platform/internal/entity"
)

// FundingScoreRepository keeps the score log append-only: Append inserts,
// Current reads the newest row, nothing ever updates or deletes.
type FundingScoreRepository struct {
	DB *sql.DB
}

func NewFundingScoreRepository(db *sql.DB) *FundingScoreRepository {
	return &FundingScoreRepository{DB: db}
}

func (r *FundingScoreRepository) Current(ctx context.Context, memberID string) (*entity.FundingScore, error) {
	query := `
		SELECT score, details, created_at
		FROM funding_scores
		WHERE member_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var score entity.FundingScore
	var details []byte

	err := r.DB.QueryRowContext(ctx, query, memberID).
		Scan(&score.Score, &details, &score.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrScoreNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(details, &score.Details); err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *FundingScoreRepository) History(ctx context.Context, memberID string) ([]entity.FundingScore, error) {
	query := `
		SELECT score, details, created_at
		FROM funding_scores
		WHERE member_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.DB.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []entity.FundingScore
	for rows.Next() {
		var score entity.FundingScore
		var details []byte
		if err := rows.Scan(&score.Score, &details, &score.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(details, &score.Details); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}

	return scores, rows.Err()
}

func (r *FundingScoreRepository) Append(ctx context.Context, memberID string, score *entity.FundingScore) error {
	details, err := json.Marshal(score.Details)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO funding_scores (member_id, score, details, created_at)
		VALUES ($1, $2, $3, $4)
	`, memberID, score.Score, details, score.CreatedAt)
	return err
}
