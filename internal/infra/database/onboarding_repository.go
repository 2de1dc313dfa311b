package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/gemlabs/gem-platform/internal/entity"
)

type OnboardingRepository struct {
	DB *sql.DB
}

func NewOnboardingRepository(db *sql.DB) *OnboardingRepository {
	return &OnboardingRepository{DB: db}
}

func (r *OnboardingRepository) Get(ctx context.Context, userID string) (*entity.OnboardingData, error) {
	query := `
		SELECT flow, screen, fields, completed, updated_at
		FROM onboarding
		WHERE user_id = $1
	`

	data := entity.OnboardingData{UserID: userID}
	var fields []byte

	err := r.DB.QueryRowContext(ctx, query, userID).
		Scan(&data.Flow, &data.Screen, &fields, &data.Completed, &data.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, entity.ErrOnboardingNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(fields, &data.Fields); err != nil {
		return nil, err
	}
	return &data, nil
}

// Save upserts the whole merged record. The wizard always resends the full
// field set, so replaying a save is idempotent.
func (r *OnboardingRepository) Save(ctx context.Context, data *entity.OnboardingData) error {
	fields, err := json.Marshal(data.Fields)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO onboarding (user_id, flow, screen, fields, completed, updated_at)
		VALUES ($1, $2, $3, $4, false, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET
			flow = EXCLUDED.flow,
			screen = EXCLUDED.screen,
			fields = EXCLUDED.fields,
			updated_at = NOW()
	`, data.UserID, data.Flow, data.Screen, fields)
	return err
}

func (r *OnboardingRepository) Complete(ctx context.Context, userID string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO onboarding (user_id, flow, screen, fields, completed, updated_at)
		VALUES ($1, '', 0, '{}', true, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET completed = true, updated_at = NOW()
	`, userID)
	return err
}
