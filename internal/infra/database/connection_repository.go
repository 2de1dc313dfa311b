package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/lib/pq"

	"github.com/gemlabs/gem-platform/internal/entity"
)

type ConnectionRepository struct {
	DB *sql.DB
}

func NewConnectionRepository(db *sql.DB) *ConnectionRepository {
	return &ConnectionRepository{DB: db}
}

func (r *ConnectionRepository) Get(ctx context.Context, userID, platform string) (*entity.PlatformConnection, error) {
	query := `
		SELECT user_id, platform, connected, user_info, pages, expires_at, created_at
		FROM platform_connections
		WHERE user_id = $1 AND platform = $2
	`

	var conn entity.PlatformConnection
	var userInfo []byte
	var pages pq.StringArray

	err := r.DB.QueryRowContext(ctx, query, userID, platform).Scan(
		&conn.UserID, &conn.Platform, &conn.Connected,
		&userInfo, &pages, &conn.ExpiresAt, &conn.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrConnectionNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(userInfo, &conn.UserInfo); err != nil {
		return nil, err
	}
	conn.Pages = pages
	return &conn, nil
}

func (r *ConnectionRepository) Save(ctx context.Context, conn *entity.PlatformConnection) error {
	userInfo, err := json.Marshal(conn.UserInfo)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO platform_connections (user_id, platform, connected, user_info, pages, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (user_id, platform)
		DO UPDATE SET
			connected = EXCLUDED.connected,
			user_info = EXCLUDED.user_info,
			pages = EXCLUDED.pages,
			expires_at = EXCLUDED.expires_at
	`, conn.UserID, conn.Platform, conn.Connected, userInfo, pq.StringArray(conn.Pages), conn.ExpiresAt)
	return err
}

func (r *ConnectionRepository) Disconnect(ctx context.Context, userID, platform string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE platform_connections
		SET connected = false
		WHERE user_id = $1 AND platform = $2
	`, userID, platform)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrConnectionNotFound
	}
	return nil
}

// ExpireOlderThan flags connections whose tokens lapsed before cutoff.
func (r *ConnectionRepository) ExpireOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE platform_connections
		SET connected = false
		WHERE connected = true AND expires_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}

	affected, err := res.RowsAffected()
	return int(affected), err
}
