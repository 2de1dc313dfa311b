package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/gemlabs/gem-platform/internal/entity"
)

// TokenExchanger trades an OAuth code for platform identity data. The real
// exchange happens on the remote backend.
type TokenExchanger interface {
	ExchangeCode(ctx context.Context, platform, code string) (userInfo map[string]string, pages []string, expiresAt time.Time, err error)
}

type ConnectPlatformUseCase struct {
	Repo     entity.ConnectionRepositoryInterface
	Exchange TokenExchanger
}

func NewConnectPlatformUseCase(repo entity.ConnectionRepositoryInterface, exchange TokenExchanger) *ConnectPlatformUseCase {
	return &ConnectPlatformUseCase{Repo: repo, Exchange: exchange}
}

func (uc *ConnectPlatformUseCase) HandleCallback(ctx context.Context, userID, platform, code string) (*entity.PlatformConnection, error) {
	if strings.TrimSpace(code) == "" {
		return nil, NewError(KindInvalid, "MISSING_CODE", "authorization code is required")
	}
	if uc.Exchange == nil {
		return nil, NewError(KindUnavailable, "OAUTH_NOT_CONFIGURED", "OAuth is not configured")
	}
	if uc.Repo == nil {
		return nil, NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}

	userInfo, pages, expiresAt, err := uc.Exchange.ExchangeCode(ctx, platform, code)
	if err != nil {
		return nil, NewError(KindUnauthorized, "TOKEN_EXCHANGE_FAILED", "token exchange failed")
	}

	conn := &entity.PlatformConnection{
		UserID:    userID,
		Platform:  platform,
		Connected: true,
		UserInfo:  userInfo,
		Pages:     pages,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := uc.Repo.Save(ctx, conn); err != nil {
		return nil, NewError(KindInternal, "CONNECTION_SAVE_FAILED", "failed to store connection")
	}

	return conn, nil
}

func (uc *ConnectPlatformUseCase) Disconnect(ctx context.Context, userID, platform string) error {
	if uc.Repo == nil {
		return NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}
	if err := uc.Repo.Disconnect(ctx, userID, platform); err != nil {
		if err == entity.ErrConnectionNotFound {
			return NewError(KindNotFound, "CONNECTION_NOT_FOUND", "connection not found")
		}
		return NewError(KindInternal, "CONNECTION_DELETE_FAILED", "failed to disconnect")
	}
	return nil
}
