package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gemlabs/gem-platform/internal/entity"
)

// ConnectionExpiryWorker sweeps OAuth connections whose tokens have lapsed
// and flips them to disconnected, so the UI never shows a connection that
// can no longer post.
type ConnectionExpiryWorker struct {
	repo         entity.ConnectionRepositoryInterface
	tickInterval time.Duration
	logger       *zap.Logger
}

func NewConnectionExpiryWorker(repo entity.ConnectionRepositoryInterface, logger *zap.Logger) *ConnectionExpiryWorker {
	return &ConnectionExpiryWorker{
		repo:         repo,
		tickInterval: 5 * time.Minute,
		logger:       logger,
	}
}

func (w *ConnectionExpiryWorker) Start(ctx context.Context) {
	w.logger.Info("connection expiry worker started")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("connection expiry worker stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *ConnectionExpiryWorker) sweep(ctx context.Context) {
	expired, err := w.repo.ExpireOlderThan(ctx, time.Now())
	if err != nil {
		w.logger.Error("failed to expire connections", zap.Error(err))
		return
	}
	if expired > 0 {
		w.logger.Info("expired platform connections", zap.Int("count", expired))
	}
}
