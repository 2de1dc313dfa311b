package usecase

import (
	"context"

	"github.com/gemlabs/gem-platform/internal/infra/queue"
)

type QueueProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error
}
