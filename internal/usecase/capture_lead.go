package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/gemlabs/gem-platform/internal/entity"
	"github.com/gemlabs/gem-platform/internal/infra/queue"
)

type CaptureLeadUseCase struct {
	Repo   entity.LeadRepositoryInterface
	Queue  QueueProducerInterface
	Logger *zap.Logger
}

func NewCaptureLeadUseCase(
	repo entity.LeadRepositoryInterface,
	producer QueueProducerInterface,
	logger *zap.Logger,
) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{
		Repo:   repo,
		Queue:  producer,
		Logger: logger,
	}
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*CaptureLeadOutput, error) {
	validationErrors := ValidateCaptureLeadInput(input)
	if len(validationErrors) > 0 {
		errMsg := "validation failed: "
		for _, e := range validationErrors {
			errMsg += e.Field + " (" + e.Message + "), "
		}
		return nil, NewError(KindInvalid, "VALIDATION_ERROR", errMsg)
	}

	if uc.Repo == nil {
		// Write paths fail loudly when the database is missing; only read
		// paths are allowed to degrade.
		return nil, NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}

	lead := entity.NewLead(input.Email, input.Name, input.Phone, input.Source)

	if err := uc.Repo.Upsert(ctx, lead); err != nil {
		return nil, NewError(KindInternal, "LEAD_UPSERT_FAILED", "failed to capture lead")
	}

	// Notification is best-effort: a queue outage must not lose the lead.
	if uc.Queue != nil {
		payload := queue.LeadCapturedPayload{
			LeadID: lead.ID,
			Email:  lead.Email,
			Name:   lead.Name,
			Source: lead.Source,
			Status: lead.Status,
		}
		if err := uc.Queue.PublishLeadCaptured(ctx, payload); err != nil {
			uc.Logger.Warn("lead captured but event publish failed",
				zap.String("lead_id", lead.ID), zap.Error(err))
		}
	}

	return &CaptureLeadOutput{ID: lead.ID, Status: lead.Status}, nil
}
