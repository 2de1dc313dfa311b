package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/gemlabs/gem-platform/internal/config"
	"github.com/gemlabs/gem-platform/internal/entity"
)

// ManageLeadsUseCase backs the admin lead routes. Reads degrade to the
// fallback store when the database is not configured; writes do not.
type ManageLeadsUseCase struct {
	Repo     entity.LeadRepositoryInterface
	Fallback entity.LeadRepositoryInterface
	DemoMode config.DemoMode
}

func NewManageLeadsUseCase(repo, fallback entity.LeadRepositoryInterface, demoMode config.DemoMode) *ManageLeadsUseCase {
	return &ManageLeadsUseCase{Repo: repo, Fallback: fallback, DemoMode: demoMode}
}

type ListLeadsOutput struct {
	Leads []entity.Lead
	Demo  bool
}

func (uc *ManageLeadsUseCase) List(ctx context.Context) (*ListLeadsOutput, error) {
	if uc.Repo != nil {
		leads, err := uc.Repo.List(ctx)
		if err == nil {
			return &ListLeadsOutput{Leads: leads}, nil
		}
		// A configured database that fails is only masked with demo data
		// when fallbacks are allowed; with DEMO_MODE=off the failure
		// surfaces instead of serving stale file contents.
		if uc.Fallback == nil || !uc.DemoMode.Fallbacks() {
			return nil, NewError(KindInternal, "LEAD_LIST_FAILED", "failed to list leads")
		}
	}

	if uc.Fallback == nil {
		return nil, NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}

	leads, err := uc.Fallback.List(ctx)
	if err != nil {
		return nil, NewError(KindInternal, "LEAD_FALLBACK_FAILED", "failed to read fallback store")
	}
	return &ListLeadsOutput{Leads: leads, Demo: true}, nil
}

func (uc *ManageLeadsUseCase) Update(ctx context.Context, id string, input UpdateLeadInput) (*entity.Lead, error) {
	if uc.Repo == nil {
		return nil, NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}

	leads, err := uc.Repo.List(ctx)
	if err != nil {
		return nil, NewError(KindInternal, "LEAD_LIST_FAILED", "failed to load lead")
	}

	for i := range leads {
		if leads[i].ID != id {
			continue
		}
		lead := leads[i]
		if strings.TrimSpace(input.Name) != "" {
			lead.Name = input.Name
		}
		if strings.TrimSpace(input.Phone) != "" {
			lead.Phone = input.Phone
		}
		if err := uc.Repo.Update(ctx, &lead); err != nil {
			return nil, NewError(KindInternal, "LEAD_UPDATE_FAILED", "failed to update lead")
		}
		return &lead, nil
	}

	return nil, NewError(KindNotFound, "LEAD_NOT_FOUND", "lead not found")
}

func (uc *ManageLeadsUseCase) Delete(ctx context.Context, id string) error {
	if uc.Repo == nil {
		return NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}

	if err := uc.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			return NewError(KindNotFound, "LEAD_NOT_FOUND", "lead not found")
		}
		return NewError(KindInternal, "LEAD_DELETE_FAILED", "failed to delete lead")
	}
	return nil
}
