package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

// Lead status is derived at capture time, never taken from client input.
const (
	LeadStatusHot  = "hot"
	LeadStatusWarm = "warm"
	LeadStatusCold = "cold"
)

const (
	LeadSourceWebForm  = "web_form"
	LeadSourceListing  = "listing_page"
	LeadSourceReferral = "referral"
	LeadSourceSocial   = "social"
)

type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLead derives the initial status from the capture source: referrals and
// listing-page contacts have shown real intent, form fills start warm,
// everything else starts cold.
func NewLead(email, name, phone, source string) *Lead {
	now := time.Now()

	status := LeadStatusCold
	switch source {
	case LeadSourceReferral, LeadSourceListing:
		status = LeadStatusHot
	case LeadSourceWebForm:
		status = LeadStatusWarm
	}

	return &Lead{
		ID:        uuid.New().String(),
		Email:     email,
		Name:      name,
		Phone:     phone,
		Source:    source,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type LeadRepositoryInterface interface {
	Upsert(ctx context.Context, lead *Lead) error
	List(ctx context.Context) ([]Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
}
