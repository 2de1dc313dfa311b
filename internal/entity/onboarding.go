package entity

import (
	"context"
	"errors"
	"time"
)

var ErrOnboardingNotFound = errors.New("onboarding record not found")

// Screen is one step of the onboarding wizard. The full set covers both
// flows; each Flow walks an ordered subset.
type Screen string

const (
	ScreenWelcome   Screen = "welcome"
	ScreenProfile   Screen = "profile"
	ScreenCategory  Screen = "category"
	ScreenGoals     Screen = "goals"
	ScreenAudience  Screen = "audience"
	ScreenMessaging Screen = "messaging"
	ScreenConnect   Screen = "connect"
	ScreenReview    Screen = "review"
	ScreenListing   Screen = "listing"
	ScreenComplete  Screen = "complete"
)

// Flow is the fixed, ordered screen sequence for a product variant.
// Transitions only ever move one position forward or back within the slice,
// so an out-of-sequence jump is unrepresentable.
type Flow struct {
	Name    string
	Screens []Screen
}

// FounderFlow is the 8-screen community onboarding; MarketplaceFlow is the
// 5-screen listing onboarding.
var (
	FounderFlow = Flow{
		Name: "founder",
		Screens: []Screen{
			ScreenWelcome, ScreenProfile, ScreenCategory, ScreenGoals,
			ScreenAudience, ScreenMessaging, ScreenConnect, ScreenReview,
		},
	}
	MarketplaceFlow = Flow{
		Name: "marketplace",
		Screens: []Screen{
			ScreenWelcome, ScreenProfile, ScreenListing, ScreenMessaging,
			ScreenReview,
		},
	}
)

func FlowByName(name string) (Flow, bool) {
	switch name {
	case FounderFlow.Name:
		return FounderFlow, true
	case MarketplaceFlow.Name:
		return MarketplaceFlow, true
	}
	return Flow{}, false
}

// OnboardingData is the progressively-filled wizard record. Fields is the
// merged union of everything submitted so far, persisted after every step.
type OnboardingData struct {
	UserID    string                 `json:"user_id"`
	Flow      string                 `json:"flow"`
	Screen    int                    `json:"screen"`
	Fields    map[string]interface{} `json:"fields"`
	Completed bool                   `json:"completed"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type OnboardingRepositoryInterface interface {
	Get(ctx context.Context, userID string) (*OnboardingData, error)
	Save(ctx context.Context, data *OnboardingData) error
	Complete(ctx context.Context, userID string) error
}
