package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gemlabs/gem-platform/internal/entity"
)

// OnboardingUseCase drives the wizard as an explicit state machine over a
// fixed Flow. Transitions only move one position at a time; next() persists
// the merged record and refuses to advance unless the persist succeeds, so
// a failed save leaves the user on the same screen with the accumulated
// state intact and the retry resends the same merged payload.
type OnboardingUseCase struct {
	Repo      entity.OnboardingRepositoryInterface
	AllowSkip bool // dev-only escape hatch

	mu       sync.Mutex
	sessions map[string]*wizardSession
}

type wizardSession struct {
	mu        sync.Mutex
	flow      entity.Flow
	screen    int
	fields    map[string]interface{}
	saving    bool
	completed bool
}

type OnboardingState struct {
	Flow         string                 `json:"flow"`
	Screen       entity.Screen          `json:"screen"`
	ScreenIndex  int                    `json:"screen_index"`
	TotalScreens int                    `json:"total_screens"`
	Fields       map[string]interface{} `json:"fields"`
	Completed    bool                   `json:"completed"`
}

func NewOnboardingUseCase(repo entity.OnboardingRepositoryInterface, allowSkip bool) *OnboardingUseCase {
	return &OnboardingUseCase{
		Repo:      repo,
		AllowSkip: allowSkip,
		sessions:  make(map[string]*wizardSession),
	}
}

func (uc *OnboardingUseCase) session(ctx context.Context, userID, flowName string) (*wizardSession, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if s, ok := uc.sessions[userID]; ok {
		return s, nil
	}

	flow, ok := entity.FlowByName(flowName)
	if !ok {
		return nil, NewError(KindInvalid, "UNKNOWN_FLOW", "unknown onboarding flow: "+flowName)
	}

	s := &wizardSession{flow: flow, fields: make(map[string]interface{})}

	// Resume a previously persisted record when one exists.
	if uc.Repo != nil {
		if saved, err := uc.Repo.Get(ctx, userID); err == nil {
			if resumed, ok := entity.FlowByName(saved.Flow); ok {
				s.flow = resumed
			}
			if saved.Screen >= 0 && saved.Screen < len(s.flow.Screens) {
				s.screen = saved.Screen
			}
			for k, v := range saved.Fields {
				s.fields[k] = v
			}
			s.completed = saved.Completed
		} else if !errors.Is(err, entity.ErrOnboardingNotFound) {
			return nil, NewError(KindInternal, "ONBOARDING_READ_FAILED", "failed to load onboarding state")
		}
	}

	uc.sessions[userID] = s
	return s, nil
}

func (uc *OnboardingUseCase) State(ctx context.Context, userID, flowName string) (*OnboardingState, error) {
	s, err := uc.session(ctx, userID, flowName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(), nil
}

// Next merges data into the accumulated record, persists the merge, and
// advances only if the persist succeeds. Calling it with no data advances
// without touching the store. Re-entrant calls while a save is in flight
// are rejected, so a double-submit moves at most one screen.
func (uc *OnboardingUseCase) Next(ctx context.Context, userID, flowName string, data map[string]interface{}) (*OnboardingState, error) {
	s, err := uc.session(ctx, userID, flowName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()

	if s.saving {
		s.mu.Unlock()
		return nil, NewError(KindConflict, "SAVE_IN_FLIGHT", "a save is already in progress")
	}
	if s.completed {
		state := s.state()
		s.mu.Unlock()
		return state, nil
	}

	if len(data) > 0 {
		for k, v := range data {
			s.fields[k] = v
		}

		if uc.Repo == nil {
			s.mu.Unlock()
			return nil, NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
		}

		record := &entity.OnboardingData{
			UserID:    userID,
			Flow:      s.flow.Name,
			Screen:    s.screen,
			Fields:    make(map[string]interface{}, len(s.fields)),
			UpdatedAt: time.Now(),
		}
		for k, v := range s.fields {
			record.Fields[k] = v
		}

		// The save runs outside the session lock so a concurrent call
		// hits the saving guard instead of queueing on the mutex and
		// advancing a second time.
		s.saving = true
		s.mu.Unlock()

		saveErr := uc.Repo.Save(ctx, record)

		s.mu.Lock()
		s.saving = false

		if saveErr != nil {
			s.mu.Unlock()
			// The merged fields stay in the session; the next attempt
			// resends the same payload.
			return nil, NewError(KindInternal, "ONBOARDING_SAVE_FAILED", "failed to save onboarding step")
		}
	}

	defer s.mu.Unlock()

	// A Skip may have finished the wizard while the save was in flight.
	if s.completed {
		return s.state(), nil
	}

	if s.screen == len(s.flow.Screens)-1 {
		if err := uc.complete(ctx, userID, s); err != nil {
			return nil, err
		}
		return s.state(), nil
	}

	s.screen++
	return s.state(), nil
}

// Back moves one screen back without persisting anything.
func (uc *OnboardingUseCase) Back(ctx context.Context, userID, flowName string) (*OnboardingState, error) {
	s, err := uc.session(ctx, userID, flowName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.screen > 0 {
		s.screen--
	}
	return s.state(), nil
}

// Skip marks onboarding complete immediately. Only honored when the
// development escape hatch is enabled.
func (uc *OnboardingUseCase) Skip(ctx context.Context, userID, flowName string) (*OnboardingState, error) {
	if !uc.AllowSkip {
		return nil, NewError(KindUnauthorized, "SKIP_DISABLED", "onboarding skip is disabled")
	}

	s, err := uc.session(ctx, userID, flowName)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := uc.complete(ctx, userID, s); err != nil {
		return nil, err
	}
	return s.state(), nil
}

// complete flips the server-side flag. Caller holds s.mu.
func (uc *OnboardingUseCase) complete(ctx context.Context, userID string, s *wizardSession) error {
	if uc.Repo == nil {
		return NewError(KindUnavailable, "DB_NOT_CONFIGURED", "Supabase not configured")
	}
	if err := uc.Repo.Complete(ctx, userID); err != nil {
		return NewError(KindInternal, "ONBOARDING_COMPLETE_FAILED", "failed to mark onboarding complete")
	}
	s.completed = true

	// A finished wizard does not stay resident; a later request reloads
	// the persisted record.
	uc.mu.Lock()
	delete(uc.sessions, userID)
	uc.mu.Unlock()
	return nil
}

// state snapshots the session. Caller holds s.mu.
func (s *wizardSession) state() *OnboardingState {
	fields := make(map[string]interface{}, len(s.fields))
	for k, v := range s.fields {
		fields[k] = v
	}
	return &OnboardingState{
		Flow:         s.flow.Name,
		Screen:       s.flow.Screens[s.screen],
		ScreenIndex:  s.screen,
		TotalScreens: len(s.flow.Screens),
		Fields:       fields,
		Completed:    s.completed,
	}
}
