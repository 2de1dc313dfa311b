package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gemlabs/gem-platform/internal/entity"
)

type MockOnboardingRepository struct {
	mock.Mock
}

func (m *MockOnboardingRepository) Get(ctx context.Context, userID string) (*entity.OnboardingData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OnboardingData), args.Error(1)
}

func (m *MockOnboardingRepository) Save(ctx context.Context, data *entity.OnboardingData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *MockOnboardingRepository) Complete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func freshRepo() *MockOnboardingRepository {
	repo := new(MockOnboardingRepository)
	repo.On("Get", mock.Anything, mock.Anything).Return(nil, entity.ErrOnboardingNotFound)
	return repo
}

func TestNextAdvancesWhenSaveSucceeds(t *testing.T) {
	repo := freshRepo()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	uc := NewOnboardingUseCase(repo, false)

	state, err := uc.Next(context.Background(), "user-1", "founder",
		map[string]interface{}{"name": "Ada"})

	assert.NoError(t, err)
	assert.Equal(t, 1, state.ScreenIndex)
	assert.Equal(t, entity.ScreenProfile, state.Screen)
	assert.Equal(t, "Ada", state.Fields["name"])
}

func TestNextDoesNotAdvanceWhenSaveFails(t *testing.T) {
	repo := freshRepo()
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()

	uc := NewOnboardingUseCase(repo, false)

	_, err := uc.Next(context.Background(), "user-1", "founder",
		map[string]interface{}{"name": "Ada"})
	assert.Error(t, err)

	// Screen stayed put, accumulated state retained.
	state, err := uc.State(context.Background(), "user-1", "founder")
	assert.NoError(t, err)
	assert.Equal(t, 0, state.ScreenIndex)
	assert.Equal(t, "Ada", state.Fields["name"])

	// The retry resends the same merged payload and advances.
	state, err = uc.Next(context.Background(), "user-1", "founder", map[string]interface{}{"name": "Ada"})
	assert.NoError(t, err)
	assert.Equal(t, 1, state.ScreenIndex)
}

func TestNextWithoutDataAdvancesWithoutPersisting(t *testing.T) {
	repo := freshRepo()

	uc := NewOnboardingUseCase(repo, false)

	state, err := uc.Next(context.Background(), "user-1", "founder", nil)

	assert.NoError(t, err)
	assert.Equal(t, 1, state.ScreenIndex)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRetryMergesNewDataIntoOldPayload(t *testing.T) {
	repo := freshRepo()
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	var saved *entity.OnboardingData
	repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*entity.OnboardingData)
	}).Return(nil).Once()

	uc := NewOnboardingUseCase(repo, false)

	_, err := uc.Next(context.Background(), "user-1", "founder",
		map[string]interface{}{"name": "Ada"})
	assert.Error(t, err)

	_, err = uc.Next(context.Background(), "user-1", "founder",
		map[string]interface{}{"category": "fintech"})
	assert.NoError(t, err)

	// Second save carries both the old and the new fields.
	assert.Equal(t, "Ada", saved.Fields["name"])
	assert.Equal(t, "fintech", saved.Fields["category"])
}

func TestBackDecrementsWithoutPersisting(t *testing.T) {
	repo := freshRepo()
	repo.On("Save", mock.Anything, mock.Anything).Return(nil)

	uc := NewOnboardingUseCase(repo, false)

	_, err := uc.Next(context.Background(), "user-1", "founder",
		map[string]interface{}{"name": "Ada"})
	assert.NoError(t, err)

	state, err := uc.Back(context.Background(), "user-1", "founder")
	assert.NoError(t, err)
	assert.Equal(t, 0, state.ScreenIndex)

	state, err = uc.Back(context.Background(), "user-1", "founder")
	assert.NoError(t, err)
	assert.Equal(t, 0, state.ScreenIndex) // clamped at the first screen
}

func TestFinalScreenMarksComplete(t *testing.T) {
	repo := freshRepo()
	repo.On("Complete", mock.Anything, "user-1").Return(nil)

	uc := NewOnboardingUseCase(repo, false)

	// The marketplace flow has 5 screens; walk to the last one data-free.
	var state *OnboardingState
	var err error
	for i := 0; i < 4; i++ {
		state, err = uc.Next(context.Background(), "user-1", "marketplace", nil)
		assert.NoError(t, err)
	}
	assert.Equal(t, 4, state.ScreenIndex)
	assert.False(t, state.Completed)

	state, err = uc.Next(context.Background(), "user-1", "marketplace", nil)
	assert.NoError(t, err)
	assert.True(t, state.Completed)
	repo.AssertCalled(t, "Complete", mock.Anything, "user-1")
}

func TestSkipHonorsEscapeHatchFlag(t *testing.T) {
	repo := freshRepo()
	repo.On("Complete", mock.Anything, "user-1").Return(nil)

	disabled := NewOnboardingUseCase(repo, false)
	_, err := disabled.Skip(context.Background(), "user-1", "founder")
	assert.Equal(t, KindUnauthorized, KindOf(err))

	enabled := NewOnboardingUseCase(repo, true)
	state, err := enabled.Skip(context.Background(), "user-1", "founder")
	assert.NoError(t, err)
	assert.True(t, state.Completed)
}

func TestUnknownFlowIsRejected(t *testing.T) {
	uc := NewOnboardingUseCase(freshRepo(), false)

	_, err := uc.Next(context.Background(), "user-1", "enterprise", nil)
	assert.Equal(t, KindInvalid, KindOf(err))
}

func TestFlowLengths(t *testing.T) {
	assert.Len(t, entity.FounderFlow.Screens, 8)
	assert.Len(t, entity.MarketplaceFlow.Screens, 5)
}

func TestResumeFromPersistedRecord(t *testing.T) {
	repo := new(MockOnboardingRepository)
	repo.On("Get", mock.Anything, "user-1").Return(&entity.OnboardingData{
		UserID: "user-1",
		Flow:   "founder",
		Screen: 3,
		Fields: map[string]interface{}{"name": "Ada"},
	}, nil)

	uc := NewOnboardingUseCase(repo, false)

	state, err := uc.State(context.Background(), "user-1", "founder")
	assert.NoError(t, err)
	assert.Equal(t, 3, state.ScreenIndex)
	assert.Equal(t, entity.ScreenGoals, state.Screen)
	assert.Equal(t, "Ada", state.Fields["name"])
}

// A save still in flight rejects a second next() instead of letting it
// queue on the session lock and advance a second screen.
func TestNextRejectsReentrantCallDuringSave(t *testing.T) {
	repo := freshRepo()

	saveStarted := make(chan struct{})
	releaseSave := make(chan struct{})
	repo.On("Save", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		close(saveStarted)
		<-releaseSave
	}).Return(nil)

	uc := NewOnboardingUseCase(repo, false)

	firstDone := make(chan error, 1)
	go func() {
		_, err := uc.Next(context.Background(), "user-1", "founder", map[string]interface{}{"company": "GEM"})
		firstDone <- err
	}()

	<-saveStarted

	_, err := uc.Next(context.Background(), "user-1", "founder", map[string]interface{}{"company": "other"})
	assert.Equal(t, KindConflict, KindOf(err))

	close(releaseSave)
	assert.NoError(t, <-firstDone)

	state, err := uc.State(context.Background(), "user-1", "founder")
	assert.NoError(t, err)
	assert.Equal(t, 1, state.ScreenIndex)
	repo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCompletedSessionIsEvicted(t *testing.T) {
	repo := freshRepo()
	repo.On("Complete", mock.Anything, "user-1").Return(nil)

	uc := NewOnboardingUseCase(repo, true)

	state, err := uc.Skip(context.Background(), "user-1", "founder")
	assert.NoError(t, err)
	assert.True(t, state.Completed)

	uc.mu.Lock()
	_, resident := uc.sessions["user-1"]
	uc.mu.Unlock()
	assert.False(t, resident)
}
