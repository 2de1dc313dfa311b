package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gemlabs/gem-platform/internal/config"
	"github.com/gemlabs/gem-platform/internal/entity"
)

func TestListPrefersLiveDatabase(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return([]entity.Lead{{ID: "1", Email: "a@b.com"}}, nil)

	uc := NewManageLeadsUseCase(repo, new(MockLeadRepository), config.DemoAuto)

	out, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out.Leads, 1)
	assert.False(t, out.Demo)
}

func TestListFallsBackWhenDatabaseMissing(t *testing.T) {
	fallback := new(MockLeadRepository)
	fallback.On("List", mock.Anything).Return([]entity.Lead{{ID: "1", Email: "a@b.com"}}, nil)

	uc := NewManageLeadsUseCase(nil, fallback, config.DemoAuto)

	out, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out.Leads, 1)
	assert.True(t, out.Demo)
}

func TestListFallsBackWhenDatabaseErrors(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	fallback := new(MockLeadRepository)
	fallback.On("List", mock.Anything).Return([]entity.Lead{}, nil)

	uc := NewManageLeadsUseCase(repo, fallback, config.DemoAuto)

	out, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.True(t, out.Demo)
}

// With fallbacks disabled, a configured database that fails surfaces the
// error instead of serving stale file data.
func TestListDemoOffSurfacesDatabaseError(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("connection refused"))

	fallback := new(MockLeadRepository)

	uc := NewManageLeadsUseCase(repo, fallback, config.DemoOff)

	_, err := uc.List(context.Background())
	assert.Equal(t, KindInternal, KindOf(err))
	fallback.AssertNotCalled(t, "List", mock.Anything)
}

// The unconfigured-database fallback is product behavior, not a masked
// failure, so it holds even with fallbacks disabled.
func TestListDemoOffStillServesFileStoreWithoutDatabase(t *testing.T) {
	fallback := new(MockLeadRepository)
	fallback.On("List", mock.Anything).Return([]entity.Lead{{ID: "1", Email: "a@b.com"}}, nil)

	uc := NewManageLeadsUseCase(nil, fallback, config.DemoOff)

	out, err := uc.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, out.Leads, 1)
	assert.True(t, out.Demo)
}

func TestUpdateRequiresDatabase(t *testing.T) {
	uc := NewManageLeadsUseCase(nil, new(MockLeadRepository), config.DemoAuto)

	_, err := uc.Update(context.Background(), "1", UpdateLeadInput{Name: "Ada"})
	assert.Equal(t, KindUnavailable, KindOf(err))
}

func TestUpdateUnknownLead(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return([]entity.Lead{}, nil)

	uc := NewManageLeadsUseCase(repo, nil, config.DemoAuto)

	_, err := uc.Update(context.Background(), "missing", UpdateLeadInput{Name: "Ada"})
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeleteUnknownLead(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Delete", mock.Anything, "missing").Return(entity.ErrLeadNotFound)

	uc := NewManageLeadsUseCase(repo, nil, config.DemoAuto)

	err := uc.Delete(context.Background(), "missing")
	assert.Equal(t, KindNotFound, KindOf(err))
}
