package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gemlabs/gem-platform/internal/entity"
)

func tempStore(t *testing.T) *LeadStore {
	t.Helper()
	return NewLeadStore(filepath.Join(t.TempDir(), "leads.json"))
}

func TestLeadStoreMissingFileReadsEmpty(t *testing.T) {
	store := tempStore(t)

	leads, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, leads)
}

func TestLeadStoreUpsertAndList(t *testing.T) {
	store := tempStore(t)

	lead := entity.NewLead("a@b.com", "Ada", "", entity.LeadSourceWebForm)
	assert.NoError(t, store.Upsert(context.Background(), lead))

	leads, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, leads, 1)
	assert.Equal(t, "a@b.com", leads[0].Email)
	assert.Equal(t, entity.LeadStatusWarm, leads[0].Status)
}

func TestLeadStoreUpsertMergesOnEmail(t *testing.T) {
	store := tempStore(t)

	first := entity.NewLead("a@b.com", "Ada", "", entity.LeadSourceWebForm)
	assert.NoError(t, store.Upsert(context.Background(), first))

	second := entity.NewLead("a@b.com", "", "11999990000", entity.LeadSourceReferral)
	assert.NoError(t, store.Upsert(context.Background(), second))

	leads, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, leads, 1)
	// Merge keeps the earlier name and picks up the new phone.
	assert.Equal(t, "Ada", leads[0].Name)
	assert.Equal(t, "11999990000", leads[0].Phone)
	assert.Equal(t, first.ID, second.ID) // upsert echoes the stored record
}

func TestLeadStoreFileShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	store := NewLeadStore(path)

	assert.NoError(t, store.Upsert(context.Background(), entity.NewLead("a@b.com", "", "", entity.LeadSourceWebForm)))
	assert.NoError(t, store.Upsert(context.Background(), entity.NewLead("c@d.com", "", "", entity.LeadSourceSocial)))

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)

	var file struct {
		Leads []entity.Lead `json:"leads"`
		Count int           `json:"count"`
	}
	assert.NoError(t, json.Unmarshal(raw, &file))
	assert.Len(t, file.Leads, 2)
	assert.Equal(t, 2, file.Count)
}

func TestLeadStoreDelete(t *testing.T) {
	store := tempStore(t)

	lead := entity.NewLead("a@b.com", "", "", entity.LeadSourceWebForm)
	assert.NoError(t, store.Upsert(context.Background(), lead))

	assert.NoError(t, store.Delete(context.Background(), lead.ID))
	assert.ErrorIs(t, store.Delete(context.Background(), lead.ID), entity.ErrLeadNotFound)
}

func TestLeadStoreUpdateUnknown(t *testing.T) {
	store := tempStore(t)

	lead := entity.NewLead("a@b.com", "", "", entity.LeadSourceWebForm)
	assert.ErrorIs(t, store.Update(context.Background(), lead), entity.ErrLeadNotFound)
}

func TestLeadStoreSurvivesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.json")
	assert.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewLeadStore(path)

	leads, err := store.List(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, leads)
}
