package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/gemlabs/gem-platform/internal/entity"
)

func TestLeadRepositoryUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	lead := entity.NewLead("ada@example.com", "Ada", "", entity.LeadSourceWebForm)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO leads").
		WithArgs(lead.ID, lead.Email, "Ada", nil, lead.Source, lead.Status).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).
			AddRow(lead.ID, entity.LeadStatusWarm, now, now))

	repo := NewLeadRepository(db)
	assert.NoError(t, repo.Upsert(context.Background(), lead))

	assert.Equal(t, entity.LeadStatusWarm, lead.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "phone", "source", "status", "created_at", "updated_at"}).
		AddRow("id-1", "a@b.com", "Ada", "", entity.LeadSourceReferral, entity.LeadStatusHot, now, now).
		AddRow("id-2", "c@d.com", "", "", entity.LeadSourceWebForm, entity.LeadStatusWarm, now, now)

	mock.ExpectQuery("SELECT (.+) FROM leads").WillReturnRows(rows)

	repo := NewLeadRepository(db)
	leads, err := repo.List(context.Background())

	assert.NoError(t, err)
	assert.Len(t, leads, 2)
	assert.Equal(t, "a@b.com", leads[0].Email)
	assert.Equal(t, entity.LeadStatusHot, leads[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryUpdateNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("UPDATE leads").
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	repo := NewLeadRepository(db)
	lead := &entity.Lead{ID: "missing", Name: "Ada"}

	err = repo.Update(context.Background(), lead)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM leads").
		WithArgs("id-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewLeadRepository(db)
	assert.NoError(t, repo.Delete(context.Background(), "id-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLeadRepositoryDeleteNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM leads").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewLeadRepository(db)
	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
