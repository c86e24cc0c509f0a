package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora/internal/infra/dbtest"
	"aurora/internal/models/db_models"
	"aurora/pkg/utils"
)

func TestAppointmentRepository(t *testing.T) {
	db := dbtest.New(t)
	accounts := NewAccountRepository(db)
	repo := NewAppointmentRepository(db)
	ctx := context.Background()

	alice := newAccount("alice@x.com", "alice")
	bob := newAccount("bob@x.com", "bob")
	require.NoError(t, accounts.Insert(ctx, alice))
	require.NoError(t, accounts.Insert(ctx, bob))

	first := &db_models.Appointment{AccountID: alice.ID, ScheduledAt: 100, Status: db_models.AppointmentRequested}
	second := &db_models.Appointment{AccountID: alice.ID, ScheduledAt: 200, Status: db_models.AppointmentRequested}
	other := &db_models.Appointment{AccountID: bob.ID, ScheduledAt: 300, Status: db_models.AppointmentRequested}
	for _, a := range []*db_models.Appointment{first, second, other} {
		require.NoError(t, repo.Create(ctx, a))
	}

	own, err := repo.ListByAccount(ctx, alice.ID.String(), 1, 10)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, int64(200), own[0].ScheduledAt)

	all, err := repo.ListByAccount(ctx, "", 1, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	first.Status = db_models.AppointmentCancelled
	require.NoError(t, repo.Save(ctx, first))
	got, err := repo.GetByID(ctx, first.ID.String())
	require.NoError(t, err)
	assert.Equal(t, db_models.AppointmentCancelled, got.Status)

	require.NoError(t, repo.Delete(ctx, first.ID.String()))
	assert.True(t, errors.Is(repo.Delete(ctx, first.ID.String()), utils.ErrNotFound))
}
