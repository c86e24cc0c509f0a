package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora/internal/infra/dbtest"
	"aurora/internal/models/db_models"
	"aurora/pkg/utils"
)

func newAccount(email, username string) *db_models.Account {
	return &db_models.Account{
		Email:        email,
		Username:     username,
		PasswordHash: "hash",
		IsActive:     true,
		Role:         db_models.RoleUser,
	}
}

func TestAccountRepository_InsertAndFind(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	acc := newAccount("a@x.com", "a")
	require.NoError(t, repo.Insert(ctx, acc))

	byEmail, err := repo.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, acc.ID, byEmail.ID)

	byUsername, err := repo.FindByUsername(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, byUsername)

	byID, err := repo.FindById(ctx, acc.ID.String())
	require.NoError(t, err)
	require.NotNil(t, byID)

	// emails are compared as stored
	missing, err := repo.FindByEmail(ctx, "A@X.COM")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAccountRepository_InsertDuplicate(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newAccount("a@x.com", "a")))

	err := repo.Insert(ctx, newAccount("a@x.com", "other"))
	assert.True(t, errors.Is(err, utils.ErrDuplicateKey), "email: %v", err)

	err = repo.Insert(ctx, newAccount("b@x.com", "a"))
	assert.True(t, errors.Is(err, utils.ErrDuplicateKey), "username: %v", err)

	var count int64
	require.NoError(t, db.Model(&db_models.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAccountRepository_UpdateFieldsAndDelete(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	acc := newAccount("a@x.com", "a")
	require.NoError(t, repo.Insert(ctx, acc))

	require.NoError(t, repo.UpdateFields(ctx, acc.ID.String(), map[string]interface{}{"first_name": "Ann"}))
	got, err := repo.FindById(ctx, acc.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)

	require.NoError(t, repo.Insert(ctx, newAccount("b@x.com", "b")))
	err = repo.UpdateFields(ctx, acc.ID.String(), map[string]interface{}{"username": "b"})
	assert.True(t, errors.Is(err, utils.ErrDuplicateKey))

	require.NoError(t, db.Create(&db_models.Appointment{AccountID: acc.ID, ScheduledAt: 100}).Error)

	require.NoError(t, repo.Delete(ctx, acc.ID.String()))
	got, err = repo.FindById(ctx, acc.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got)

	var appointments int64
	require.NoError(t, db.Model(&db_models.Appointment{}).Count(&appointments).Error)
	assert.Zero(t, appointments)

	err = repo.Delete(ctx, acc.ID.String())
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestAccountRepository_UpsertAdminRepairsFlags(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	existing := newAccount("admin@skincare.com", "admin")
	require.NoError(t, repo.Insert(ctx, existing))

	admin, err := repo.UpsertAdmin(ctx, newAccount("admin@skincare.com", "admin"))
	require.NoError(t, err)
	assert.Equal(t, existing.ID, admin.ID)
	assert.True(t, admin.IsStaff)
	assert.True(t, admin.IsSuperuser)
	assert.True(t, admin.IsActive)
	assert.Equal(t, db_models.RoleAdmin, admin.Role)
	assert.Equal(t, "hash", admin.PasswordHash)
}

func TestAccountRepository_UpsertAdminConcurrent(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpsertAdmin(ctx, newAccount("admin@skincare.com", "admin"))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	var admins []db_models.Account
	require.NoError(t, db.Where("email = ?", "admin@skincare.com").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsStaff && admins[0].IsSuperuser && admins[0].IsActive)
}

func TestAccountRepository_UpsertAdminUsernameTaken(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, newAccount("someone@x.com", "admin")))

	_, err := repo.UpsertAdmin(ctx, newAccount("admin@skincare.com", "admin"))
	assert.True(t, errors.Is(err, utils.ErrDuplicateKey))
}

func TestAccountRepository_List(t *testing.T) {
	db := dbtest.New(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Insert(ctx, newAccount(name+"@x.com", name)))
	}

	page, err := repo.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = repo.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
