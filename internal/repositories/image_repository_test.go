package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurora/internal/infra/dbtest"
	"aurora/internal/models/db_models"
	"aurora/pkg/utils"
)

func TestImageRepository_LatestConditions(t *testing.T) {
	db := dbtest.New(t)
	accounts := NewAccountRepository(db)
	repo := NewImageRepository(db)
	ctx := context.Background()

	alice := newAccount("alice@x.com", "alice")
	bob := newAccount("bob@x.com", "bob")
	require.NoError(t, accounts.Insert(ctx, alice))
	require.NoError(t, accounts.Insert(ctx, bob))

	img := &db_models.UploadedImage{AccountID: alice.ID, StorageKey: "k", URL: "/media/k"}
	require.NoError(t, repo.CreateImage(ctx, img))

	older := &db_models.AnalysisResult{ImageID: img.ID, AccountID: alice.ID, Condition: "acne"}
	require.NoError(t, repo.CreateAnalysis(ctx, older))
	// created_at has second resolution
	require.NoError(t, db.Model(older).UpdateColumn("created_at", time.Now().Add(-time.Hour).Unix()).Error)

	newer := &db_models.AnalysisResult{ImageID: img.ID, AccountID: alice.ID, Condition: "eczema"}
	require.NoError(t, repo.CreateAnalysis(ctx, newer))

	latest, err := repo.LatestConditions(ctx, []string{alice.ID.String(), bob.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{alice.ID.String(): "eczema"}, latest)

	list, err := repo.ListImages(ctx, bob.ID.String(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.DeleteImage(ctx, img.ID.String()))
	assert.True(t, errors.Is(repo.DeleteImage(ctx, img.ID.String()), utils.ErrNotFound))

	var analyses int64
	require.NoError(t, db.Model(&db_models.AnalysisResult{}).Count(&analyses).Error)
	assert.Zero(t, analyses)
}
