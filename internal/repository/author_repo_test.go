package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/models"
)

func newAuthorRepo(t *testing.T) (AuthorRepository, ActivityLogRepository) {
	t.Helper()
	db := setupTestDB(t)
	activityRepo := NewActivityLogRepository(db, "Jejak")
	repo := NewAuthorRepository(db, activitylog.New(activitylog.Config{
		Model:       "Authors",
		SystemScope: true,
		Namespace:   "Jejak",
		Sink:        activityRepo,
		Logger:      zerolog.Nop(),
	}))
	return repo, activityRepo
}

func TestAuthorCreateFansOutToConfiguredScopes(t *testing.T) {
	repo, activityRepo := newAuthorRepo(t)

	author := models.Author{Username: "mariano", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), &author))
	require.NotZero(t, author.ID)

	own, err := activityRepo.FindByScope(context.Background(), author)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Equal(t, models.ActionCreate, own[0].Action)
	require.Equal(t, "Authors", own[0].ObjectModel)

	system, err := activityRepo.FindSystem(context.Background())
	require.NoError(t, err)
	require.Len(t, system, 1)
	require.Equal(t, own[0].Grouping, system[0].Grouping)
}

func TestAuthorUpdateLogsChangedColumnsOnly(t *testing.T) {
	repo, activityRepo := newAuthorRepo(t)

	author := models.Author{Username: "mariano", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), &author))

	require.NoError(t, repo.Update(context.Background(), &author, map[string]interface{}{"username": "renamed"}))
	require.Equal(t, "renamed", author.Username)

	entries, err := activityRepo.FindByScope(context.Background(), author)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, models.ActionUpdate, entries[0].Action)
	require.Equal(t, models.LogData{"username": "renamed"}, entries[0].Data)
}

func TestAuthorDeleteSnapshotExcludesPassword(t *testing.T) {
	repo, activityRepo := newAuthorRepo(t)

	author := models.Author{Username: "mariano", Password: "sekret-hash"}
	require.NoError(t, repo.Create(context.Background(), &author))
	require.NoError(t, repo.Delete(context.Background(), &author))

	entries, err := activityRepo.FindByScope(context.Background(), author)
	require.NoError(t, err)
	require.Equal(t, models.ActionDelete, entries[0].Action)
	require.NotContains(t, entries[0].Data, "password")

	// the raw stored payload must not leak the value either
	var raw []string
	require.NoError(t,
		activityRepo.(*activityLogRepository).db.
			Model(&models.ActivityLog{}).
			Where("action = ?", models.ActionDelete).
			Pluck("data", &raw).Error)
	require.Len(t, raw, 1)
	require.NotContains(t, raw[0], "password")
	require.NotContains(t, raw[0], "sekret-hash")
	require.Contains(t, raw[0], "mariano")
}

func TestAuthorIssuerTakenFromRequestContext(t *testing.T) {
	repo, activityRepo := newAuthorRepo(t)

	kateCtx := activitylog.WithIssuer(context.Background(), &models.User{ID: 4, Username: "kate"})
	bobCtx := activitylog.WithIssuer(context.Background(), &models.User{ID: 2, Username: "bob"})

	// two requests mutate through the same repository instance
	kateAuthor := models.Author{Username: "mariano", Password: "hash"}
	require.NoError(t, repo.Create(kateCtx, &kateAuthor))
	bobAuthor := models.Author{Username: "larry", Password: "hash"}
	require.NoError(t, repo.Create(bobCtx, &bobAuthor))

	kateRows, err := activityRepo.FindByIssuer(context.Background(), models.User{ID: 4})
	require.NoError(t, err)
	require.Len(t, kateRows, 2)
	for _, row := range kateRows {
		require.Equal(t, activitylog.PrimaryKeyString(kateAuthor), row.ObjectID)
	}

	bobRows, err := activityRepo.FindByIssuer(context.Background(), models.User{ID: 2})
	require.NoError(t, err)
	require.Len(t, bobRows, 2)
	for _, row := range bobRows {
		require.Equal(t, activitylog.PrimaryKeyString(bobAuthor), row.ObjectID)
	}
}

func TestAuthorIssuerAttributedOnMutation(t *testing.T) {
	repo, activityRepo := newAuthorRepo(t)
	repo.SetIssuer(&models.User{ID: 4, Username: "kate"})

	author := models.Author{Username: "mariano", Password: "hash"}
	require.NoError(t, repo.Create(context.Background(), &author))

	entries, err := activityRepo.FindByIssuer(context.Background(), models.User{ID: 4})
	require.NoError(t, err)
	require.Len(t, entries, 2, "issuer recorded on both scope rows")
}
