package repository

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/models"
)

func TestCommentCreateFeedsParentScopesFromColumns(t *testing.T) {
	db := setupTestDB(t)
	activityRepo := NewActivityLogRepository(db, "Jejak")
	repo := NewCommentRepository(db, activitylog.New(activitylog.Config{
		Model:       "Comments",
		Scope:       []interface{}{"Comments", "Articles", "Users"},
		FieldScopes: map[string]string{"article_id": "Articles", "user_id": "Users"},
		Sink:        activityRepo,
		Logger:      zerolog.Nop(),
	}))

	comment := models.Comment{ArticleID: 3, UserID: 7, Comment: "nice read"}
	require.NoError(t, repo.Create(context.Background(), &comment))

	articleView, err := activityRepo.FindByScope(context.Background(), activitylog.Ref{Model: "Articles", ID: "3"})
	require.NoError(t, err)
	require.Len(t, articleView, 1)
	require.Equal(t, "Comments", articleView[0].ObjectModel)

	userView, err := activityRepo.FindByScope(context.Background(), activitylog.Ref{Model: "Users", ID: "7"})
	require.NoError(t, err)
	require.Len(t, userView, 1)

	ownView, err := activityRepo.FindByScope(context.Background(), comment)
	require.NoError(t, err)
	require.Len(t, ownView, 1)
	require.Equal(t, articleView[0].Grouping, ownView[0].Grouping)
}

func TestCommentRuntimeLogThroughCapability(t *testing.T) {
	db := setupTestDB(t)
	activityRepo := NewActivityLogRepository(db, "Jejak")
	repo := NewCommentRepository(db, activitylog.New(activitylog.Config{
		Model: "Comments",
		Scope: []interface{}{"Comments", "Users"},
		Sink:  activityRepo,
		Logger: zerolog.Nop(),
	}))

	comment := models.Comment{ArticleID: 1, UserID: 2, Comment: "flagged"}
	require.NoError(t, db.Create(&comment).Error)

	err := repo.ActivityLogger().Log(context.Background(), models.LevelWarning, "comment flagged for review", activitylog.Context{
		Object: &comment,
		Action: "flag",
	})
	require.NoError(t, err)

	entries, err := activityRepo.FindByScope(context.Background(), comment)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, models.LevelWarning, entries[0].Level)
	require.Equal(t, "flag", entries[0].Action)
	require.Equal(t, "comment flagged for review", entries[0].Message)
}
