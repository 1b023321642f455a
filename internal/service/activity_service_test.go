package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/dto"
	"github.com/fitra-dev/jejak-api/internal/models"
	"github.com/fitra-dev/jejak-api/internal/repository"
)

type memoryActivityRepo struct {
	entries   []models.ActivityLog
	namespace string
}

func (m *memoryActivityRepo) Create(ctx context.Context, entry *models.ActivityLog) error {
	entry.ID = uint64(len(m.entries) + 1)
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryActivityRepo) SaveAll(ctx context.Context, logs []*models.ActivityLog) error {
	for _, entry := range logs {
		if err := m.Create(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}

func (m *memoryActivityRepo) List(ctx context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	matched := make([]models.ActivityLog, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		entry := m.entries[i]
		if filter.Level != "" && entry.Level != filter.Level {
			continue
		}
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		matched = append(matched, entry)
	}
	total := int64(len(matched))
	if filter.PageSize > 0 && len(matched) > filter.PageSize {
		matched = matched[:filter.PageSize]
	}
	return matched, total, nil
}

func (m *memoryActivityRepo) FindByScope(ctx context.Context, scope interface{}) ([]models.ActivityLog, error) {
	model := ""
	id := ""
	switch value := scope.(type) {
	case activitylog.Subject:
		model = value.LogModel()
		id = activitylog.PrimaryKeyString(value)
	case string:
		model = value
	}

	matched := []models.ActivityLog{}
	for i := len(m.entries) - 1; i >= 0; i-- {
		entry := m.entries[i]
		if entry.ScopeModel != model {
			continue
		}
		if id != "" && entry.ScopeID != id {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, nil
}

func (m *memoryActivityRepo) FindSystem(ctx context.Context) ([]models.ActivityLog, error) {
	return m.FindByScope(ctx, m.namespace)
}

func (m *memoryActivityRepo) FindByIssuer(ctx context.Context, issuer activitylog.Subject) ([]models.ActivityLog, error) {
	matched := []models.ActivityLog{}
	for i := len(m.entries) - 1; i >= 0; i-- {
		entry := m.entries[i]
		if entry.IssuerModel == issuer.LogModel() && entry.IssuerID == activitylog.PrimaryKeyString(issuer) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func TestActivityServiceListAppliesFiltersAndPagination(t *testing.T) {
	repo := &memoryActivityRepo{namespace: "Jejak"}
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(context.Background(), &models.ActivityLog{
			ScopeModel: "Articles", ScopeID: "1", Level: models.LevelInfo, Action: models.ActionUpdate,
		}))
	}
	require.NoError(t, repo.Create(context.Background(), &models.ActivityLog{
		ScopeModel: "Articles", ScopeID: "1", Level: models.LevelWarning, Action: models.ActionRuntime,
	}))

	service := NewActivityService(repo, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())

	response, err := service.List(context.Background(), dto.ActivityListRequest{Level: models.LevelWarning})
	require.NoError(t, err)
	require.Len(t, response.Items, 1)
	require.Equal(t, int64(1), response.Pagination.TotalItems)

	response, err = service.List(context.Background(), dto.ActivityListRequest{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, response.Items, 2)
	require.Equal(t, int64(4), response.Pagination.TotalItems)
	require.Equal(t, 2, response.Pagination.TotalPages)
}

func TestActivityServiceListRejectsOversizedPage(t *testing.T) {
	service := NewActivityService(&memoryActivityRepo{}, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())

	_, err := service.List(context.Background(), dto.ActivityListRequest{PageSize: 1000})
	require.Error(t, err)
}

func TestActivityServiceScopeAndIssuerLookups(t *testing.T) {
	repo := &memoryActivityRepo{namespace: "Jejak"}
	require.NoError(t, repo.Create(context.Background(), &models.ActivityLog{
		ScopeModel: "Authors", ScopeID: "5", IssuerModel: "Users", IssuerID: "4", Level: models.LevelInfo,
	}))
	require.NoError(t, repo.Create(context.Background(), &models.ActivityLog{
		ScopeModel: "Jejak", ScopeID: "1", Level: models.LevelInfo,
	}))

	service := NewActivityService(repo, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())

	byScope, err := service.FindByScope(context.Background(), "Authors", "5")
	require.NoError(t, err)
	require.Len(t, byScope, 1)

	system, err := service.FindSystem(context.Background())
	require.NoError(t, err)
	require.Len(t, system, 1)
	require.Equal(t, "Jejak", system[0].ScopeModel)

	byIssuer, err := service.FindByIssuer(context.Background(), "Users", "4")
	require.NoError(t, err)
	require.Len(t, byIssuer, 1)
}
