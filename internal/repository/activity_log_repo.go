package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/models"
	"github.com/fitra-dev/jejak-api/internal/observability"
)

// ActivityLogFilter narrows paginated activity log queries.
type ActivityLogFilter struct {
	Page        int
	PageSize    int
	Level       string
	Action      string
	ObjectModel string
	ObjectID    string
	Since       time.Time
}

// ActivityLogRepository persists and queries the audit trail. It doubles as
// the fan-out persistence sink for the logging engine.
type ActivityLogRepository interface {
	activitylog.Sink
	Create(ctx context.Context, entry *models.ActivityLog) error
	List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error)
	// FindByScope accepts an activitylog.Subject (filters model and id) or a
	// bare scope name string (filters model only). Newest rows first.
	FindByScope(ctx context.Context, scope interface{}) ([]models.ActivityLog, error)
	FindSystem(ctx context.Context) ([]models.ActivityLog, error)
	FindByIssuer(ctx context.Context, issuer activitylog.Subject) ([]models.ActivityLog, error)
}

type activityLogRepository struct {
	db        *gorm.DB
	namespace string
}

// NewActivityLogRepository constructs the activity log repository. The
// namespace identifies the system-wide scope used by FindSystem.
func NewActivityLogRepository(db *gorm.DB, namespace string) ActivityLogRepository {
	return &activityLogRepository{db: db, namespace: namespace}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// SaveAll writes each row independently, outside any shared transaction. The
// primary mutation has already committed when this runs, so a failing row
// aborts the remainder but never rolls back rows already written.
func (r *activityLogRepository) SaveAll(ctx context.Context, logs []*models.ActivityLog) error {
	observability.ActivityFanoutSize().Observe(float64(len(logs)))

	for _, entry := range logs {
		if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
			observability.ActivityWriteErrors().Inc()
			return err
		}
		observability.ActivityRows().WithLabelValues(entry.Action).Inc()
	}

	return nil
}

func (r *activityLogRepository) List(ctx context.Context, filter ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})

	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.ObjectModel != "" {
		query = query.Where("object_model = ?", filter.ObjectModel)
	}
	if filter.ObjectID != "" {
		query = query.Where("object_id = ?", filter.ObjectID)
	}
	if !filter.Since.IsZero() {
		query = query.Where("created_at >= ?", filter.Since)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var entries []models.ActivityLog
	if err := query.Order("id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *activityLogRepository) FindByScope(ctx context.Context, scope interface{}) ([]models.ActivityLog, error) {
	query := r.db.WithContext(ctx).Model(&models.ActivityLog{})

	switch value := scope.(type) {
	case activitylog.Subject:
		query = query.Where("scope_model = ?", value.LogModel())
		if id := activitylog.PrimaryKeyString(value); id != "" {
			query = query.Where("scope_id = ?", id)
		}
	case string:
		query = query.Where("scope_model = ?", value)
	default:
		return []models.ActivityLog{}, nil
	}

	var entries []models.ActivityLog
	if err := query.Order("id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *activityLogRepository) FindSystem(ctx context.Context) ([]models.ActivityLog, error) {
	return r.FindByScope(ctx, r.namespace)
}

func (r *activityLogRepository) FindByIssuer(ctx context.Context, issuer activitylog.Subject) ([]models.ActivityLog, error) {
	if issuer == nil {
		return []models.ActivityLog{}, nil
	}

	var entries []models.ActivityLog
	err := r.db.WithContext(ctx).
		Where("issuer_model = ? AND issuer_id = ?", issuer.LogModel(), activitylog.PrimaryKeyString(issuer)).
		Order("id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}
