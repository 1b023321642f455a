package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/models"
)

// CommentRepository persists comments. A comment mutation is relevant to the
// comment itself, its article, its user and the system feed, so its logger is
// typically configured with all four scopes.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment, changes map[string]interface{}) error
	Delete(ctx context.Context, comment *models.Comment) error
	Get(ctx context.Context, id uint) (*models.Comment, error)
	ListByArticle(ctx context.Context, articleID uint) ([]models.Comment, error)
	ActivityLogger() *activitylog.Logger
	SetIssuer(activitylog.Subject)
}

type commentRepository struct {
	db      *gorm.DB
	logging *activitylog.Logger
}

// NewCommentRepository constructs the comment repository around its logging
// capability.
func NewCommentRepository(db *gorm.DB, logging *activitylog.Logger) CommentRepository {
	return &commentRepository{db: db, logging: logging}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}

	return r.logging.AfterSave(ctx, activitylog.Event{Object: comment, Created: true})
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment, changes map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(comment).Updates(changes).Error; err != nil {
		return err
	}

	return r.logging.AfterSave(ctx, activitylog.Event{Object: comment, Changed: changeKeys(changes)})
}

func (r *commentRepository) Delete(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Delete(comment).Error; err != nil {
		return err
	}

	return r.logging.AfterDelete(ctx, activitylog.Event{Object: comment})
}

func (r *commentRepository) Get(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}

	return &comment, nil
}

func (r *commentRepository) ListByArticle(ctx context.Context, articleID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Where("article_id = ?", articleID).Order("id").Find(&comments).Error; err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *commentRepository) ActivityLogger() *activitylog.Logger {
	return r.logging
}

func (r *commentRepository) SetIssuer(issuer activitylog.Subject) {
	r.logging.SetIssuer(issuer)
}
