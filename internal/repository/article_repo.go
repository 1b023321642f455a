package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/models"
)

// ArticleRepository persists articles. Mutations are recorded to the
// activity log after they commit; the article's author_id feeds the Authors
// scope through the logger's field mapping.
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article, changes map[string]interface{}) error
	Delete(ctx context.Context, article *models.Article) error
	Get(ctx context.Context, id uint) (*models.Article, error)
	List(ctx context.Context) ([]models.Article, error)
	ActivityLogger() *activitylog.Logger
	SetIssuer(activitylog.Subject)
}

type articleRepository struct {
	db      *gorm.DB
	logging *activitylog.Logger
}

// NewArticleRepository constructs the article repository around its logging
// capability.
func NewArticleRepository(db *gorm.DB, logging *activitylog.Logger) ArticleRepository {
	return &articleRepository{db: db, logging: logging}
}

func (r *articleRepository) Create(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return err
	}

	return r.logging.AfterSave(ctx, activitylog.Event{Object: article, Created: true})
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article, changes map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(article).Updates(changes).Error; err != nil {
		return err
	}

	return r.logging.AfterSave(ctx, activitylog.Event{Object: article, Changed: changeKeys(changes)})
}

func (r *articleRepository) Delete(ctx context.Context, article *models.Article) error {
	if err := r.db.WithContext(ctx).Delete(article).Error; err != nil {
		return err
	}

	return r.logging.AfterDelete(ctx, activitylog.Event{Object: article})
}

func (r *articleRepository) Get(ctx context.Context, id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, id).Error; err != nil {
		return nil, err
	}

	return &article, nil
}

func (r *articleRepository) List(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	if err := r.db.WithContext(ctx).Order("id").Find(&articles).Error; err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *articleRepository) ActivityLogger() *activitylog.Logger {
	return r.logging
}

func (r *articleRepository) SetIssuer(issuer activitylog.Subject) {
	r.logging.SetIssuer(issuer)
}
