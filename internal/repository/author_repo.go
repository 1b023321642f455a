package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/fitra-dev/jejak-api/internal/activitylog"
	"github.com/fitra-dev/jejak-api/internal/models"
)

// AuthorRepository persists authors. Mutations are recorded to the activity
// log after they commit.
type AuthorRepository interface {
	Create(ctx context.Context, author *models.Author) error
	Update(ctx context.Context, author *models.Author, changes map[string]interface{}) error
	Delete(ctx context.Context, author *models.Author) error
	Get(ctx context.Context, id uint) (*models.Author, error)
	List(ctx context.Context) ([]models.Author, error)
	ActivityLogger() *activitylog.Logger
	SetIssuer(activitylog.Subject)
}

type authorRepository struct {
	db      *gorm.DB
	logging *activitylog.Logger
}

// NewAuthorRepository constructs the author repository around its logging
// capability.
func NewAuthorRepository(db *gorm.DB, logging *activitylog.Logger) AuthorRepository {
	return &authorRepository{db: db, logging: logging}
}

func (r *authorRepository) Create(ctx context.Context, author *models.Author) error {
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		return err
	}

	return r.logging.AfterSave(ctx, activitylog.Event{Object: author, Created: true})
}

func (r *authorRepository) Update(ctx context.Context, author *models.Author, changes map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(author).Updates(changes).Error; err != nil {
		return err
	}

	return r.logging.AfterSave(ctx, activitylog.Event{Object: author, Changed: changeKeys(changes)})
}

func (r *authorRepository) Delete(ctx context.Context, author *models.Author) error {
	if err := r.db.WithContext(ctx).Delete(author).Error; err != nil {
		return err
	}

	return r.logging.AfterDelete(ctx, activitylog.Event{Object: author})
}

func (r *authorRepository) Get(ctx context.Context, id uint) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		return nil, err
	}

	return &author, nil
}

func (r *authorRepository) List(ctx context.Context) ([]models.Author, error) {
	var authors []models.Author
	if err := r.db.WithContext(ctx).Order("id").Find(&authors).Error; err != nil {
		return nil, err
	}

	return authors, nil
}

func (r *authorRepository) ActivityLogger() *activitylog.Logger {
	return r.logging
}

func (r *authorRepository) SetIssuer(issuer activitylog.Subject) {
	r.logging.SetIssuer(issuer)
}

// changeKeys extracts the column names from an update patch.
func changeKeys(changes map[string]interface{}) []string {
	keys := make([]string, 0, len(changes))
	for key := range changes {
		keys = append(keys, key)
	}
	return keys
}
