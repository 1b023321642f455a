package models

import (
	"time"

	"gorm.io/datatypes"
)

// Article belongs to an author. Its author_id column feeds the Authors scope
// through the logger's field-to-scope mapping.
type Article struct {
	ID        uint              `gorm:"primaryKey" json:"id"`
	AuthorID  uint              `gorm:"not null;index" json:"author_id"`
	Title     string            `gorm:"size:255;not null" json:"title"`
	Body      string            `gorm:"type:text" json:"body"`
	Published string            `gorm:"size:1;default:N" json:"published"`
	Meta      datatypes.JSONMap `gorm:"type:json" json:"meta,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// LogModel identifies articles in activity log model columns.
func (Article) LogModel() string {
	return "Articles"
}

// LogPrimaryKey returns the primary key values in declared order.
func (a Article) LogPrimaryKey() []interface{} {
	return []interface{}{a.ID}
}

// LogSnapshot returns the loggable field values.
func (a Article) LogSnapshot() map[string]interface{} {
	return map[string]interface{}{
		"id":         a.ID,
		"author_id":  a.AuthorID,
		"title":      a.Title,
		"body":       a.Body,
		"published":  a.Published,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}
}
