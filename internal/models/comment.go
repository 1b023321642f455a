package models

import "time"

// Comment belongs to an article and a user. Both foreign keys feed their
// owning scopes through the logger's field-to-scope mapping.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArticleID uint      `gorm:"not null;index" json:"article_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	Published string    `gorm:"size:1;default:N" json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogModel identifies comments in activity log model columns.
func (Comment) LogModel() string {
	return "Comments"
}

// LogPrimaryKey returns the primary key values in declared order.
func (c Comment) LogPrimaryKey() []interface{} {
	return []interface{}{c.ID}
}

// LogSnapshot returns the loggable field values.
func (c Comment) LogSnapshot() map[string]interface{} {
	return map[string]interface{}{
		"id":         c.ID,
		"article_id": c.ArticleID,
		"user_id":    c.UserID,
		"comment":    c.Comment,
		"published":  c.Published,
		"created_at": c.CreatedAt,
		"updated_at": c.UpdatedAt,
	}
}
