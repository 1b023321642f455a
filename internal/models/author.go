package models

import "time"

// Author writes articles. Kept separate from User so that article history and
// account history stay distinct audit scopes.
type Author struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogModel identifies authors in activity log model columns.
func (Author) LogModel() string {
	return "Authors"
}

// LogPrimaryKey returns the primary key values in declared order.
func (a Author) LogPrimaryKey() []interface{} {
	return []interface{}{a.ID}
}

// LogSnapshot returns the loggable field values. Password is hidden.
func (a Author) LogSnapshot() map[string]interface{} {
	return map[string]interface{}{
		"id":         a.ID,
		"username":   a.Username,
		"created_at": a.CreatedAt,
		"updated_at": a.UpdatedAt,
	}
}
