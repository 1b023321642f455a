package models

import "time"

// User is an account that can authenticate and act as the issuer of logged
// actions.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogModel identifies users in activity log model columns.
func (User) LogModel() string {
	return "Users"
}

// LogPrimaryKey returns the primary key values in declared order.
func (u User) LogPrimaryKey() []interface{} {
	return []interface{}{u.ID}
}

// LogSnapshot returns the loggable field values. Password is a hidden field
// and must never reach a log payload.
func (u User) LogSnapshot() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}
