package models

import "time"

// Activity log actions written by the logging engine. Callers may supply any
// other string through the runtime logging API.
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionRuntime = "runtime"
)

// Log levels follow the usual syslog-style vocabulary. The column is
// free-form; these cover what the engine itself emits.
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelNotice  = "notice"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ActivityLog is one scope-view of a logged action. A single mutation fans
// out into one row per applicable scope; rows from the same fan-out share a
// Grouping id and differ only in ScopeModel/ScopeID.
//
// Rows are create-only. Empty strings in the model/id columns mean "absent"
// (system or anonymous actions carry no issuer, runtime logs may carry no
// object).
type ActivityLog struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	ScopeModel  string    `gorm:"size:128;not null;index:idx_activity_logs_scope,priority:1" json:"scope_model"`
	ScopeID     string    `gorm:"size:64;not null;index:idx_activity_logs_scope,priority:2" json:"scope_id"`
	IssuerModel string    `gorm:"size:128;index:idx_activity_logs_issuer,priority:1" json:"issuer_model,omitempty"`
	IssuerID    string    `gorm:"size:64;index:idx_activity_logs_issuer,priority:2" json:"issuer_id,omitempty"`
	ObjectModel string    `gorm:"size:128;index:idx_activity_logs_object,priority:1" json:"object_model,omitempty"`
	ObjectID    string    `gorm:"size:64;index:idx_activity_logs_object,priority:2" json:"object_id,omitempty"`
	Level       string    `gorm:"size:16;not null;index" json:"level"`
	Action      string    `gorm:"size:64;index" json:"action,omitempty"`
	Message     string    `gorm:"type:text" json:"message,omitempty"`
	Data        LogData   `gorm:"type:text" json:"data,omitempty"`
	Grouping    string    `gorm:"size:36;index" json:"grouping,omitempty"`
}

// TableName pins the storage table for the log model.
func (ActivityLog) TableName() string {
	return "activity_logs"
}

// Clone returns a copy that can be patched per scope without touching the
// canonical record. Data is shared: fan-out rows carry an identical snapshot.
func (l ActivityLog) Clone() *ActivityLog {
	copied := l
	return &copied
}
