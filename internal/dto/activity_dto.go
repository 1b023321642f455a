package dto

import (
	"time"

	"github.com/fitra-dev/jejak-api/internal/models"
)

// ActivityListRequest filters the paginated activity listing.
type ActivityListRequest struct {
	Page        int    `validate:"gte=0"`
	PageSize    int    `validate:"gte=0,lte=100"`
	Level       string `validate:"omitempty,max=16"`
	Action      string `validate:"omitempty,max=64"`
	ObjectModel string `validate:"omitempty,max=128"`
	ObjectID    string `validate:"omitempty,max=64"`
}

// ActivityResponse is the API shape of one activity log row.
type ActivityResponse struct {
	ID          uint64                 `json:"id"`
	CreatedAt   time.Time              `json:"created_at"`
	ScopeModel  string                 `json:"scope_model"`
	ScopeID     string                 `json:"scope_id"`
	IssuerModel string                 `json:"issuer_model,omitempty"`
	IssuerID    string                 `json:"issuer_id,omitempty"`
	ObjectModel string                 `json:"object_model,omitempty"`
	ObjectID    string                 `json:"object_id,omitempty"`
	Level       string                 `json:"level"`
	Action      string                 `json:"action,omitempty"`
	Message     string                 `json:"message,omitempty"`
	Data        map[string]interface{} `json:"data,omitempty"`
	Grouping    string                 `json:"grouping,omitempty"`
}

// NewActivityResponse maps a persisted row to its API shape.
func NewActivityResponse(entry models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:          entry.ID,
		CreatedAt:   entry.CreatedAt,
		ScopeModel:  entry.ScopeModel,
		ScopeID:     entry.ScopeID,
		IssuerModel: entry.IssuerModel,
		IssuerID:    entry.IssuerID,
		ObjectModel: entry.ObjectModel,
		ObjectID:    entry.ObjectID,
		Level:       entry.Level,
		Action:      entry.Action,
		Message:     entry.Message,
		Data:        entry.Data,
		Grouping:    entry.Grouping,
	}
}

// NewActivityResponses maps a result set, preserving order.
func NewActivityResponses(entries []models.ActivityLog) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewActivityResponse(entry))
	}
	return responses
}

// PaginationMeta describes the page window of a listing.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ActivityListResponse is the paginated listing payload.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// ActivityFeedResponse is the cached recent-activity payload.
type ActivityFeedResponse struct {
	Items    []ActivityResponse `json:"items"`
	Since    time.Time          `json:"since"`
	CacheHit bool               `json:"cache_hit"`
}
