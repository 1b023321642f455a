package activitylog

import (
	"fmt"
	"strings"
)

// Subject is implemented by entities that can appear in an activity log as
// the acted-on object, the issuer, or a scope. The snapshot must already
// exclude hidden fields (credentials and similar); the engine persists it
// as-is.
type Subject interface {
	// LogModel returns the registry name of the owning model, e.g. "Articles".
	LogModel() string
	// LogPrimaryKey returns the primary key values in declared field order.
	LogPrimaryKey() []interface{}
	// LogSnapshot returns the visible field values keyed by column name.
	LogSnapshot() map[string]interface{}
}

// Ref is a detached model/id reference satisfying Subject. It stands in for
// an entity when only the identifying pair is known, e.g. in query filters.
type Ref struct {
	Model string
	ID    string
}

// LogModel returns the referenced model name.
func (r Ref) LogModel() string { return r.Model }

// LogPrimaryKey returns the referenced id.
func (r Ref) LogPrimaryKey() []interface{} { return []interface{}{r.ID} }

// LogSnapshot returns nil; a bare reference carries no field values.
func (r Ref) LogSnapshot() map[string]interface{} { return nil }

// PrimaryKeyString resolves a subject's primary key to its log column form.
// Composite keys are concatenated with "_" in declared order.
func PrimaryKeyString(s Subject) string {
	if s == nil {
		return ""
	}

	values := s.LogPrimaryKey()
	if len(values) == 0 {
		return ""
	}

	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, idString(v))
	}

	return strings.Join(parts, "_")
}

// idString renders a single scope/key value for storage. Boolean true is the
// "applies globally, no id" sentinel and stored as "1".
func idString(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case bool:
		if value {
			return "1"
		}
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

// emptyID reports whether a scope value fails to identify anything: nil,
// boolean false, the empty or zero string, or a numeric zero. Boolean true is
// NOT empty.
func emptyID(v interface{}) bool {
	switch value := v.(type) {
	case nil:
		return true
	case bool:
		return !value
	case string:
		return value == "" || value == "0"
	case int:
		return value == 0
	case int64:
		return value == 0
	case uint:
		return value == 0
	case uint64:
		return value == 0
	case float64:
		return value == 0
	default:
		return idString(value) == "" || idString(value) == "0"
	}
}
