package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// LogData is the JSON-encoded field snapshot stored in activity_logs.data.
// The column is plain text at the storage layer; encoding keeps slashes and
// non-ASCII text literal so that stored payloads stay human-readable.
// A nil map round-trips to SQL NULL.
type LogData map[string]interface{}

// Value implements driver.Valuer.
func (d LogData) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]interface{}(d)); err != nil {
		return nil, fmt.Errorf("failed to encode log data: %w", err)
	}

	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Scan implements sql.Scanner.
func (d *LogData) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported log data type %T", value)
	}

	if len(raw) == 0 {
		*d = nil
		return nil
	}

	decoded := map[string]interface{}{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("failed to decode log data: %w", err)
	}

	*d = decoded

	return nil
}
