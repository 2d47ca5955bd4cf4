package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Milestone is one rung of the progressive notification ladder.
type Milestone struct {
	Threshold int    `json:"threshold"`
	Enabled   bool   `json:"enabled"`
	Message   string `json:"message"`
}

// Milestones serializes the ordered milestone list to a JSONB column.
type Milestones []Milestone

// Value implements driver.Valuer.
func (m Milestones) Value() (driver.Value, error) {
	if m == nil {
		return "[]", nil
	}
	encoded, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal milestones: %w", err)
	}
	return string(encoded), nil
}

// Scan implements sql.Scanner.
func (m *Milestones) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported milestones source %T", src)
	}
	if len(raw) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(raw, m)
}

// GormDataType keeps GORM from guessing the column type.
func (Milestones) GormDataType() string {
	return "jsonb"
}
