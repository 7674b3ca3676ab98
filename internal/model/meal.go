package model

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringArray is a custom type for handling ingredient lists stored as text.
// New rows are written as JSON; older rows in extra_meals hold a bracketed,
// comma-delimited string (e.g. "['flour', 'eggs']") and are split on read so
// callers always see an ordered []string.
type StringArray []string

// Value implements the driver.Valuer interface
func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = StringArray{}
		return nil
	}

	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		*a = StringArray{}
		return nil
	}

	s = strings.TrimSpace(s)
	if s == "" || s == "[]" {
		*a = StringArray{}
		return nil
	}

	var out []string
	if err := json.Unmarshal([]byte(s), &out); err == nil {
		*a = out
		return nil
	}

	// Legacy rows: python-list style text
	s = strings.Trim(s, "[]")
	s = strings.ReplaceAll(s, "'", "")
	if strings.TrimSpace(s) == "" {
		*a = StringArray{}
		return nil
	}
	parts := strings.Split(s, ",")
	out = make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*a = out
	return nil
}

// Meal is a user-submitted meal row in the extra_meals table.
type Meal struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Name         string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Category     string         `gorm:"size:50" json:"category"`
	Area         string         `gorm:"size:50" json:"area"`
	Instructions string         `gorm:"type:text" json:"instructions"`
	Images       string         `gorm:"size:255" json:"images"`
	Ingredients  StringArray    `gorm:"type:text;not null;default:'[]'" json:"ingredients"`
	Minutes      *int           `json:"minutes,omitempty"`
}

// TableName keeps the table name used by the original deployment.
func (Meal) TableName() string {
	return "extra_meals"
}

// BeforeCreate generates the ID when the dialect has no uuid default (sqlite).
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
