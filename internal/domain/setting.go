package domain

import (
	"database/sql/driver" // Valuer interface
	"encoding/json"       // Raw JSON values
	"fmt"
	"time"

	"gorm.io/gorm"
)

// RawJSON stores an opaque JSON document in a text column
type RawJSON json.RawMessage

// Value implements driver.Valuer
func (r RawJSON) Value() (driver.Value, error) {
	if len(r) == 0 {
		return "null", nil
	}
	return string(r), nil
}

// Scan implements sql.Scanner
func (r *RawJSON) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*r = RawJSON("null")
	case []byte:
		*r = append((*r)[0:0], v...)
	case string:
		*r = RawJSON(v)
	default:
		return fmt.Errorf("cannot scan %T into RawJSON", src)
	}
	return nil
}

// MarshalJSON emits the stored document as is
func (r RawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}

// UnmarshalJSON keeps a copy of the raw document
func (r *RawJSON) UnmarshalJSON(data []byte) error {
	*r = append((*r)[0:0], data...)
	return nil
}

// GormDataType keeps the column portable between MySQL and Postgres
func (RawJSON) GormDataType() string {
	return "text"
}

// Setting Model: one platform-wide key/value pair
type Setting struct {
	Key       string    `gorm:"size:191;primaryKey" json:"key"` // Unique setting key
	Value     RawJSON   `gorm:"not null" json:"value"`          // Any JSON value
	UpdatedBy string    `gorm:"type:char(36)" json:"updated_by"` // Admin who wrote it last
	UpdatedAt time.Time `json:"updated_at"`
}

// FeatureFlag Model
type FeatureFlag struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	FeatureName string    `gorm:"size:191;uniqueIndex;not null" json:"feature_name"` // Unique flag name
	Enabled     bool      `gorm:"not null" json:"enabled"`
	UpdatedBy   string    `gorm:"type:char(36)" json:"updated_by"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate assigns a uuid when the caller did not
func (f *FeatureFlag) BeforeCreate(*gorm.DB) error {
	assignID(&f.ID)
	return nil
}
