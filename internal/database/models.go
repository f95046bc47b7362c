package database

import (
	"time"

	"gorm.io/datatypes"
)

// Preference is one persisted screen record, keyed by workspace and record name.
// Value holds the record exactly as the screens serialized it.
type Preference struct {
	Workspace string         `gorm:"primaryKey;size:64"`
	Key       string         `gorm:"column:record_key;primaryKey;size:64"`
	Value     datatypes.JSON `gorm:"type:jsonb"`
	UpdatedAt time.Time
}
