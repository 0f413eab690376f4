package models

import "time"

// SystemConfig stores operator-tunable key/value settings, e.g. the
// pinned vendor highlighted on the home surface.
type SystemConfig struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Well-known configuration keys.
const (
	ConfigKeyPinnedVendorID = "pinned_vendor_id"
)
