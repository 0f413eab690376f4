package models

import (
	"time"

	"github.com/google/uuid"
)

// Banner is a promotional image shown on the home surface, optionally
// deep-linking to a category or vendor.
type Banner struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title      *string    `gorm:"column:title"`
	ImageURL   string     `gorm:"column:image_url;not null"`
	TargetURL  *string    `gorm:"column:target_url"`
	CategoryID *uuid.UUID `gorm:"column:category_id;type:uuid"`
	VendorID   *uuid.UUID `gorm:"column:vendor_id;type:uuid"`
	Position   int        `gorm:"column:position;not null;default:0"`
	IsActive   bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
