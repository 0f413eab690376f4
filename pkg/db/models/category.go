package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a node in the service classification tree. Roots have a nil
// ParentID. Position orders siblings within their parent.
type Category struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ParentID    *uuid.UUID `gorm:"column:parent_id;type:uuid;index"`
	Name        string     `gorm:"column:name;not null"`
	Slug        string     `gorm:"column:slug;not null;index"`
	Description *string    `gorm:"column:description"`
	Icon        *string    `gorm:"column:icon"`
	ThemeColor  *string    `gorm:"column:theme_color"`
	ImageURL    *string    `gorm:"column:image_url"`
	Position    int        `gorm:"column:position;not null;default:0"`
	IsActive    bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
