package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Vendor represents a service provider profile in the directory.
// Only approved vendors surface in public listings and search.
type Vendor struct {
	ID               uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string           `gorm:"column:name;not null"`
	Description      *string          `gorm:"column:description"`
	ImageURL         *string          `gorm:"column:image_url"`
	Gallery          pq.StringArray   `gorm:"column:gallery;type:text[]"`
	Rating           float64          `gorm:"column:rating;not null;default:0"`
	PriceStart       *decimal.Decimal `gorm:"column:price_start;type:numeric(12,2)"`
	ContactPhone     *string          `gorm:"column:contact_phone"`
	Email            *string          `gorm:"column:email"`
	Address          *string          `gorm:"column:address"`
	Lat              *float64         `gorm:"column:lat"`
	Lng              *float64         `gorm:"column:lng"`
	SupportsDelivery bool             `gorm:"column:supports_delivery;not null;default:false"`
	IsVerified       bool             `gorm:"column:is_verified;not null;default:false"`
	IsApproved       bool             `gorm:"column:is_approved;not null;default:false"`
	IsFeatured       bool             `gorm:"column:is_featured;not null;default:false"`
	Categories       []Category       `gorm:"many2many:vendor_categories"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
