package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a customer booking against a vendor. Status follows the
// pending/accepted/completed/rejected lifecycle.
type Order struct {
	ID               uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	VendorID         uuid.UUID         `gorm:"column:vendor_id;type:uuid;not null;index"`
	CustomerName     string            `gorm:"column:customer_name;not null"`
	CustomerPhone    string            `gorm:"column:customer_phone;not null"`
	ServiceRequested string            `gorm:"column:service_requested;not null"`
	Address          *string           `gorm:"column:address"`
	Notes            *string           `gorm:"column:notes"`
	Amount           *decimal.Decimal  `gorm:"column:amount;type:numeric(12,2)"`
	Status           enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	PlacedAt         time.Time         `gorm:"column:placed_at;not null"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
