package models

import "github.com/google/uuid"

// VendorCategory links a vendor to a node in the category tree. A vendor
// may be attached at any depth, including root categories.
type VendorCategory struct {
	VendorID   uuid.UUID `gorm:"column:vendor_id;type:uuid;primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey"`
}
