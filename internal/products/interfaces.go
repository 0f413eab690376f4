package products

import (
	"context"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for vendor catalogs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	VendorExists(ctx context.Context, vendorID uuid.UUID) (bool, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error)
	ReplaceForVendor(ctx context.Context, vendorID uuid.UUID, items []models.Product) error
}
