package vendors

import (
	"context"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the vendor tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error)
	FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	ListVendors(ctx context.Context) ([]models.Vendor, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteVendor(ctx context.Context, id uuid.UUID) error
	ReplaceCategories(ctx context.Context, vendorID uuid.UUID, categoryIDs []uuid.UUID) error
	ListProductsByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}
