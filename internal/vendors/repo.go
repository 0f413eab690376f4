package vendors

import (
	"context"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a vendors repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateVendor(ctx context.Context, vendor *models.Vendor) (*models.Vendor, error) {
	if err := r.db.WithContext(ctx).Omit("Categories").Create(vendor).Error; err != nil {
		return nil, err
	}
	return vendor, nil
}

func (r *repository) FindVendor(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Where("id = ?", id).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *repository) ListVendors(ctx context.Context) ([]models.Vendor, error) {
	var rows []models.Vendor
	err := r.db.WithContext(ctx).
		Preload("Categories").
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateVendor(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteVendor(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", id).
		Delete(&models.VendorCategory{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Vendor{}).Error
}

func (r *repository) ReplaceCategories(ctx context.Context, vendorID uuid.UUID, categoryIDs []uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("vendor_id = ?", vendorID).
		Delete(&models.VendorCategory{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	links := make([]models.VendorCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		links = append(links, models.VendorCategory{VendorID: vendorID, CategoryID: categoryID})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *repository) ListProducts(ctx context.Context) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListProductsByVendor(ctx context.Context, vendorID uuid.UUID) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND is_active = ?", vendorID, true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
