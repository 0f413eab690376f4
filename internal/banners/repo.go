package banners

import (
	"context"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a banners repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateBanner(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	if err := r.db.WithContext(ctx).Create(banner).Error; err != nil {
		return nil, err
	}
	return banner, nil
}

func (r *repository) FindBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	var banner models.Banner
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&banner).Error
	if err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *repository) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Banner{}).
		Order("position ASC, created_at ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []models.Banner
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateBanner(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Banner{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Banner{}).Error
}
