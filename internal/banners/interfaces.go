package banners

import (
	"context"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the banners table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBanner(ctx context.Context, banner *models.Banner) (*models.Banner, error)
	FindBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error)
	ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error)
	UpdateBanner(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteBanner(ctx context.Context, id uuid.UUID) error
}
