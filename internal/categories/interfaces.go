package categories

import (
	"context"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the category table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error)
	FindCategory(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteCategories(ctx context.Context, ids []uuid.UUID) error
}
