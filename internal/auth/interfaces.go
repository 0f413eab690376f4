package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the users table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}
