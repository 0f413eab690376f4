package sysconfig

import (
	"context"

	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the system_configs table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindConfig(ctx context.Context, key string) (*models.SystemConfig, error)
	ListConfigs(ctx context.Context) ([]models.SystemConfig, error)
	UpsertConfig(ctx context.Context, key, value string) error
	DeleteConfig(ctx context.Context, key string) error
}
