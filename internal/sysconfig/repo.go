package sysconfig

import (
	"context"

	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a sysconfig repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindConfig(ctx context.Context, key string) (*models.SystemConfig, error) {
	var row models.SystemConfig
	err := r.db.WithContext(ctx).
		Where("key = ?", key).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) ListConfigs(ctx context.Context) ([]models.SystemConfig, error) {
	var rows []models.SystemConfig
	err := r.db.WithContext(ctx).
		Order("key ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpsertConfig(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&models.SystemConfig{Key: key, Value: value}).Error
}

func (r *repository) DeleteConfig(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("key = ?", key).
		Delete(&models.SystemConfig{}).Error
}
