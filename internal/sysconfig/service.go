package sysconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"gorm.io/gorm"
)

// ConfigView is a single key/value setting returned to admins.
type ConfigView struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetConfigInput is the admin payload for writing a setting.
type SetConfigInput struct {
	Key   string `json:"key" validate:"required,min=1,max=120"`
	Value string `json:"value" validate:"max=2000"`
}

// Service exposes operator-tunable settings. It also serves as the
// pinned-vendor source for the vendors service.
type Service interface {
	Get(ctx context.Context, key string) (*ConfigView, error)
	List(ctx context.Context) ([]ConfigView, error)
	Set(ctx context.Context, input SetConfigInput) (*ConfigView, error)
	Unset(ctx context.Context, key string) error
	PinnedVendorID(ctx context.Context) (string, error)
}

type service struct {
	repo Repository
}

// NewService builds a sysconfig service with the required dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sysconfig repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, key string) (*ConfigView, error) {
	row, err := s.repo.FindConfig(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "config key not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find config")
	}
	view := viewFromModel(*row)
	return &view, nil
}

func (s *service) List(ctx context.Context) ([]ConfigView, error) {
	rows, err := s.repo.ListConfigs(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list configs")
	}
	views := make([]ConfigView, 0, len(rows))
	for _, row := range rows {
		views = append(views, viewFromModel(row))
	}
	return views, nil
}

func (s *service) Set(ctx context.Context, input SetConfigInput) (*ConfigView, error) {
	key := strings.TrimSpace(input.Key)
	if key == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "config key required")
	}
	if key == models.ConfigKeyPinnedVendorID && input.Value != "" {
		if _, err := uuid.Parse(input.Value); err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "pinned vendor id must be a uuid").
				WithDetails(map[string]string{"value": input.Value})
		}
	}

	if err := s.repo.UpsertConfig(ctx, key, input.Value); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert config")
	}
	return s.Get(ctx, key)
}

func (s *service) Unset(ctx context.Context, key string) error {
	if _, err := s.Get(ctx, key); err != nil {
		return err
	}
	if err := s.repo.DeleteConfig(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete config")
	}
	return nil
}

// PinnedVendorID returns the configured pinned vendor, or empty when the
// key is absent.
func (s *service) PinnedVendorID(ctx context.Context) (string, error) {
	row, err := s.repo.FindConfig(ctx, models.ConfigKeyPinnedVendorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find pinned vendor")
	}
	return row.Value, nil
}

func viewFromModel(row models.SystemConfig) ConfigView {
	return ConfigView{
		Key:       row.Key,
		Value:     row.Value,
		UpdatedAt: row.UpdatedAt,
	}
}
