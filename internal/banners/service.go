package banners

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the public banner feed and admin management.
type Service interface {
	ListActive(ctx context.Context) ([]BannerView, error)
	ListAll(ctx context.Context) ([]BannerView, error)
	Create(ctx context.Context, input CreateBannerInput) (*BannerView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*BannerView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds a banners service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("banners repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// ListActive returns the home feed: active banners in position order.
func (s *service) ListActive(ctx context.Context) ([]BannerView, error) {
	return s.list(ctx, true)
}

func (s *service) ListAll(ctx context.Context) ([]BannerView, error) {
	return s.list(ctx, false)
}

func (s *service) list(ctx context.Context, activeOnly bool) ([]BannerView, error) {
	rows, err := s.repo.ListBanners(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list banners")
	}
	views := make([]BannerView, 0, len(rows))
	for _, row := range rows {
		views = append(views, viewFromModel(row))
	}
	return views, nil
}

func (s *service) Create(ctx context.Context, input CreateBannerInput) (*BannerView, error) {
	categoryID, err := parseOptionalID(input.CategoryID, "category_id")
	if err != nil {
		return nil, err
	}
	vendorID, err := parseOptionalID(input.VendorID, "vendor_id")
	if err != nil {
		return nil, err
	}

	row := &models.Banner{
		ID:         uuid.New(),
		Title:      input.Title,
		ImageURL:   input.ImageURL,
		TargetURL:  input.TargetURL,
		CategoryID: categoryID,
		VendorID:   vendorID,
		IsActive:   true,
	}
	if input.Position != nil {
		row.Position = *input.Position
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateBanner(ctx, row)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create banner")
	}

	view := viewFromModel(*row)
	return &view, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateBannerInput) (*BannerView, error) {
	if _, err := s.findBanner(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.TargetURL != nil {
		updates["target_url"] = *input.TargetURL
	}
	if input.CategoryID != nil {
		parsed, err := parseOptionalID(input.CategoryID, "category_id")
		if err != nil {
			return nil, err
		}
		updates["category_id"] = parsed
	}
	if input.VendorID != nil {
		parsed, err := parseOptionalID(input.VendorID, "vendor_id")
		if err != nil {
			return nil, err
		}
		updates["vendor_id"] = parsed
	}
	if input.Position != nil {
		updates["position"] = *input.Position
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	if len(updates) > 0 {
		if err := s.repo.UpdateBanner(ctx, id, updates); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update banner")
		}
	}

	row, err := s.findBanner(ctx, id)
	if err != nil {
		return nil, err
	}
	view := viewFromModel(*row)
	return &view, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findBanner(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteBanner(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete banner")
	}
	return nil
}

func (s *service) findBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	row, err := s.repo.FindBanner(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find banner")
	}
	return row, nil
}

func parseOptionalID(raw *string, field string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := uuid.Parse(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid id").
			WithDetails(map[string]string{field: *raw})
	}
	return &parsed, nil
}
