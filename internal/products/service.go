package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// directoryInvalidator drops the cached public vendor directory after a
// write that changes what the listing would show.
type directoryInvalidator interface {
	Invalidate(ctx context.Context)
}

// ProductInput is one catalog entry in a replace payload.
type ProductInput struct {
	Name  string  `json:"name" validate:"required,min=1,max=160"`
	Price string  `json:"price" validate:"required"`
	Image *string `json:"image,omitempty" validate:"omitempty,url"`
}

// ProductView is the catalog entry returned to clients.
type ProductView struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image *string         `json:"image,omitempty"`
}

// Service manages per-vendor catalogs.
type Service interface {
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]ProductView, error)
	Replace(ctx context.Context, vendorID uuid.UUID, inputs []ProductInput) ([]ProductView, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	cache directoryInvalidator
}

// NewService builds a products service with the required dependencies.
// The cache is optional; nil disables invalidation.
func NewService(repo Repository, tx txRunner, cache directoryInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, cache: cache}, nil
}

func (s *service) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]ProductView, error) {
	rows, err := s.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return viewsFromModels(rows), nil
}

// Replace swaps the vendor's catalog for the submitted list. Names must be
// unique within the payload; they are the implicit product identity.
func (s *service) Replace(ctx context.Context, vendorID uuid.UUID, inputs []ProductInput) ([]ProductView, error) {
	exists, err := s.repo.VendorExists(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}

	seen := make(map[string]struct{}, len(inputs))
	rows := make([]models.Product, 0, len(inputs))
	for _, input := range inputs {
		name := strings.TrimSpace(input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "duplicate product name").WithDetails(map[string]string{"name": name})
		}
		seen[key] = struct{}{}

		price, err := decimal.NewFromString(input.Price)
		if err != nil || !price.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product price must be positive").WithDetails(map[string]string{"name": name})
		}

		rows = append(rows, models.Product{
			ID:       uuid.New(),
			VendorID: vendorID,
			Name:     name,
			Price:    price,
			ImageURL: input.Image,
			IsActive: true,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).ReplaceForVendor(ctx, vendorID, rows); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace products")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	return viewsFromModels(rows), nil
}

func viewsFromModels(rows []models.Product) []ProductView {
	views := make([]ProductView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ProductView{
			Name:  row.Name,
			Price: row.Price,
			Image: row.ImageURL,
		})
	}
	return views
}
