package vendors

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/internal/directory"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type treeSource interface {
	Tree(ctx context.Context) (*directory.CategoryTree, error)
}

type pinnedVendorSource interface {
	PinnedVendorID(ctx context.Context) (string, error)
}

// Service exposes public vendor discovery plus admin moderation.
type Service interface {
	ListPublic(ctx context.Context, filter ListFilter) ([]VendorView, error)
	GetPublic(ctx context.Context, id uuid.UUID) (*VendorView, error)
	Featured(ctx context.Context) (*VendorView, error)
	Register(ctx context.Context, input RegisterVendorInput) (*AdminVendorView, error)
	Create(ctx context.Context, input CreateVendorInput) (*AdminVendorView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVendorInput) error
	Approve(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]AdminVendorView, error)
}

type service struct {
	repo     Repository
	tx       txRunner
	tree     treeSource
	pinned   pinnedVendorSource
	snapshot *DirectoryCache
}

// Options carries the optional collaborators of the vendor service.
type Options struct {
	Snapshot *DirectoryCache
	Pinned   pinnedVendorSource
}

// NewService builds a vendors service with the required dependencies.
func NewService(repo Repository, tx txRunner, tree treeSource, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendors repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if tree == nil {
		return nil, fmt.Errorf("category tree source required")
	}

	return &service{repo: repo, tx: tx, tree: tree, pinned: opts.Pinned, snapshot: opts.Snapshot}, nil
}

// buildDirectory loads all vendors with their category links and products
// into the in-memory directory, preserving row order as insertion order.
func (s *service) buildDirectory(ctx context.Context) (*directory.VendorDirectory, error) {
	if dir, ok := s.snapshot.load(ctx); ok {
		return dir, nil
	}

	rows, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	byVendor := make(map[uuid.UUID][]directory.Product)
	for _, product := range products {
		entry := directory.Product{Name: product.Name, Price: product.Price}
		if product.ImageURL != nil {
			entry.Image = *product.ImageURL
		}
		byVendor[product.VendorID] = append(byVendor[product.VendorID], entry)
	}

	dir := directory.NewVendorDirectory()
	for _, row := range rows {
		vendor := directoryVendorFromModel(row)
		vendor.Products = byVendor[row.ID]
		dir.Add(vendor)
	}

	s.snapshot.save(ctx, dir)
	return dir, nil
}

func (s *service) ListPublic(ctx context.Context, filter ListFilter) ([]VendorView, error) {
	dir, err := s.buildDirectory(ctx)
	if err != nil {
		return nil, err
	}

	var matched []directory.Vendor
	if filter.Search != "" {
		matched = dir.Search(filter.Search)
	} else {
		tree, err := s.tree.Tree(ctx)
		if err != nil {
			return nil, err
		}
		matched = directory.ResolveVendors(tree, dir, filter.CategoryID, filter.SubCategoryID)
	}

	views := make([]VendorView, 0, len(matched))
	for _, vendor := range matched {
		views = append(views, publicViewFromDirectory(vendor))
	}
	return views, nil
}

func (s *service) GetPublic(ctx context.Context, id uuid.UUID) (*VendorView, error) {
	dir, err := s.buildDirectory(ctx)
	if err != nil {
		return nil, err
	}
	vendor, ok := dir.Get(id.String())
	if !ok || !vendor.IsApproved {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	view := publicViewFromDirectory(vendor)
	return &view, nil
}

// Featured returns the pinned vendor when configured and approved,
// otherwise the first approved vendor flagged featured, otherwise the
// first approved vendor.
func (s *service) Featured(ctx context.Context) (*VendorView, error) {
	dir, err := s.buildDirectory(ctx)
	if err != nil {
		return nil, err
	}

	if s.pinned != nil {
		if pinnedID, err := s.pinned.PinnedVendorID(ctx); err == nil && pinnedID != "" {
			if vendor, ok := dir.Get(pinnedID); ok && vendor.IsApproved {
				view := publicViewFromDirectory(vendor)
				return &view, nil
			}
		}
	}

	approved := dir.Approved()
	if len(approved) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no approved vendors")
	}
	for _, vendor := range approved {
		if vendor.IsFeatured {
			view := publicViewFromDirectory(vendor)
			return &view, nil
		}
	}

	view := publicViewFromDirectory(approved[0])
	return &view, nil
}

func (s *service) Register(ctx context.Context, input RegisterVendorInput) (*AdminVendorView, error) {
	return s.insert(ctx, input, false, false, false)
}

func (s *service) Create(ctx context.Context, input CreateVendorInput) (*AdminVendorView, error) {
	return s.insert(ctx, input.RegisterVendorInput, input.Approved, input.Verified, input.Featured)
}

func (s *service) insert(ctx context.Context, input RegisterVendorInput, approved, verified, featured bool) (*AdminVendorView, error) {
	categoryIDs, err := parseCategoryIDs(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	row := &models.Vendor{
		ID:               uuid.New(),
		Name:             input.Name,
		SupportsDelivery: input.SupportsDelivery,
		IsApproved:       approved,
		IsVerified:       verified,
		IsFeatured:       featured,
	}
	if input.Description != "" {
		row.Description = &input.Description
	}
	if input.Contact != "" {
		row.ContactPhone = &input.Contact
	}
	if input.Email != "" {
		row.Email = &input.Email
	}
	if input.Address != "" {
		row.Address = &input.Address
	}
	if input.ImageURL != "" {
		row.ImageURL = &input.ImageURL
	}
	row.Lat = input.Lat
	row.Lng = input.Lng
	if input.PriceStart != nil {
		price, err := decimal.NewFromString(*input.PriceStart)
		if err != nil || price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid starting price")
		}
		row.PriceStart = &price
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.CreateVendor(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create vendor")
		}
		if err := repo.ReplaceCategories(ctx, row.ID, categoryIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link categories")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.snapshot.Invalidate(ctx)
	view := adminViewFromModel(*row)
	view.CategoryIDs = input.CategoryIDs
	return &view, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateVendorInput) error {
	if _, err := s.repo.FindVendor(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Contact != nil {
		updates["contact_phone"] = *input.Contact
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Lat != nil {
		updates["lat"] = *input.Lat
	}
	if input.Lng != nil {
		updates["lng"] = *input.Lng
	}
	if input.Rating != nil {
		updates["rating"] = *input.Rating
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if input.Verified != nil {
		updates["is_verified"] = *input.Verified
	}
	if input.Featured != nil {
		updates["is_featured"] = *input.Featured
	}
	if input.SupportsDelivery != nil {
		updates["supports_delivery"] = *input.SupportsDelivery
	}

	var categoryIDs []uuid.UUID
	replaceCategories := input.CategoryIDs != nil
	if replaceCategories {
		parsed, err := parseCategoryIDs(input.CategoryIDs)
		if err != nil {
			return err
		}
		categoryIDs = parsed
	}

	if len(updates) == 0 && !replaceCategories {
		return nil
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if len(updates) > 0 {
			if err := repo.UpdateVendor(ctx, id, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update vendor")
			}
		}
		if replaceCategories {
			if err := repo.ReplaceCategories(ctx, id, categoryIDs); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "link categories")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.snapshot.Invalidate(ctx)
	return nil
}

// Approve flips the approval gate. Approving an already-approved vendor
// is a no-op, not an error.
func (s *service) Approve(ctx context.Context, id uuid.UUID) error {
	vendor, err := s.repo.FindVendor(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	if vendor.IsApproved {
		return nil
	}
	if err := s.repo.UpdateVendor(ctx, id, map[string]any{"is_approved": true}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "approve vendor")
	}
	s.snapshot.Invalidate(ctx)
	return nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindVendor(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vendor")
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteVendor(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete vendor")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.snapshot.Invalidate(ctx)
	return nil
}

func (s *service) ListAll(ctx context.Context) ([]AdminVendorView, error) {
	rows, err := s.repo.ListVendors(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vendors")
	}
	views := make([]AdminVendorView, 0, len(rows))
	for _, row := range rows {
		views = append(views, adminViewFromModel(row))
	}
	return views, nil
}

func parseCategoryIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		parsed, err := uuid.Parse(value)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category id").WithDetails(map[string]string{"category_id": value})
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}
