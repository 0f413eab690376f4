package categories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/internal/directory"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
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

// Service exposes category tree reads and admin mutations.
type Service interface {
	Tree(ctx context.Context) (*directory.CategoryTree, error)
	ListTree(ctx context.Context) ([]CategoryNode, error)
	Create(ctx context.Context, input CreateCategoryInput) (*CategoryNode, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo  Repository
	tx    txRunner
	cache directoryInvalidator
}

// NewService builds a categories service with the required dependencies.
// The cache is optional; nil disables invalidation.
func NewService(repo Repository, tx txRunner, cache directoryInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("categories repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, cache: cache}, nil
}

// Tree reconstructs the category forest from the flat table: rows are
// grouped by parent_id, roots are rows with a NULL parent, and children
// attach recursively in position order.
func (s *service) Tree(ctx context.Context) (*directory.CategoryTree, error) {
	rows, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return buildTree(rows), nil
}

func buildTree(rows []models.Category) *directory.CategoryTree {
	childrenOf := make(map[uuid.UUID][]models.Category)
	var roots []models.Category
	for _, row := range rows {
		if row.ParentID == nil {
			roots = append(roots, row)
			continue
		}
		childrenOf[*row.ParentID] = append(childrenOf[*row.ParentID], row)
	}

	tree := directory.NewCategoryTree()
	var attach func(parentID uuid.UUID)
	attach = func(parentID uuid.UUID) {
		for _, child := range childrenOf[parentID] {
			tree.AddChild(parentID.String(), categoryFromModel(child))
			attach(child.ID)
		}
	}
	for _, root := range roots {
		tree.AddRoot(categoryFromModel(root))
		attach(root.ID)
	}
	return tree
}

func (s *service) ListTree(ctx context.Context) ([]CategoryNode, error) {
	tree, err := s.Tree(ctx)
	if err != nil {
		return nil, err
	}
	roots := tree.Roots()
	nodes := make([]CategoryNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, nodeFromCategory(tree, root))
	}
	return nodes, nil
}

func (s *service) Create(ctx context.Context, input CreateCategoryInput) (*CategoryNode, error) {
	var parentID *uuid.UUID
	if input.ParentID != nil {
		parsed, err := uuid.Parse(*input.ParentID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid parent id")
		}
		if _, err := s.repo.FindCategory(ctx, parsed); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "parent category not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load parent category")
		}
		parentID = &parsed
	}

	row := &models.Category{
		ID:          uuid.New(),
		ParentID:    parentID,
		Name:        input.Name,
		Slug:        directory.Slugify(input.Name),
		Description: input.Description,
		Icon:        input.Icon,
		ThemeColor:  input.ThemeColor,
		ImageURL:    input.ImageURL,
		Position:    0,
		IsActive:    true,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		siblings, err := repo.ListCategories(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
		}
		row.Position = nextPosition(siblings, parentID)
		if _, err := repo.CreateCategory(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create category")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	node := nodeFromCategory(directory.NewCategoryTree(), categoryFromModel(*row))
	return &node, nil
}

func nextPosition(rows []models.Category, parentID *uuid.UUID) int {
	position := 0
	for _, row := range rows {
		if sameParent(row.ParentID, parentID) && row.Position >= position {
			position = row.Position + 1
		}
	}
	return position
}

func sameParent(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCategoryInput) error {
	if _, err := s.repo.FindCategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category")
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
		updates["slug"] = directory.Slugify(*input.Name)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Icon != nil {
		updates["icon"] = *input.Icon
	}
	if input.ThemeColor != nil {
		updates["theme_color"] = *input.ThemeColor
	}
	if input.ImageURL != nil {
		updates["image_url"] = *input.ImageURL
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.UpdateCategory(ctx, id, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update category")
	}
	return nil
}

// Delete removes the node and its entire subtree; the subtree is never
// reparented.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	tree, err := s.Tree(ctx)
	if err != nil {
		return err
	}
	subtree := tree.DescendantIDs(id.String())
	if len(subtree) == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	ids := make([]uuid.UUID, 0, len(subtree))
	for _, raw := range subtree {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "malformed category id")
		}
		ids = append(ids, parsed)
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeleteCategories(ctx, ids); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete categories")
		}
		return nil
	})
	if err != nil {
		return err
	}

	// the cascade drops vendor links, so the cached directory is stale
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}
