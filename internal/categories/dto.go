package categories

import (
	"github.com/hellolocalo/localo-backend/internal/directory"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
)

// CategoryNode is the nested tree shape returned to clients.
type CategoryNode struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	Description   *string        `json:"description,omitempty"`
	Icon          *string        `json:"icon,omitempty"`
	ThemeColor    *string        `json:"theme_color,omitempty"`
	ImageURL      *string        `json:"image_url,omitempty"`
	SubCategories []CategoryNode `json:"sub_categories,omitempty"`
}

// CreateCategoryInput captures the admin payload for a new node.
type CreateCategoryInput struct {
	Name        string  `json:"name" validate:"required,min=1,max=120"`
	ParentID    *string `json:"parent_id,omitempty" validate:"omitempty,uuid"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=120"`
	ThemeColor  *string `json:"theme_color,omitempty" validate:"omitempty,max=32"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdateCategoryInput captures the editable fields of an existing node.
type UpdateCategoryInput struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=120"`
	ThemeColor  *string `json:"theme_color,omitempty" validate:"omitempty,max=32"`
	ImageURL    *string `json:"image_url,omitempty" validate:"omitempty,url"`
}

func categoryFromModel(row models.Category) directory.Category {
	category := directory.Category{
		ID:   row.ID.String(),
		Name: row.Name,
		Slug: row.Slug,
	}
	if row.Description != nil {
		category.Description = *row.Description
	}
	if row.Icon != nil {
		category.Icon = *row.Icon
	}
	if row.ThemeColor != nil {
		category.ThemeColor = *row.ThemeColor
	}
	if row.ImageURL != nil {
		category.ImageURL = *row.ImageURL
	}
	return category
}

func nodeFromCategory(tree *directory.CategoryTree, category directory.Category) CategoryNode {
	node := CategoryNode{
		ID:          category.ID,
		Name:        category.Name,
		Slug:        category.Slug,
		Description: optional(category.Description),
		Icon:        optional(category.Icon),
		ThemeColor:  optional(category.ThemeColor),
		ImageURL:    optional(category.ImageURL),
	}
	for _, child := range tree.Children(category.ID) {
		node.SubCategories = append(node.SubCategories, nodeFromCategory(tree, child))
	}
	return node
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
