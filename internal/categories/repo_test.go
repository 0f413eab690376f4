package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCategoriesTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  parent_id TEXT,
  name TEXT NOT NULL,
  slug TEXT NOT NULL,
  description TEXT,
  icon TEXT,
  theme_color TEXT,
  image_url TEXT,
  position INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(`DROP TABLE IF EXISTS categories`).Error)
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func seedCategory(t *testing.T, repo Repository, name string, parentID *uuid.UUID, position int) *models.Category {
	t.Helper()
	row, err := repo.CreateCategory(context.Background(), &models.Category{
		ID:       uuid.New(),
		ParentID: parentID,
		Name:     name,
		Slug:     name,
		Position: position,
		IsActive: true,
	})
	require.NoError(t, err)
	return row
}

func TestCreateAndFindCategory(t *testing.T) {
	repo := NewRepository(setupCategoriesTestDB(t))

	created := seedCategory(t, repo, "Home Services", nil, 0)

	found, err := repo.FindCategory(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home Services", found.Name)
	assert.Nil(t, found.ParentID)
}

func TestListCategoriesOrdersByPosition(t *testing.T) {
	repo := NewRepository(setupCategoriesTestDB(t))

	seedCategory(t, repo, "Second", nil, 1)
	seedCategory(t, repo, "First", nil, 0)

	rows, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "First", rows[0].Name)
	assert.Equal(t, "Second", rows[1].Name)
}

func TestUpdateCategory(t *testing.T) {
	repo := NewRepository(setupCategoriesTestDB(t))
	created := seedCategory(t, repo, "Home", nil, 0)

	err := repo.UpdateCategory(context.Background(), created.ID, map[string]any{
		"name": "Home & Garden",
		"slug": "home-garden",
	})
	require.NoError(t, err)

	found, err := repo.FindCategory(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home & Garden", found.Name)
	assert.Equal(t, "home-garden", found.Slug)
}

func TestDeleteCategoriesRemovesAllIDs(t *testing.T) {
	repo := NewRepository(setupCategoriesTestDB(t))

	root := seedCategory(t, repo, "Home", nil, 0)
	child := seedCategory(t, repo, "Handyman", &root.ID, 0)
	keep := seedCategory(t, repo, "Beauty", nil, 1)

	err := repo.DeleteCategories(context.Background(), []uuid.UUID{root.ID, child.ID})
	require.NoError(t, err)

	rows, err := repo.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, keep.ID, rows[0].ID)

	require.NoError(t, repo.DeleteCategories(context.Background(), nil))
}
