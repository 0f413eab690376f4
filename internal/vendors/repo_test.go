package vendors

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupVendorsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	for _, stmt := range []string{
		`DROP TABLE IF EXISTS products`,
		`DROP TABLE IF EXISTS vendor_categories`,
		`DROP TABLE IF EXISTS vendors`,
		`DROP TABLE IF EXISTS categories`,
		`CREATE TABLE IF NOT EXISTS categories (
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
);`,
		`CREATE TABLE IF NOT EXISTS vendors (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT,
  image_url TEXT,
  gallery TEXT,
  rating REAL NOT NULL DEFAULT 0,
  price_start TEXT,
  contact_phone TEXT,
  email TEXT,
  address TEXT,
  lat REAL,
  lng REAL,
  supports_delivery INTEGER NOT NULL DEFAULT 0,
  is_verified INTEGER NOT NULL DEFAULT 0,
  is_approved INTEGER NOT NULL DEFAULT 0,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS vendor_categories (
  vendor_id TEXT NOT NULL,
  category_id TEXT NOT NULL,
  PRIMARY KEY (vendor_id, category_id)
);`,
		`CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price TEXT NOT NULL,
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedVendor(t *testing.T, repo Repository, name string, approved bool) *models.Vendor {
	t.Helper()
	row, err := repo.CreateVendor(context.Background(), &models.Vendor{
		ID:         uuid.New(),
		Name:       name,
		IsApproved: approved,
	})
	require.NoError(t, err)
	return row
}

func TestCreateAndFindVendor(t *testing.T) {
	repo := NewRepository(setupVendorsTestDB(t))

	created := seedVendor(t, repo, "Quick Fix Plumbers", true)

	found, err := repo.FindVendor(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Quick Fix Plumbers", found.Name)
	assert.True(t, found.IsApproved)
}

func TestReplaceCategoriesRelinks(t *testing.T) {
	db := setupVendorsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendor := seedVendor(t, repo, "All Trades", true)
	first := uuid.New()
	second := uuid.New()
	for _, id := range []uuid.UUID{first, second} {
		require.NoError(t, db.Exec(
			`INSERT INTO categories (id, name, slug, position, is_active) VALUES (?, ?, ?, 0, 1)`,
			id.String(), "Cat "+id.String()[:4], "cat",
		).Error)
	}

	require.NoError(t, repo.ReplaceCategories(ctx, vendor.ID, []uuid.UUID{first}))

	found, err := repo.FindVendor(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, found.Categories, 1)
	assert.Equal(t, first, found.Categories[0].ID)

	require.NoError(t, repo.ReplaceCategories(ctx, vendor.ID, []uuid.UUID{second}))

	found, err = repo.FindVendor(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, found.Categories, 1)
	assert.Equal(t, second, found.Categories[0].ID)

	require.NoError(t, repo.ReplaceCategories(ctx, vendor.ID, nil))
	found, err = repo.FindVendor(ctx, vendor.ID)
	require.NoError(t, err)
	assert.Empty(t, found.Categories)
}

func TestUpdateVendorFlags(t *testing.T) {
	repo := NewRepository(setupVendorsTestDB(t))
	ctx := context.Background()

	vendor := seedVendor(t, repo, "Pending Painters", false)

	require.NoError(t, repo.UpdateVendor(ctx, vendor.ID, map[string]any{"is_approved": true}))

	found, err := repo.FindVendor(ctx, vendor.ID)
	require.NoError(t, err)
	assert.True(t, found.IsApproved)
}

func TestDeleteVendorRemovesLinks(t *testing.T) {
	db := setupVendorsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendor := seedVendor(t, repo, "Going Away", true)
	require.NoError(t, repo.ReplaceCategories(ctx, vendor.ID, []uuid.UUID{uuid.New()}))

	require.NoError(t, repo.DeleteVendor(ctx, vendor.ID))

	_, err := repo.FindVendor(ctx, vendor.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var linkCount int64
	require.NoError(t, db.Table("vendor_categories").Where("vendor_id = ?", vendor.ID.String()).Count(&linkCount).Error)
	assert.Zero(t, linkCount)
}

func TestListProductsByVendorSkipsInactive(t *testing.T) {
	db := setupVendorsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	vendor := seedVendor(t, repo, "Quick Fix Plumbers", true)
	price := decimal.NewFromInt(49)
	require.NoError(t, db.Create(&models.Product{
		ID: uuid.New(), VendorID: vendor.ID, Name: "Drain unclog", Price: price, IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.Product{
		ID: uuid.New(), VendorID: vendor.ID, Name: "Retired offer", Price: price, IsActive: false,
	}).Error)

	rows, err := repo.ListProductsByVendor(ctx, vendor.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Drain unclog", rows[0].Name)

	all, err := repo.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
