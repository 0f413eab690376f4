package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/hellolocalo/localo-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	for _, stmt := range []string{
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS vendors`,
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
		`CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  service_requested TEXT NOT NULL,
  address TEXT,
  notes TEXT,
  amount TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  placed_at DATETIME NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedOrderVendor(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	vendor := models.Vendor{ID: uuid.New(), Name: "Pipe Pros", IsApproved: true}
	require.NoError(t, db.Create(&vendor).Error)
	return vendor.ID
}

func seedOrder(t *testing.T, repo Repository, vendorID uuid.UUID, status enums.OrderStatus, placedAt time.Time) *models.Order {
	t.Helper()
	order, err := repo.CreateOrder(context.Background(), &models.Order{
		ID:               uuid.New(),
		VendorID:         vendorID,
		CustomerName:     "Dana",
		CustomerPhone:    "+15550000042",
		ServiceRequested: "leaky faucet",
		Status:           status,
		PlacedAt:         placedAt,
	})
	require.NoError(t, err)
	return order
}

func TestCreateAndFindOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	vendorID := seedOrderVendor(t, db)

	created := seedOrder(t, repo, vendorID, enums.OrderStatusPending, time.Now().UTC())

	found, err := repo.FindOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, vendorID, found.VendorID)
	assert.Equal(t, enums.OrderStatusPending, found.Status)
	assert.Equal(t, "leaky faucet", found.ServiceRequested)
}

func TestListVendorOrdersNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	vendorID := seedOrderVendor(t, db)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	older := seedOrder(t, repo, vendorID, enums.OrderStatusPending, base)
	newer := seedOrder(t, repo, vendorID, enums.OrderStatusPending, base.Add(time.Hour))

	list, err := repo.ListVendorOrders(context.Background(), vendorID, pagination.Params{}, nil)
	require.NoError(t, err)
	require.Len(t, list.Orders, 2)
	assert.Equal(t, newer.ID.String(), list.Orders[0].ID)
	assert.Equal(t, older.ID.String(), list.Orders[1].ID)
	assert.Empty(t, list.NextCursor)
}

func TestListVendorOrdersCursorPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	vendorID := seedOrderVendor(t, db)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		seedOrder(t, repo, vendorID, enums.OrderStatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	first, err := repo.ListVendorOrders(context.Background(), vendorID, pagination.Params{Limit: 2}, nil)
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	require.NotEmpty(t, first.NextCursor)

	second, err := repo.ListVendorOrders(context.Background(), vendorID, pagination.Params{Limit: 2, Cursor: first.NextCursor}, nil)
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Empty(t, second.NextCursor)

	seen := map[string]bool{}
	for _, view := range append(first.Orders, second.Orders...) {
		seen[view.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestListVendorOrdersStatusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	vendorID := seedOrderVendor(t, db)

	now := time.Now().UTC()
	seedOrder(t, repo, vendorID, enums.OrderStatusPending, now)
	accepted := seedOrder(t, repo, vendorID, enums.OrderStatusAccepted, now.Add(time.Minute))

	status := enums.OrderStatusAccepted
	list, err := repo.ListVendorOrders(context.Background(), vendorID, pagination.Params{}, &status)
	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, accepted.ID.String(), list.Orders[0].ID)
}

func TestListVendorOrdersByStatuses(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	vendorID := seedOrderVendor(t, db)

	now := time.Now().UTC()
	seedOrder(t, repo, vendorID, enums.OrderStatusPending, now)
	seedOrder(t, repo, vendorID, enums.OrderStatusCompleted, now.Add(time.Minute))
	seedOrder(t, repo, vendorID, enums.OrderStatusRejected, now.Add(2*time.Minute))

	rows, err := repo.ListVendorOrdersByStatuses(context.Background(), vendorID, []enums.OrderStatus{
		enums.OrderStatusCompleted,
		enums.OrderStatusRejected,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.True(t, row.Status.IsTerminal())
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	vendorID := seedOrderVendor(t, db)

	created := seedOrder(t, repo, vendorID, enums.OrderStatusPending, time.Now().UTC())

	require.NoError(t, repo.UpdateOrderStatus(context.Background(), created.ID, enums.OrderStatusAccepted))

	found, err := repo.FindOrder(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusAccepted, found.Status)
}

func TestOrderVendorExists(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	vendorID := seedOrderVendor(t, db)

	exists, err := repo.VendorExists(context.Background(), vendorID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.VendorExists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, exists)
}
