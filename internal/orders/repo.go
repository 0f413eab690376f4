package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/hellolocalo/localo-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListVendorOrders pages newest first; the cursor points at the last row
// of the previous page (placed_at, id).
func (r *repository) ListVendorOrders(ctx context.Context, vendorID uuid.UUID, params pagination.Params, status *enums.OrderStatus) (*OrderList, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("vendor_id = ?", vendorID).
		Order("placed_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(placed_at < ?) OR (placed_at = ? AND id < ?)",
			cursor.Timestamp, cursor.Timestamp, cursor.ID,
		)
	}

	var rows []models.Order
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	list := &OrderList{}
	if len(rows) > limit {
		last := rows[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			Timestamp: last.PlacedAt,
			ID:        last.ID,
		})
		rows = rows[:limit]
	}
	for _, row := range rows {
		list.Orders = append(list.Orders, viewFromModel(row))
	}
	return list, nil
}

func (r *repository) ListVendorOrdersByStatuses(ctx context.Context, vendorID uuid.UUID, statuses []enums.OrderStatus) ([]models.Order, error) {
	var rows []models.Order
	err := r.db.WithContext(ctx).
		Where("vendor_id = ? AND status IN ?", vendorID, statuses).
		Order("placed_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) VendorExists(ctx context.Context, vendorID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
