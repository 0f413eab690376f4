package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/hellolocalo/localo-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the orders table.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListVendorOrders(ctx context.Context, vendorID uuid.UUID, params pagination.Params, status *enums.OrderStatus) (*OrderList, error)
	ListVendorOrdersByStatuses(ctx context.Context, vendorID uuid.UUID, statuses []enums.OrderStatus) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	VendorExists(ctx context.Context, vendorID uuid.UUID) (bool, error)
}
