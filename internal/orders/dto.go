package orders

import (
	"time"

	"github.com/hellolocalo/localo-backend/internal/directory"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// CreateOrderInput is the checkout payload.
type CreateOrderInput struct {
	VendorID         string  `json:"vendor_id" validate:"required,uuid"`
	CustomerName     string  `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerPhone    string  `json:"customer_phone" validate:"required,min=5,max=40"`
	ServiceRequested string  `json:"service_requested" validate:"required,min=2,max=300"`
	Address          *string `json:"address,omitempty" validate:"omitempty,max=300"`
	Notes            *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	Amount           *string `json:"amount,omitempty"`
}

// OrderView is the order payload returned to vendors and admins.
type OrderView struct {
	ID               string            `json:"id"`
	VendorID         string            `json:"vendor_id"`
	CustomerName     string            `json:"customer_name"`
	CustomerPhone    string            `json:"customer_phone"`
	ServiceRequested string            `json:"service_requested"`
	Address          *string           `json:"address,omitempty"`
	Notes            *string           `json:"notes,omitempty"`
	Amount           *decimal.Decimal  `json:"amount,omitempty"`
	Status           enums.OrderStatus `json:"status"`
	PlacedAt         time.Time         `json:"placed_at"`
}

// OrderList wraps a page of orders plus the next cursor.
type OrderList struct {
	Orders     []OrderView `json:"orders"`
	NextCursor string      `json:"next_cursor,omitempty"`
}

// OrderBuckets is the vendor dashboard partition.
type OrderBuckets struct {
	Pending []OrderView `json:"pending"`
	Active  []OrderView `json:"active"`
	History []OrderView `json:"history"`
}

func viewFromModel(row models.Order) OrderView {
	return OrderView{
		ID:               row.ID.String(),
		VendorID:         row.VendorID.String(),
		CustomerName:     row.CustomerName,
		CustomerPhone:    row.CustomerPhone,
		ServiceRequested: row.ServiceRequested,
		Address:          row.Address,
		Notes:            row.Notes,
		Amount:           row.Amount,
		Status:           row.Status,
		PlacedAt:         row.PlacedAt,
	}
}

// ledgerOrderFromModel maps a persisted row into the lifecycle ledger.
// Notes stay out of the ledger; they are presentation-only and rejoin the
// payload through the view lookup.
func ledgerOrderFromModel(row models.Order) directory.Order {
	order := directory.Order{
		ID:               row.ID.String(),
		VendorID:         row.VendorID.String(),
		CustomerName:     row.CustomerName,
		CustomerPhone:    row.CustomerPhone,
		ServiceRequested: row.ServiceRequested,
		Amount:           row.Amount,
		PlacedAt:         row.PlacedAt,
		Status:           row.Status,
	}
	if row.Address != nil {
		order.Address = *row.Address
	}
	return order
}
