package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/internal/directory"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/hellolocalo/localo-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes checkout, vendor order management, and admin overrides.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*OrderView, error)
	Get(ctx context.Context, id uuid.UUID, vendorScope *uuid.UUID) (*OrderView, error)
	ListForVendor(ctx context.Context, vendorID uuid.UUID, params pagination.Params, status *enums.OrderStatus) (*OrderList, error)
	Buckets(ctx context.Context, vendorID uuid.UUID) (*OrderBuckets, error)
	Decide(ctx context.Context, id uuid.UUID, vendorScope *uuid.UUID, next enums.OrderStatus) (*OrderView, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderView, error)
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

// Create records a new order for a vendor. Orders always start pending
// regardless of caller input.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderView, error) {
	vendorID, err := uuid.Parse(input.VendorID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid vendor id").
			WithDetails(map[string]string{"vendor_id": input.VendorID})
	}

	exists, err := s.repo.VendorExists(ctx, vendorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check vendor")
	}
	if !exists {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}

	amount, err := parseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:               uuid.New(),
		VendorID:         vendorID,
		CustomerName:     input.CustomerName,
		CustomerPhone:    input.CustomerPhone,
		ServiceRequested: input.ServiceRequested,
		Address:          input.Address,
		Notes:            input.Notes,
		Amount:           amount,
		Status:           enums.OrderStatusPending,
		PlacedAt:         s.now().UTC(),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateOrder(ctx, order)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}

	view := viewFromModel(*order)
	return &view, nil
}

// Get fetches a single order. When vendorScope is set the order must
// belong to that vendor.
func (s *service) Get(ctx context.Context, id uuid.UUID, vendorScope *uuid.UUID) (*OrderView, error) {
	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkScope(order, vendorScope); err != nil {
		return nil, err
	}
	view := viewFromModel(*order)
	return &view, nil
}

func (s *service) ListForVendor(ctx context.Context, vendorID uuid.UUID, params pagination.Params, status *enums.OrderStatus) (*OrderList, error) {
	if status != nil && !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": status.String()})
	}
	list, err := s.repo.ListVendorOrders(ctx, vendorID, params, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// Buckets splits a vendor's orders into the dashboard sections: pending
// awaits a decision, active is accepted work, history is terminal.
func (s *service) Buckets(ctx context.Context, vendorID uuid.UUID) (*OrderBuckets, error) {
	rows, err := s.repo.ListVendorOrdersByStatuses(ctx, vendorID, []enums.OrderStatus{
		enums.OrderStatusPending,
		enums.OrderStatusAccepted,
		enums.OrderStatusCompleted,
		enums.OrderStatusRejected,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	views := make(map[string]OrderView, len(rows))
	entries := make([]directory.Order, 0, len(rows))
	for _, row := range rows {
		views[row.ID.String()] = viewFromModel(row)
		entries = append(entries, ledgerOrderFromModel(row))
	}
	ledger := directory.NewOrderLedger()
	ledger.Load(entries)

	pending, active, history := ledger.Partition(vendorID.String())
	return &OrderBuckets{
		Pending: viewsFor(views, pending),
		Active:  viewsFor(views, active),
		History: viewsFor(views, history),
	}, nil
}

func viewsFor(views map[string]OrderView, orders []directory.Order) []OrderView {
	if len(orders) == 0 {
		return nil
	}
	out := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		out = append(out, views[order.ID])
	}
	return out
}

// Decide applies the strict lifecycle used by vendors: pending orders can
// be accepted or rejected, accepted orders can be completed.
func (s *service) Decide(ctx context.Context, id uuid.UUID, vendorScope *uuid.UUID, next enums.OrderStatus) (*OrderView, error) {
	if !next.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": next.String()})
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := checkScope(order, vendorScope); err != nil {
		return nil, err
	}

	ledger := directory.NewOrderLedger()
	ledger.Load([]directory.Order{ledgerOrderFromModel(*order)})
	if err := ledger.Transition(order.ID.String(), next); err != nil {
		var invalid *directory.InvalidTransitionError
		if errors.As(err, &invalid) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "disallowed order transition").
				WithDetails(map[string]string{
					"from": invalid.From.String(),
					"to":   invalid.To.String(),
				})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "order transition")
	}

	return s.applyStatus(ctx, order, next)
}

// SetStatus is the admin override. It skips the lifecycle checks and
// forces any valid status onto the order.
func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*OrderView, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status").
			WithDetails(map[string]string{"status": status.String()})
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyStatus(ctx, order, status)
}

func (s *service) applyStatus(ctx context.Context, order *models.Order, status enums.OrderStatus) (*OrderView, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).UpdateOrderStatus(ctx, order.ID, status)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}

	order.Status = status
	view := viewFromModel(*order)
	return &view, nil
}

func (s *service) findOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := s.repo.FindOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find order")
	}
	return order, nil
}

func checkScope(order *models.Order, vendorScope *uuid.UUID) error {
	if vendorScope == nil {
		return nil
	}
	if order.VendorID != *vendorScope {
		return pkgerrors.New(pkgerrors.CodeForbidden, "order belongs to another vendor")
	}
	return nil
}

func parseAmount(raw *string) (*decimal.Decimal, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	amount, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid amount").
			WithDetails(map[string]string{"amount": *raw})
	}
	if amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative").
			WithDetails(map[string]string{"amount": *raw})
	}
	return &amount, nil
}
