package directory

import (
	"time"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a customer booking against a vendor. Orders are never deleted;
// only their status changes.
type Order struct {
	ID               string
	VendorID         string
	CustomerName     string
	CustomerPhone    string
	ServiceRequested string
	Address          string
	Amount           *decimal.Decimal
	PlacedAt         time.Time
	Status           enums.OrderStatus
}

// OrderLedger maintains the order list, most recent first.
type OrderLedger struct {
	orders []Order
	index  map[string]int
	now    func() time.Time
}

// NewOrderLedger returns an empty ledger using the wall clock.
func NewOrderLedger() *OrderLedger {
	return &OrderLedger{
		index: make(map[string]int),
		now:   time.Now,
	}
}

// NewOrderLedgerWithClock returns a ledger with an injected clock.
func NewOrderLedgerWithClock(now func() time.Time) *OrderLedger {
	ledger := NewOrderLedger()
	if now != nil {
		ledger.now = now
	}
	return ledger
}

// Create records a new order with a fresh id, the current time, and
// status forced to pending. The order is prepended: most-recent-first is
// the display contract, not an incidental detail.
func (l *OrderLedger) Create(vendorID, customerName, customerPhone, serviceRequested, address string, amount *decimal.Decimal) Order {
	order := Order{
		ID:               uuid.NewString(),
		VendorID:         vendorID,
		CustomerName:     customerName,
		CustomerPhone:    customerPhone,
		ServiceRequested: serviceRequested,
		Address:          address,
		Amount:           amount,
		PlacedAt:         l.now(),
		Status:           enums.OrderStatusPending,
	}

	l.orders = append([]Order{order}, l.orders...)
	l.index = make(map[string]int, len(l.orders))
	for i, existing := range l.orders {
		l.index[existing.ID] = i
	}
	return order
}

// Load replaces the ledger contents with persisted orders, keeping their
// ids, statuses, and relative order intact. Callers supply the rows most
// recent first to preserve the display contract.
func (l *OrderLedger) Load(orders []Order) {
	l.orders = append(l.orders[:0:0], orders...)
	l.index = make(map[string]int, len(l.orders))
	for i, order := range l.orders {
		l.index[order.ID] = i
	}
}

// SetStatus unconditionally overwrites the order's status. No transition
// validation is applied; callers wanting the lifecycle guard use
// Transition instead. Returns false when the order does not exist.
func (l *OrderLedger) SetStatus(orderID string, status enums.OrderStatus) bool {
	pos, exists := l.index[orderID]
	if !exists {
		return false
	}
	l.orders[pos].Status = status
	return true
}

// Transition applies the status change only when the lifecycle allows it:
// pending may become accepted or rejected, accepted may become completed.
func (l *OrderLedger) Transition(orderID string, status enums.OrderStatus) error {
	pos, exists := l.index[orderID]
	if !exists {
		return ErrOrderNotFound
	}
	current := l.orders[pos].Status
	if !current.CanTransition(status) {
		return &InvalidTransitionError{From: current, To: status}
	}
	l.orders[pos].Status = status
	return nil
}

// Get returns the order by id.
func (l *OrderLedger) Get(orderID string) (Order, bool) {
	if pos, exists := l.index[orderID]; exists {
		return l.orders[pos], true
	}
	return Order{}, false
}

// ByVendor returns the vendor's orders, most recent first.
func (l *OrderLedger) ByVendor(vendorID string) []Order {
	var out []Order
	for _, order := range l.orders {
		if order.VendorID == vendorID {
			out = append(out, order)
		}
	}
	return out
}

// Partition splits a vendor's orders into the three vendor-view buckets:
// pending, active (accepted), and history (completed or rejected).
func (l *OrderLedger) Partition(vendorID string) (pending, active, history []Order) {
	for _, order := range l.ByVendor(vendorID) {
		switch order.Status {
		case enums.OrderStatusPending:
			pending = append(pending, order)
		case enums.OrderStatusAccepted:
			active = append(active, order)
		case enums.OrderStatusCompleted, enums.OrderStatusRejected:
			history = append(history, order)
		}
	}
	return pending, active, history
}

// All returns every order, most recent first.
func (l *OrderLedger) All() []Order {
	out := make([]Order, len(l.orders))
	copy(out, l.orders)
	return out
}
