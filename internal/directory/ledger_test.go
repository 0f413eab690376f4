package directory

import (
	"testing"
	"time"

	"github.com/hellolocalo/localo-backend/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStartsPendingAndPrepends(t *testing.T) {
	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	ledger := NewOrderLedgerWithClock(func() time.Time { return now })

	amount := decimal.NewFromInt(120)
	first := ledger.Create("v1", "Sam", "555-0100", "Leaky faucet", "12 Elm St", &amount)
	second := ledger.Create("v1", "Alex", "555-0101", "Boiler check", "", nil)

	assert.Equal(t, enums.OrderStatusPending, first.Status)
	assert.Equal(t, now, first.PlacedAt)
	assert.NotEqual(t, first.ID, second.ID)

	all := ledger.All()
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID, "newest order must come first")
	assert.Equal(t, first.ID, all[1].ID)
}

func TestLoadRestoresPersistedOrders(t *testing.T) {
	ledger := NewOrderLedger()
	stale := ledger.Create("v9", "Old", "555-0000", "Gutter clean", "", nil)

	ledger.Load([]Order{
		{ID: "o2", VendorID: "v1", Status: enums.OrderStatusAccepted},
		{ID: "o1", VendorID: "v1", Status: enums.OrderStatusPending},
	})

	all := ledger.All()
	require.Len(t, all, 2)
	assert.Equal(t, "o2", all[0].ID, "load keeps the supplied ordering")

	_, ok := ledger.Get(stale.ID)
	assert.False(t, ok, "load replaces earlier contents")

	got, ok := ledger.Get("o1")
	require.True(t, ok)
	assert.Equal(t, enums.OrderStatusPending, got.Status)

	require.NoError(t, ledger.Transition("o2", enums.OrderStatusCompleted))
	pending, active, history := ledger.Partition("v1")
	assert.Len(t, pending, 1)
	assert.Empty(t, active)
	assert.Len(t, history, 1)
}

func TestSetStatusIsUnguarded(t *testing.T) {
	ledger := NewOrderLedger()
	order := ledger.Create("v1", "Sam", "555-0100", "Leaky faucet", "", nil)

	// rejected then accepted: permissive overwrite, no lifecycle guard
	require.True(t, ledger.SetStatus(order.ID, enums.OrderStatusRejected))
	require.True(t, ledger.SetStatus(order.ID, enums.OrderStatusAccepted))

	got, ok := ledger.Get(order.ID)
	require.True(t, ok)
	assert.Equal(t, enums.OrderStatusAccepted, got.Status)

	assert.False(t, ledger.SetStatus("missing", enums.OrderStatusAccepted))
}

func TestTransitionEnforcesLifecycle(t *testing.T) {
	ledger := NewOrderLedger()
	order := ledger.Create("v1", "Sam", "555-0100", "Leaky faucet", "", nil)

	require.NoError(t, ledger.Transition(order.ID, enums.OrderStatusAccepted))
	require.NoError(t, ledger.Transition(order.ID, enums.OrderStatusCompleted))

	err := ledger.Transition(order.ID, enums.OrderStatusPending)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, enums.OrderStatusCompleted, invalid.From)

	assert.ErrorIs(t, ledger.Transition("missing", enums.OrderStatusAccepted), ErrOrderNotFound)
}

func TestTransitionRejectsSkippingAccepted(t *testing.T) {
	ledger := NewOrderLedger()
	order := ledger.Create("v1", "Sam", "555-0100", "Leaky faucet", "", nil)

	err := ledger.Transition(order.ID, enums.OrderStatusCompleted)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)

	got, _ := ledger.Get(order.ID)
	assert.Equal(t, enums.OrderStatusPending, got.Status)
}

func TestPartitionBuckets(t *testing.T) {
	ledger := NewOrderLedger()
	pendingOrder := ledger.Create("v1", "A", "1", "job", "", nil)
	activeOrder := ledger.Create("v1", "B", "2", "job", "", nil)
	doneOrder := ledger.Create("v1", "C", "3", "job", "", nil)
	rejectedOrder := ledger.Create("v1", "D", "4", "job", "", nil)
	otherVendor := ledger.Create("v2", "E", "5", "job", "", nil)

	ledger.SetStatus(activeOrder.ID, enums.OrderStatusAccepted)
	ledger.SetStatus(doneOrder.ID, enums.OrderStatusCompleted)
	ledger.SetStatus(rejectedOrder.ID, enums.OrderStatusRejected)

	pending, active, history := ledger.Partition("v1")
	require.Len(t, pending, 1)
	assert.Equal(t, pendingOrder.ID, pending[0].ID)
	require.Len(t, active, 1)
	assert.Equal(t, activeOrder.ID, active[0].ID)
	require.Len(t, history, 2)
	assert.True(t, containsOrder(history, doneOrder.ID))
	assert.True(t, containsOrder(history, rejectedOrder.ID))

	assert.False(t, containsOrder(pending, otherVendor.ID))
}

func TestAcceptedThenCompletedMovesToHistory(t *testing.T) {
	ledger := NewOrderLedger()
	order := ledger.Create("v1", "Sam", "555-0100", "Leaky faucet", "", nil)

	ledger.SetStatus(order.ID, enums.OrderStatusAccepted)
	ledger.SetStatus(order.ID, enums.OrderStatusCompleted)

	pending, active, history := ledger.Partition("v1")
	assert.Empty(t, pending)
	assert.Empty(t, active)
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)
}

func TestByVendorMostRecentFirst(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	ledger := NewOrderLedgerWithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	})

	older := ledger.Create("v1", "A", "1", "job", "", nil)
	newer := ledger.Create("v1", "B", "2", "job", "", nil)

	orders := ledger.ByVendor("v1")
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

func containsOrder(orders []Order, id string) bool {
	for _, order := range orders {
		if order.ID == id {
			return true
		}
	}
	return false
}
