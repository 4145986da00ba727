package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tshirt-store/models"
	"tshirt-store/notify"
)

type stubLoader struct {
	orders []models.Order
	err    error
	calls  int
}

func (l *stubLoader) LoadOrders(ctx context.Context) ([]models.Order, error) {
	l.calls++
	if l.err != nil {
		return nil, l.err
	}
	return l.orders, nil
}

func makeOrder(id, name, status string) models.Order {
	return models.Order{
		ID:        id,
		Name:      name,
		Status:    status,
		Subtotal:  990,
		TotalCost: 1110,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func TestInitialLoadSeedsSeenSet(t *testing.T) {
	loader := &stubLoader{orders: []models.Order{
		makeOrder("a", "Alice", "pending"),
		makeOrder("b", "Bob", "shipped"),
	}}
	s := NewSession(loader)

	require.NoError(t, s.Load(context.Background()))

	assert.Equal(t, LoadReady, s.State())
	assert.Len(t, s.Orders(), 2)
	assert.True(t, s.Seen("a"))
	assert.True(t, s.Seen("b"))
	assert.Equal(t, 0, s.Unread(), "history is not new")
}

func TestNewOrderPrependsAndCounts(t *testing.T) {
	s := NewSession(&stubLoader{})
	require.NoError(t, s.Load(context.Background()))

	var alerted []string
	s.OnAlert(func(o models.Order) { alerted = append(alerted, o.ID) })

	s.Apply(notify.NewOrderEvent(makeOrder("x", "Xenia", "pending")))
	s.Apply(notify.NewOrderEvent(makeOrder("y", "Yusuf", "pending")))

	orders := s.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "y", orders[0].ID, "newest first")
	assert.Equal(t, 2, s.Unread())
	assert.Equal(t, []string{"x", "y"}, alerted)
}

func TestDuplicateDeliveryIsIdempotent(t *testing.T) {
	s := NewSession(&stubLoader{})
	require.NoError(t, s.Load(context.Background()))

	alerts := 0
	s.OnAlert(func(models.Order) { alerts++ })

	// Push wins the race, then the poll discovers the same identity.
	order := makeOrder("x", "Xenia", "pending")
	s.Apply(notify.NewOrderEvent(order))
	s.Apply(notify.NewOrderEvent(order))
	s.Apply(notify.NewOrderEvent(order))

	assert.Len(t, s.Orders(), 1)
	assert.Equal(t, 1, s.Unread())
	assert.Equal(t, 1, alerts)
}

func TestOrderUpdatedMergesTargetedFieldsOnly(t *testing.T) {
	original := makeOrder("x", "Xenia", "pending")
	original.District = "Dhaka"
	s := NewSession(&stubLoader{orders: []models.Order{original}})
	require.NoError(t, s.Load(context.Background()))

	updated := original
	updated.Status = "shipped"
	tracking := "TRK-1"
	updated.TrackingNumber = &tracking
	updated.Name = "SHOULD NOT LEAK" // updates never touch customer fields
	s.Apply(notify.OrderUpdatedEvent(updated))

	orders := s.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, "shipped", orders[0].Status)
	require.NotNil(t, orders[0].TrackingNumber)
	assert.Equal(t, "TRK-1", *orders[0].TrackingNumber)
	assert.Equal(t, "Xenia", orders[0].Name)
	assert.Equal(t, "Dhaka", orders[0].District)
	assert.Equal(t, 0, s.Unread(), "updates are not new orders")
}

func TestOrderUpdatedUnknownIdentityIgnored(t *testing.T) {
	s := NewSession(&stubLoader{orders: []models.Order{makeOrder("a", "Alice", "pending")}})
	require.NoError(t, s.Load(context.Background()))

	s.Apply(notify.OrderUpdatedEvent(makeOrder("ghost", "Ghost", "shipped")))

	assert.Len(t, s.Orders(), 1)
	assert.False(t, s.Seen("ghost"))
}

func TestMalformedEventDropped(t *testing.T) {
	s := NewSession(&stubLoader{})
	require.NoError(t, s.Load(context.Background()))

	s.Apply(notify.Event{Kind: notify.EventNewOrder})

	assert.Empty(t, s.Orders())
	assert.Equal(t, 0, s.Unread())
}

func TestMarkViewedResetsCounterOnly(t *testing.T) {
	s := NewSession(&stubLoader{})
	require.NoError(t, s.Load(context.Background()))

	s.Apply(notify.NewOrderEvent(makeOrder("x", "Xenia", "pending")))
	require.Equal(t, 1, s.Unread())

	s.MarkViewed()

	assert.Equal(t, 0, s.Unread())
	assert.Len(t, s.Orders(), 1)
	assert.True(t, s.Seen("x"))
}

func TestRefreshPreservesSeenSet(t *testing.T) {
	loader := &stubLoader{orders: []models.Order{makeOrder("a", "Alice", "pending")}}
	s := NewSession(loader)
	require.NoError(t, s.Load(context.Background()))

	s.Apply(notify.NewOrderEvent(makeOrder("x", "Xenia", "pending")))
	require.Equal(t, 1, s.Unread())

	require.NoError(t, s.Refresh(context.Background()))

	assert.Equal(t, 0, s.Unread())
	assert.True(t, s.Seen("x"), "refresh must not forget identities")

	// A late duplicate for x after refresh still cannot alert again.
	s.Apply(notify.NewOrderEvent(makeOrder("x", "Xenia", "pending")))
	assert.Equal(t, 0, s.Unread())
}

func TestLoadFailureIsRetryable(t *testing.T) {
	loader := &stubLoader{err: errors.New("connection refused")}
	s := NewSession(loader)

	require.Error(t, s.Load(context.Background()))
	assert.Equal(t, LoadError, s.State())
	assert.Error(t, s.LoadErr())

	loader.err = nil
	loader.orders = []models.Order{makeOrder("a", "Alice", "pending")}

	require.NoError(t, s.Load(context.Background()))
	assert.Equal(t, LoadReady, s.State())
	assert.NoError(t, s.LoadErr())
	assert.Len(t, s.Orders(), 1)
}

func TestStatusListenersNotified(t *testing.T) {
	s := NewSession(&stubLoader{})

	var seen []ConnStatus
	s.OnStatusChange(func(st ConnStatus) { seen = append(seen, st) })

	s.SetStatus(StatusConnected)
	s.SetStatus(StatusConnected) // redundant, no second notification
	s.SetStatus(StatusError)
	s.SetStatus(StatusPolling)

	assert.Equal(t, []ConnStatus{StatusConnected, StatusError, StatusPolling}, seen)
	assert.Equal(t, StatusPolling, s.Status())
}

func TestAllStatusListenersReceiveEachTransition(t *testing.T) {
	s := NewSession(&stubLoader{})

	var first, second []ConnStatus
	s.OnStatusChange(func(st ConnStatus) { first = append(first, st) })
	s.OnStatusChange(func(st ConnStatus) { second = append(second, st) })

	s.SetStatus(StatusConnected)
	s.SetStatus(StatusDisconnected)

	want := []ConnStatus{StatusConnected, StatusDisconnected}
	assert.Equal(t, want, first)
	assert.Equal(t, want, second)
}
