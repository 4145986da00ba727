package notify

import (
	"time"

	"tshirt-store/models"
)

// EventKind names match the websocket event names the admin dashboard
// listens for.
type EventKind string

const (
	EventNewOrder     EventKind = "new-order"
	EventOrderUpdated EventKind = "order-updated"
)

// Event is the transient envelope relayed to admin sessions. It is never
// persisted: with no live subscriber it is simply dropped, and the poll
// fallback re-derives the miss from the order store.
type Event struct {
	Kind      EventKind    `json:"event"`
	Order     models.Order `json:"order"`
	Timestamp time.Time    `json:"timestamp"`
}

func NewOrderEvent(order models.Order) Event {
	return Event{Kind: EventNewOrder, Order: order, Timestamp: time.Now()}
}

func OrderUpdatedEvent(order models.Order) Event {
	return Event{Kind: EventOrderUpdated, Order: order, Timestamp: time.Now()}
}
