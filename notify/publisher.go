package notify

import (
	"log"

	"tshirt-store/models"
)

// Publisher hands order mutations to the hub. Publication is
// fire-and-forget: the order row is already committed when these run,
// and nothing here may fail the request that triggered it.
type Publisher struct {
	hub *Hub
}

func NewPublisher(hub *Hub) *Publisher {
	return &Publisher{hub: hub}
}

func (p *Publisher) OrderCreated(order models.Order) {
	if p == nil || p.hub == nil {
		return
	}
	if order.ID == "" {
		log.Println("Skipping new-order notification: order has no ID")
		return
	}
	p.hub.Publish(NewOrderEvent(order))
}

func (p *Publisher) OrderUpdated(order models.Order) {
	if p == nil || p.hub == nil {
		return
	}
	if order.ID == "" {
		log.Println("Skipping order-updated notification: order has no ID")
		return
	}
	p.hub.Publish(OrderUpdatedEvent(order))
}
