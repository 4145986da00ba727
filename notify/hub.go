package notify

import (
	"log"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsRelayed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_notify_events_relayed_total",
			Help: "Notification events relayed to push subscribers",
		},
		[]string{"kind"},
	)

	eventsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_notify_events_dropped_total",
			Help: "Notification events dropped because a subscriber buffer was full",
		},
		[]string{"kind"},
	)

	subscriberGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_notify_subscribers",
			Help: "Currently subscribed push listeners",
		},
	)
)

const subscriberBuffer = 16

// Subscriber is one push listener. Events arrive on C until Unsubscribe
// closes it.
type Subscriber struct {
	C chan Event

	hub    *Hub
	closed bool
}

// Hub fans every published event out to all current subscribers.
// Subscribe and Unsubscribe are safe to call while Publish is running.
// Delivery is best-effort: a subscriber that cannot keep up loses
// events rather than blocking the relay, and zero subscribers means the
// event is dropped silently.
type Hub struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*Subscriber]struct{})}
}

func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{C: make(chan Event, subscriberBuffer), hub: h}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	total := len(h.subs)
	h.mu.Unlock()

	subscriberGauge.Set(float64(total))
	log.Printf("Push subscriber added (total=%d)", total)
	return sub
}

// Unsubscribe removes the listener and closes its channel. After it
// returns no further events are delivered to the subscriber.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if sub.closed {
		return
	}
	sub.closed = true
	delete(h.subs, sub)
	close(sub.C)

	subscriberGauge.Set(float64(len(h.subs)))
	log.Printf("Push subscriber removed (total=%d)", len(h.subs))
}

// Publish relays the event to every current subscriber in receipt
// order. The read lock is held across the sends so a subscriber cannot
// be closed mid-delivery; sends never block.
func (h *Hub) Publish(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		select {
		case sub.C <- event:
			eventsRelayed.WithLabelValues(string(event.Kind)).Inc()
		default:
			eventsDropped.WithLabelValues(string(event.Kind)).Inc()
			log.Printf("Dropping %s event for order %s: subscriber buffer full", event.Kind, event.Order.ID)
		}
	}
}

// Subscribers reports the current listener count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
