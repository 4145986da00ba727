package notify

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tshirt-store/models"
)

func testOrder(id string) models.Order {
	return models.Order{ID: id, Name: "Customer", Status: models.StatusPending}
}

func TestPublishReachesAllSubscribers(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe()
	b := hub.Subscribe()
	defer hub.Unsubscribe(a)
	defer hub.Unsubscribe(b)

	hub.Publish(NewOrderEvent(testOrder("x")))

	for _, sub := range []*Subscriber{a, b} {
		select {
		case event := <-sub.C:
			assert.Equal(t, EventNewOrder, event.Kind)
			assert.Equal(t, "x", event.Order.ID)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive the event")
		}
	}
}

func TestPublishWithZeroSubscribersIsSilent(t *testing.T) {
	hub := NewHub()
	// Nothing to assert beyond "does not panic or block".
	hub.Publish(NewOrderEvent(testOrder("dropped")))
	assert.Equal(t, 0, hub.Subscribers())
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()

	hub.Unsubscribe(sub)
	hub.Unsubscribe(sub) // idempotent

	_, open := <-sub.C
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers())

	// Events after removal go nowhere.
	hub.Publish(NewOrderEvent(testOrder("x")))
}

func TestSlowSubscriberDoesNotBlockRelay(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe()
	defer hub.Unsubscribe(slow)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Publish(NewOrderEvent(testOrder(fmt.Sprintf("o%d", i))))
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("relay blocked on a slow subscriber")
	}

	// The buffer holds the earliest events; the overflow was dropped.
	assert.Len(t, slow.C, subscriberBuffer)
}

func TestConcurrentSubscribeUnsubscribeDuringRelay(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				hub.Publish(NewOrderEvent(testOrder("x")))
			}
		}
	}()

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := hub.Subscribe()
			// Drain a little so the publisher makes progress.
			for j := 0; j < 3; j++ {
				select {
				case <-sub.C:
				case <-time.After(10 * time.Millisecond):
				}
			}
			hub.Unsubscribe(sub)
		}()
	}

	// Let the churn run, then stop the publisher.
	time.Sleep(50 * time.Millisecond)
	close(stop)
	wg.Wait()

	require.Equal(t, 0, hub.Subscribers())
}

func TestPublisherSkipsEventsWithoutID(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	pub := NewPublisher(hub)
	pub.OrderCreated(models.Order{})
	pub.OrderUpdated(models.Order{})

	assert.Empty(t, sub.C)

	pub.OrderCreated(testOrder("x"))
	require.Len(t, sub.C, 1)
	event := <-sub.C
	assert.Equal(t, EventNewOrder, event.Kind)
	assert.False(t, event.Timestamp.IsZero())
}
