// Package client implements the admin-session side of the order
// notification pipeline: a websocket push connector, a polling
// fallback, and the reconciliation engine that merges both with full
// reloads into one de-duplicated, most-recent-first order view.
package client

import (
	"context"
	"log"
	"sync"

	"tshirt-store/models"
	"tshirt-store/notify"
)

type LoadState string

const (
	LoadLoading LoadState = "loading"
	LoadReady   LoadState = "ready"
	LoadError   LoadState = "error"
)

type ConnStatus string

const (
	StatusConnecting   ConnStatus = "connecting"
	StatusConnected    ConnStatus = "connected"
	StatusPolling      ConnStatus = "polling"
	StatusDisconnected ConnStatus = "disconnected"
	StatusError        ConnStatus = "error"
)

// OrderLoader fetches the session's full order page, newest first.
type OrderLoader interface {
	LoadOrders(ctx context.Context) ([]models.Order, error)
}

// Session reconciles push events, poll results and full reloads into a
// single ordered view. All mutating entry points take the session lock,
// so handlers from different goroutines (websocket reader, poll ticker,
// user actions) never interleave mid-mutation.
type Session struct {
	mu sync.Mutex

	loader   OrderLoader
	onAlert  func(models.Order)
	onStatus []func(ConnStatus)

	loadState LoadState
	loadErr   error
	status    ConnStatus
	orders    []models.Order
	seen      map[string]struct{}
	unread    int
}

func NewSession(loader OrderLoader) *Session {
	return &Session{
		loader:    loader,
		loadState: LoadLoading,
		status:    StatusConnecting,
		seen:      make(map[string]struct{}),
	}
}

// OnAlert registers the transient new-order alert callback. It fires
// outside the session lock.
func (s *Session) OnAlert(fn func(models.Order)) {
	s.mu.Lock()
	s.onAlert = fn
	s.mu.Unlock()
}

// OnStatusChange registers a connection-status listener (the poller
// uses this to start and stop its timer).
func (s *Session) OnStatusChange(fn func(ConnStatus)) {
	s.mu.Lock()
	s.onStatus = append(s.onStatus, fn)
	s.mu.Unlock()
}

// Load runs the initial full fetch. The fetched page replaces the list
// and seeds the seen set; the unread counter is untouched because
// history is not "new".
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loadState = LoadLoading
	s.loadErr = nil
	s.mu.Unlock()

	orders, err := s.loader.LoadOrders(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.loadState = LoadError
		s.loadErr = err
		return err
	}

	s.orders = append([]models.Order(nil), orders...)
	for _, o := range orders {
		s.seen[o.ID] = struct{}{}
	}
	s.loadState = LoadReady
	return nil
}

// Refresh clears any surfaced error, re-issues the full load and resets
// the unread counter. The seen set is preserved so a refresh never
// re-alerts for orders this session already knows.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.unread = 0
	s.mu.Unlock()
	return s.Load(ctx)
}

// Apply feeds one event into the session, whichever channel delivered
// it. Duplicate new-order deliveries (push and poll racing) are silent
// no-ops; updates for identities outside the load window are ignored;
// malformed events are dropped.
func (s *Session) Apply(event notify.Event) {
	if event.Order.ID == "" {
		log.Printf("Dropping malformed %s event: missing order ID", event.Kind)
		return
	}

	var alert func(models.Order)

	s.mu.Lock()
	switch event.Kind {
	case notify.EventNewOrder:
		if _, dup := s.seen[event.Order.ID]; dup {
			break
		}
		s.seen[event.Order.ID] = struct{}{}
		s.orders = append([]models.Order{event.Order}, s.orders...)
		s.unread++
		alert = s.onAlert
	case notify.EventOrderUpdated:
		for i := range s.orders {
			if s.orders[i].ID == event.Order.ID {
				mergeOrder(&s.orders[i], event.Order)
				break
			}
		}
	default:
		log.Printf("Dropping event with unknown kind %q", event.Kind)
	}
	s.mu.Unlock()

	if alert != nil {
		alert(event.Order)
	}
}

// mergeOrder overwrites the fields an update can carry, leaving the
// creation-time snapshot intact.
func mergeOrder(dst *models.Order, src models.Order) {
	dst.Status = src.Status
	dst.Notes = src.Notes
	dst.TrackingNumber = src.TrackingNumber
	dst.UpdatedAt = src.UpdatedAt
}

// MarkViewed resets the unread counter; the list and seen set are
// untouched.
func (s *Session) MarkViewed() {
	s.mu.Lock()
	s.unread = 0
	s.mu.Unlock()
}

// SetStatus records a connection-status transition and notifies
// listeners. Redundant transitions are ignored.
func (s *Session) SetStatus(status ConnStatus) {
	s.mu.Lock()
	if s.status == status {
		s.mu.Unlock()
		return
	}
	s.status = status
	listeners := append([]func(ConnStatus){}, s.onStatus...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(status)
	}
}

func (s *Session) Status() ConnStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Session) State() LoadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadState
}

func (s *Session) LoadErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// Orders returns a copy of the current view, newest first.
func (s *Session) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Order(nil), s.orders...)
}

func (s *Session) Unread() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}

// Seen reports whether this session has already rendered the identity.
func (s *Session) Seen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[id]
	return ok
}
