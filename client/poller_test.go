package client

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tshirt-store/models"
)

type stubFetcher struct {
	mu     sync.Mutex
	latest *models.Order
	calls  int
}

func (f *stubFetcher) LatestOrder(ctx context.Context) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.latest == nil {
		return nil, nil
	}
	o := *f.latest
	return &o, nil
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *stubFetcher) setLatest(o models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = &o
}

const tick = 10 * time.Millisecond

func startPoller(t *testing.T, s *Session, f *stubFetcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	p := NewPoller(s, f, tick)
	go p.Run(ctx)
}

func TestPollerDiscoversUnseenOrder(t *testing.T) {
	s := NewSession(&stubLoader{})
	require.NoError(t, s.Load(context.Background()))

	fetcher := &stubFetcher{}
	fetcher.setLatest(makeOrder("x", "Xenia", "pending"))
	startPoller(t, s, fetcher)

	assert.Eventually(t, func() bool {
		return s.Seen("x")
	}, time.Second, tick, "poll fallback should surface the order")
	assert.Equal(t, 1, s.Unread())

	// Later ticks with the same latest order stay no-ops.
	time.Sleep(5 * tick)
	assert.Len(t, s.Orders(), 1)
	assert.Equal(t, 1, s.Unread())
}

func TestPollerSkipsSeenOrder(t *testing.T) {
	s := NewSession(&stubLoader{orders: []models.Order{makeOrder("x", "Xenia", "pending")}})
	require.NoError(t, s.Load(context.Background()))

	fetcher := &stubFetcher{}
	fetcher.setLatest(makeOrder("x", "Xenia", "pending"))
	startPoller(t, s, fetcher)

	time.Sleep(5 * tick)
	assert.Len(t, s.Orders(), 1)
	assert.Equal(t, 0, s.Unread())
}

func TestPollerStopsWhenPushConnects(t *testing.T) {
	s := NewSession(&stubLoader{})
	require.NoError(t, s.Load(context.Background()))

	fetcher := &stubFetcher{}
	startPoller(t, s, fetcher)

	assert.Eventually(t, func() bool {
		return fetcher.callCount() > 0
	}, time.Second, tick, "polling should be active before push connects")

	s.SetStatus(StatusConnected)
	time.Sleep(2 * tick) // allow one in-flight tick to drain
	quiesced := fetcher.callCount()

	time.Sleep(10 * tick)
	assert.Equal(t, quiesced, fetcher.callCount(), "no queries while connected")
}

func TestPollerResumesOnDisconnect(t *testing.T) {
	s := NewSession(&stubLoader{})
	require.NoError(t, s.Load(context.Background()))
	s.SetStatus(StatusConnected)

	fetcher := &stubFetcher{}
	startPoller(t, s, fetcher)

	time.Sleep(5 * tick)
	require.Equal(t, 0, fetcher.callCount())

	// Push drops; a new order must still be discovered within a tick.
	s.SetStatus(StatusError)
	fetcher.setLatest(makeOrder("x", "Xenia", "pending"))

	assert.Eventually(t, func() bool {
		return s.Seen("x")
	}, time.Second, tick)
	assert.Equal(t, StatusPolling, s.Status(), "fallback reports itself as polling")
}

func TestPollerSurvivesReconnectChurn(t *testing.T) {
	s := NewSession(&stubLoader{})
	require.NoError(t, s.Load(context.Background()))

	fetcher := &stubFetcher{}
	fetcher.setLatest(makeOrder("x", "Xenia", "pending"))
	startPoller(t, s, fetcher)

	// A push connector that cannot reach the server cycles
	// connecting and error far faster than the poll interval. The
	// countdown must keep running through that churn or the fallback
	// never queries at all.
	churnCtx, stopChurn := context.WithCancel(context.Background())
	defer stopChurn()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-churnCtx.Done():
				return
			default:
				s.SetStatus(StatusConnecting)
				time.Sleep(tick / 4)
				s.SetStatus(StatusError)
				time.Sleep(tick / 4)
			}
		}
	}()

	assert.Eventually(t, func() bool {
		return s.Seen("x")
	}, time.Second, tick, "fallback starved while the push connection flapped")

	stopChurn()
	wg.Wait()
}
