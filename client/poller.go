package client

import (
	"context"
	"log"
	"sync"
	"time"

	"tshirt-store/models"
	"tshirt-store/notify"
)

// LatestFetcher queries the single most recently created order, or nil
// when the store is empty.
type LatestFetcher interface {
	LatestOrder(ctx context.Context) (*models.Order, error)
}

// Poller is the fallback delivery channel. It runs whenever the push
// connection is anything other than connected, asking the store for the
// newest order each interval and feeding unseen identities into the
// session as synthetic new-order events. The timer survives status
// churn among the degraded states (a flapping push connection cycles
// connecting and error faster than the poll interval) and is torn down
// only when the push channel is actually connected.
type Poller struct {
	session  *Session
	fetch    LatestFetcher
	interval time.Duration

	signalMu sync.Mutex
	active   chan bool
}

func NewPoller(session *Session, fetch LatestFetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	p := &Poller{
		session:  session,
		fetch:    fetch,
		interval: interval,
		active:   make(chan bool, 1),
	}
	session.OnStatusChange(p.onStatus)
	return p
}

func (p *Poller) onStatus(status ConnStatus) {
	// Latest transition wins; a stale queued signal is replaced.
	p.signalMu.Lock()
	defer p.signalMu.Unlock()
	select {
	case <-p.active:
	default:
	}
	p.active <- status != StatusConnected
}

// Run drives the poll loop until ctx is cancelled. Call it in its own
// goroutine.
func (p *Poller) Run(ctx context.Context) {
	var ticker *time.Ticker
	var tick <-chan time.Time

	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
			tick = nil
		}
	}
	defer stop()

	// Polling starts active unless the push channel is already up.
	if p.session.Status() != StatusConnected {
		ticker = time.NewTicker(p.interval)
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case active := <-p.active:
			if !active {
				stop()
				continue
			}
			// An already-running countdown keeps its deadline; resetting
			// it on every degraded-state transition would let a flapping
			// push connection starve the fallback forever.
			if ticker == nil {
				ticker = time.NewTicker(p.interval)
				tick = ticker.C
			}
			if p.session.Status() == StatusError || p.session.Status() == StatusDisconnected {
				p.session.SetStatus(StatusPolling)
			}
		case <-tick:
			p.pollOnce(ctx)
		}
	}
}

func (p *Poller) pollOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	order, err := p.fetch.LatestOrder(ctx)
	if err != nil {
		log.Printf("Order poll failed: %v", err)
		return
	}
	if order == nil || p.session.Seen(order.ID) {
		return
	}
	p.session.Apply(notify.NewOrderEvent(*order))
}
