package client

import (
	"context"
	"log"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"tshirt-store/notify"
)

const reconnectDelay = 5 * time.Second

// PushConn keeps a websocket subscription to the admin event stream
// alive. While connected it feeds decoded events straight into the
// session; any dial or read failure flips the session off "connected",
// which hands delivery over to the poller until the next successful
// reconnect.
type PushConn struct {
	endpoint string
	token    string
	session  *Session
	dialer   *websocket.Dialer
}

// NewPushConn builds a connector for the given stream endpoint
// (e.g. ws://host:8080/admin/events). The token is passed as a query
// parameter because browsers cannot set headers on websocket dials, and
// the server accepts the same form.
func NewPushConn(endpoint, token string, session *Session) *PushConn {
	return &PushConn{
		endpoint: endpoint,
		token:    token,
		session:  session,
		dialer:   websocket.DefaultDialer,
	}
}

// Run dials and re-dials until ctx is cancelled. Call it in its own
// goroutine.
func (c *PushConn) Run(ctx context.Context) {
	for {
		c.session.SetStatus(StatusConnecting)

		conn, err := c.dial(ctx)
		if err != nil {
			log.Printf("Push connect failed: %v", err)
			c.session.SetStatus(StatusError)
		} else {
			c.session.SetStatus(StatusConnected)
			c.read(conn)
			c.session.SetStatus(StatusDisconnected)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (c *PushConn) dial(ctx context.Context) (*websocket.Conn, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	conn, _, err := c.dialer.DialContext(ctx, u.String(), nil)
	return conn, err
}

// read pumps events until the connection breaks. Frames that do not
// decode into an event are skipped; the session drops anything without
// an order identity.
func (c *PushConn) read(conn *websocket.Conn) {
	defer conn.Close()

	for {
		var event notify.Event
		if err := conn.ReadJSON(&event); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Push read failed: %v", err)
			}
			return
		}
		c.session.Apply(event)
	}
}
