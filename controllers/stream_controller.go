package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tshirt-store/notify"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

type StreamController struct {
	Hub *notify.Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS middleware already gates the browser origins that can
		// reach the token-protected admin routes.
		return true
	},
}

// @Summary Subscribe to order events
// @Description Upgrades to a websocket and streams new-order / order-updated events to the admin session. Auth token is taken from the query string.
// @Tags Admin - Events
// @Security BearerAuth
// @Param token query string false "JWT (websocket clients cannot set headers)"
// @Success 101 {string} string "Switching Protocols"
// @Router /admin/events [get]
func (ctrl *StreamController) Subscribe(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Println("Websocket upgrade failed:", err)
		return
	}

	sub := ctrl.Hub.Subscribe()
	defer ctrl.Hub.Unsubscribe(sub)

	done := make(chan struct{})

	// Reader: the admin session never sends data frames, but reading is
	// what surfaces pongs and close frames.
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer conn.Close()

	for {
		select {
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				log.Println("Websocket write failed:", err)
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
