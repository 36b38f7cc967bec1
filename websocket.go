package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"unscramble/internal/types"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
)

// The default CheckOrigin rejects cross-origin upgrades, which is what a
// same-page client needs.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  512,
	WriteBufferSize: 1024,
}

// wsHandler streams the session's snapshot every time it changes. The
// client only listens; game actions still go through the POST routes.
func (app *App) wsHandler(c *gin.Context) {
	d := driverFrom(c)
	reqID := requestID(c.Request.Context())

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logWarn("[request_id=%s] WebSocket upgrade failed: %v", reqID, err)
		return
	}
	defer conn.Close()

	updates, cancel := d.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go wsReadPump(conn, closed)

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-closed:
			return
		case s, ok := <-updates:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended"))
				return
			}
			if err := conn.WriteJSON(types.NewSnapshot(s)); err != nil {
				logWarn("[request_id=%s] WebSocket write error: %v", reqID, err)
				return
			}
		case <-ping.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// wsReadPump drains client frames so pongs and close frames are handled,
// and closes done when the connection goes away.
func wsReadPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logWarn("WebSocket read error: %v", err)
			}
			return
		}
	}
}
