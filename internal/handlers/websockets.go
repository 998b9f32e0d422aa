package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait       = 10 * time.Second
	pongWait        = 60 * time.Second
	pingPeriod      = (pongWait * 9) / 10
	maxMsgSize      = 1 << 12 // 4 KB
	defaultInterval = 2 * time.Second
	minInterval     = 250 * time.Millisecond
	maxInterval     = 30 * time.Second
)

// wsEnvelope is the frame pushed to dashboard clients.
type wsEnvelope struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// The dashboard is served to local clients only.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Dashboard snapshot stream
// @Description  Upgrades to a websocket and pushes {"type":"snapshot"} frames every interval (?interval=2s or ?interval_ms=2000).
// @Tags         dashboard
// @Param        interval     query  string  false  "push interval"  example(2s)
// @Param        interval_ms  query  int     false  "push interval in milliseconds"
// @Router       /api/v1/ws [get]
// @Security     SessionAuth
func (h *Handler) wsConnect(c *gin.Context) {
	interval := parseInterval(c.Query("interval"), c.Query("interval_ms"))

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.drain(conn, done)

	push := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		push.Stop()
		ping.Stop()
	}()

	if err := h.pushSnapshot(conn); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	ctx := c.Request.Context()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-push.C:
			// the session may end while the socket is open
			if !h.services.Auth.Session().Authenticated {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteJSON(wsEnvelope{Type: "error", Error: "not authenticated"})
				return
			}
			if err := h.pushSnapshot(conn); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseInterval reads the push interval, clamped to [minInterval, maxInterval].
func parseInterval(dur, ms string) time.Duration {
	if dur != "" {
		if d, err := time.ParseDuration(dur); err == nil && d > 0 {
			return clampInterval(d)
		}
	}
	if ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			return clampInterval(time.Duration(v) * time.Millisecond)
		}
	}
	return defaultInterval
}

func clampInterval(d time.Duration) time.Duration {
	switch {
	case d < minInterval:
		return minInterval
	case d > maxInterval:
		return maxInterval
	}
	return d
}

// drain consumes inbound frames so control messages are handled, and
// signals done once the peer goes away.
func (h *Handler) drain(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func (h *Handler) pushSnapshot(conn *websocket.Conn) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: "snapshot", Data: h.services.Devices.Snapshot()})
}
