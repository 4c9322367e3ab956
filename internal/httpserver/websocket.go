package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	defaultPingPeriod = 30 * time.Second
	writeWait         = 10 * time.Second
)

type cartEvent struct {
	Type string       `json:"type"`
	Cart cartResponse `json:"cart"`
}

func (h *handlers) upgrader() websocket.Upgrader {
	allowed := make(map[string]struct{}, len(h.deps.CORSOrigins))
	for _, o := range h.deps.CORSOrigins {
		allowed[o] = struct{}{}
	}
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			_, ok := allowed[origin]
			return ok
		},
	}
}

// cartStream pushes the session's cart on connect and after every change, so
// other tabs of the same browser stay in sync.
func (h *handlers) cartStream(c *gin.Context) {
	id := sessionID(c)
	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// subscribe before loading so no save falls between snapshot and stream
	updates, cancel := h.deps.Carts.Subscribe(id)
	defer cancel()

	current, err := h.deps.Carts.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).WithField("session", id).Error("load cart for stream")
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "cart unavailable"), time.Now().Add(writeWait))
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	send := func(kind string, resp cartResponse) error {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return conn.WriteJSON(cartEvent{Type: kind, Cart: resp})
	}
	if err := send("snapshot", toCartResponse(current)); err != nil {
		return
	}

	period := h.deps.PingPeriod
	if period <= 0 {
		period = defaultPingPeriod
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case cart, ok := <-updates:
			if !ok {
				return
			}
			if err := send("cart_updated", toCartResponse(cart)); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-closed:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}
