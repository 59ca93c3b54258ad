package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/NavFS/internal/domain/watch"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/NavFS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/NavFS/internal/shared/id"
	"github.com/GriffinCanCode/NavFS/internal/shared/types"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins in dev
	},
}

// Handler streams watch events over WebSocket connections.
type Handler struct {
	watches *watch.Manager
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewHandler creates a new WebSocket handler
func NewHandler(watches *watch.Manager, logger *logging.Logger, metrics *monitoring.Metrics) *Handler {
	if logger == nil {
		logger = logging.NewDefault()
	}
	return &Handler{
		watches: watches,
		logger:  logger,
		metrics: metrics,
	}
}

// client is one connection's state. Watches started over the connection
// are owned by it and torn down when it closes.
type client struct {
	conn   *websocket.Conn
	mu     sync.Mutex // serializes writes; events arrive from watch goroutines
	owned  map[id.WatchID]struct{}
	cancel func()
}

func (c *client) send(data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(data)
}

func (c *client) sendError(msg string) error {
	return c.send(map[string]interface{}{
		"type":      "error",
		"message":   msg,
		"timestamp": time.Now().Unix(),
	})
}

// HandleConnection handles WebSocket upgrade and messages
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	clientID := uuid.NewString()
	cl := &client{
		conn:  conn,
		owned: make(map[id.WatchID]struct{}),
	}
	defer h.teardown(cl)

	cl.cancel = h.watches.Subscribe(clientID, func(event types.WatchEvent) {
		cl.mu.Lock()
		_, owned := cl.owned[id.WatchID(event.WatchID)]
		cl.mu.Unlock()
		if !owned {
			return
		}
		if err := cl.send(map[string]interface{}{
			"type":      "event",
			"watch_id":  event.WatchID,
			"dir":       event.Dir,
			"name":      event.Name,
			"action":    event.Action,
			"event":     event.Event,
			"timestamp": event.At.Unix(),
		}); err == nil && h.metrics != nil {
			h.metrics.RecordWSMessage("out", "event")
		}
	})

	cl.send(map[string]interface{}{
		"type":      "system",
		"client_id": clientID,
		"message":   "Connected to NavFS stream",
	})

	for {
		var msg types.WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.Error(err))
			}
			break
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "watch":
			h.handleWatch(cl, msg)
		case "unwatch":
			h.handleUnwatch(cl, msg)
		case "ping":
			cl.send(map[string]interface{}{"type": "pong"})
		default:
			cl.sendError("unknown message type")
		}
	}
}

func (h *Handler) handleWatch(cl *client, msg types.WSMessage) {
	if msg.Path == "" {
		cl.sendError("path required")
		return
	}

	wid, err := h.watches.Start(msg.Path)
	if err != nil {
		cl.sendError(err.Error())
		return
	}

	cl.mu.Lock()
	cl.owned[wid] = struct{}{}
	cl.mu.Unlock()

	cl.send(map[string]interface{}{
		"type":     "watching",
		"watch_id": wid.String(),
		"path":     msg.Path,
	})
}

func (h *Handler) handleUnwatch(cl *client, msg types.WSMessage) {
	if msg.WatchID == "" {
		cl.sendError("watch_id required")
		return
	}
	wid := id.WatchID(msg.WatchID)

	cl.mu.Lock()
	_, owned := cl.owned[wid]
	delete(cl.owned, wid)
	cl.mu.Unlock()

	if !owned || !h.watches.Stop(wid) {
		cl.sendError("watch not found: " + msg.WatchID)
		return
	}

	cl.send(map[string]interface{}{
		"type":     "unwatched",
		"watch_id": msg.WatchID,
	})
}

// teardown stops every watch the connection owns.
func (h *Handler) teardown(cl *client) {
	if cl.cancel != nil {
		cl.cancel()
	}
	cl.mu.Lock()
	owned := make([]id.WatchID, 0, len(cl.owned))
	for wid := range cl.owned {
		owned = append(owned, wid)
	}
	cl.owned = make(map[id.WatchID]struct{})
	cl.mu.Unlock()

	for _, wid := range owned {
		h.watches.Stop(wid)
	}
}
