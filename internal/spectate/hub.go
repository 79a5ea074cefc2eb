// Package spectate streams battle combat logs to websocket watchers.
package spectate

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"skirmish/internal/combatlog"
	"skirmish/internal/logger"
)

// Path is where watchers connect.
const Path = "/spectate"

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	// sendBuffer is how many lines a watcher may fall behind before it is
	// dropped.
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is one combat log line as sent to watchers.
type Message struct {
	ID     string `json:"id"`
	Battle string `json:"battle"`
	Line   string `json:"line"`
}

// client is one connected watcher. battle filters the stream; empty
// watches every battle.
type client struct {
	conn   *websocket.Conn
	send   chan Message
	battle string
}

// Hub fans combat log lines out to every watcher. Watchers that cannot
// keep up are disconnected rather than slowing the battle down.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub returns a hub with no watchers.
func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

// Handler serves the hub on Path.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(Path, h)
	return mux
}

// ServeHTTP upgrades the request and streams lines until the watcher
// leaves. The battle query parameter limits the stream to one battle.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("spectator upgrade failed")
		return
	}
	c := &client{
		conn:   conn,
		send:   make(chan Message, sendBuffer),
		battle: r.URL.Query().Get("battle"),
	}
	h.register(c)
	logger.Log.WithFields(logrus.Fields{"remote": r.RemoteAddr, "battle": c.battle}).Info("spectator joined")

	go h.writePump(c)
	h.readPump(c)
}

// Sink returns a combat log sink that broadcasts under battleID.
func (h *Hub) Sink(battleID string) combatlog.Sink {
	return combatlog.SinkFunc(func(line string) { h.Broadcast(battleID, line) })
}

// Broadcast sends line to every watcher of battle.
func (h *Hub) Broadcast(battle, line string) {
	msg := Message{ID: uuid.NewString(), Battle: battle, Line: line}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.battle != "" && c.battle != battle {
			continue
		}
		select {
		case c.send <- msg:
		default:
			logger.Log.WithField("battle", battle).Warn("dropping slow spectator")
			h.drop(c)
		}
	}
}

// Clients counts connected watchers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every watcher.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.drop(c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	h.drop(c)
	h.mu.Unlock()
}

// drop removes c and closes its queue, which makes writePump hang up.
// Callers hold mu.
func (h *Hub) drop(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// readPump discards anything the watcher sends; it exists to process
// pongs and notice the connection closing.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("spectator close failed")
		}
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Warn("spectator read failed")
			}
			return
		}
	}
}

// writePump sends queued lines plus a ping every pingPeriod.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("spectator close failed")
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}
		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

// Serve runs the hub on addr until ctx ends.
func Serve(ctx context.Context, addr string, h *Hub) error {
	srv := &http.Server{Addr: addr, Handler: h.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		h.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Warn("spectator server shutdown")
		}
	}()
	logger.Log.WithField("addr", addr).Info("spectator hub listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
