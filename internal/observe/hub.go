// Package observe serves a read-only WebSocket feed of game moments so
// spectators can watch a match live.
package observe

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Size of each spectator's send buffer
	sendBufferSize = 256
)

// Moment is one published game moment on the feed
type Moment struct {
	Kind    string    `json:"kind"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload,omitempty"`
}

// Hub broadcasts game moments to connected spectators. It implements
// the app's Observer interface. Publishing never blocks the game loop:
// a slow spectator's buffer fills and messages are dropped for them.
type Hub struct {
	mu         sync.RWMutex
	spectators map[*spectator]bool
	history    []json.RawMessage // replayed to late joiners
	logger     *slog.Logger
	upgrader   websocket.Upgrader
	server     *http.Server
}

type spectator struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a spectator hub
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		spectators: make(map[*spectator]bool),
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Publish broadcasts one game moment to every connected spectator
func (h *Hub) Publish(kind string, payload any) {
	data, err := json.Marshal(Moment{Kind: kind, At: time.Now(), Payload: payload})
	if err != nil {
		h.logger.Warn("moment marshal failed", "kind", kind, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = append(h.history, data)
	for s := range h.spectators {
		select {
		case s.send <- data:
		default:
			h.logger.Warn("spectator buffer full, message dropped")
		}
	}
}

// Start serves the feed at ws://addr/watch until the context ends
func (h *Hub) Start(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", h.handleWatch)
	h.server = &http.Server{Addr: addr, Handler: mux}

	go func() {
		h.logger.Info("spectator feed listening", "addr", addr)
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("spectator feed failed", "error", err)
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.server.Shutdown(shutdownCtx)
	}()
}

func (h *Hub) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectator upgrade failed", "error", err)
		return
	}

	s := &spectator{conn: conn, send: make(chan []byte, sendBufferSize)}

	h.mu.Lock()
	h.spectators[s] = true
	backlog := make([]json.RawMessage, len(h.history))
	copy(backlog, h.history)
	h.mu.Unlock()

	// Replay what the spectator missed.
	for _, m := range backlog {
		select {
		case s.send <- m:
		default:
		}
	}

	go h.writePump(s)
	h.readPump(s)
}

func (h *Hub) remove(s *spectator) {
	h.mu.Lock()
	if _, ok := h.spectators[s]; ok {
		delete(h.spectators, s)
		close(s.send)
	}
	h.mu.Unlock()
	s.conn.Close()
}

// readPump discards inbound frames; the feed is one-way. It exists to
// notice disconnects and answer pings.
func (h *Hub) readPump(s *spectator) {
	defer h.remove(s)
	s.conn.SetReadLimit(512)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(s *spectator) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case data, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
