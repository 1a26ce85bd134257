// Package eventstream is the simulation's output sink: a local
// websocket broadcast hub modeled on the register/unregister/broadcast
// shape of a real-time fan-out server. It is a dumb fan-out of the
// lifecycle/inventory/asteroid events the engine already emits, not a
// network-sync protocol and not required for the simulation to run
// correctly — tests exercise the engine with no hub attached.
package eventstream

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// Message is the envelope every subscriber receives over the socket.
type Message struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// client is one subscriber's connection.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub maintains the set of subscribers and fans out broadcast messages
// to each of them.
type Hub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	maxClients int
	log        *slog.Logger
}

// New creates a Hub. Run it in its own goroutine before serving
// connections.
func New(maxClients int, log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *client),
		unregister: make(chan *client),
		maxClients: maxClients,
		log:        log,
	}
}

// Run is the hub's single event loop. Every register/unregister/
// broadcast operation funnels through this one goroutine, so client
// bookkeeping never needs its own lock.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if h.maxClients > 0 && len(h.clients) >= h.maxClients {
				h.log.Warn("eventstream: rejecting connection, max clients reached")
				close(c.send)
				continue
			}
			h.clients[c] = true

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					close(c.send)
					delete(h.clients, c)
				}
			}
		}
	}
}

// Broadcast encodes payload as JSON under the given message type and fans it
// out to every connected subscriber. Safe to call from the tick loop.
func (h *Hub) Broadcast(msgType string, payload any) {
	data, err := json.Marshal(Message{Type: msgType, Payload: payload})
	if err != nil {
		h.log.Error("eventstream: failed to marshal broadcast", "error", err, "type", msgType)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.log.Warn("eventstream: broadcast channel full, dropping message", "type", msgType)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWs upgrades an HTTP request to a websocket connection and
// registers it with the hub.
func ServeWs(hub *Hub, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		hub.log.Error("eventstream: upgrade failed", "error", err)
		return
	}
	c := &client{hub: hub, conn: conn, send: make(chan []byte, 16)}
	hub.register <- c
	go c.writePump()
	go c.readPump()
}

// readPump only exists to notice disconnects; subscribers are
// read-only consumers of the broadcast stream.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		w, err := c.conn.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}
		w.Write(msg)
		if err := w.Close(); err != nil {
			return
		}
	}
}
