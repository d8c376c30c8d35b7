package render

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/raykavin/tradeplot/pkg/logger"
)

const broadcastBuffer = 100

// message is what the preview page receives over the socket
type message struct {
	Type    string       `json:"type"`
	Payload figureUpdate `json:"payload"`
}

type figureUpdate struct {
	Name    string    `json:"name"`
	Updated time.Time `json:"updated"`
}

// hub tracks the open sockets and the figure each one follows
type hub struct {
	sync.RWMutex
	clients   map[*websocket.Conn]string
	upgrader  websocket.Upgrader
	broadcast chan message
	closed    bool
	log       logger.Logger
}

func newHub(log logger.Logger) *hub {
	h := &hub{
		clients: make(map[*websocket.Conn]string),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		broadcast: make(chan message, broadcastBuffer),
		log:       log,
	}

	go h.run()
	return h
}

func (h *hub) run() {
	for msg := range h.broadcast {
		h.RLock()
		for conn, name := range h.clients {
			if name != msg.Payload.Name {
				continue
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.log.WithError(err).Error("failed to send figure update")
				// the reader of the connection removes it
				conn.Close()
			}
		}
		h.RUnlock()
	}
}

// notify queues an update for the clients following name
func (h *hub) notify(name string, updated time.Time) {
	h.RLock()
	defer h.RUnlock()
	if h.closed {
		return
	}

	select {
	case h.broadcast <- message{Type: "figure", Payload: figureUpdate{Name: name, Updated: updated}}:
	default:
		h.log.Warnf("update queue full, dropping update of %s", name)
	}
}

// serve upgrades the request and follows name until the client leaves.
// The current version of the figure is announced right away.
func (h *hub) serve(w http.ResponseWriter, r *http.Request, name string, updated time.Time) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Error("failed to upgrade connection to websocket")
		return
	}

	h.Lock()
	if h.closed {
		h.Unlock()
		conn.Close()
		return
	}
	h.clients[conn] = name
	err = conn.WriteJSON(message{Type: "figure", Payload: figureUpdate{Name: name, Updated: updated}})
	clients := len(h.clients)
	h.Unlock()

	if err != nil {
		h.log.WithError(err).Error("failed to send initial figure update")
	}
	h.log.WithFields(map[string]any{"figure": name, "clients": clients}).Debug("websocket client connected")

	go h.read(conn)
}

// read drains the connection until it closes
func (h *hub) read(conn *websocket.Conn) {
	defer func() {
		h.Lock()
		delete(h.clients, conn)
		h.Unlock()
		conn.Close()
	}()

	conn.SetPingHandler(func(string) error {
		return conn.WriteControl(websocket.PongMessage, []byte{}, time.Now().Add(10*time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.WithError(err).Error("websocket read error")
			}
			return
		}
	}
}

func (h *hub) close() {
	h.Lock()
	defer h.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	close(h.broadcast)
	for conn := range h.clients {
		conn.Close()
	}
}
