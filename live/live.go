package live

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"cadastra/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Hub fans board events out to every client watching a given day. Rooms are
// keyed by the YYYY-MM-DD day string.

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
	Room string
}

type broadcastMsg struct {
	Room string
	Data []byte
}

type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	quit       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.quit:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.quit)
}

// BoardEvent tells watching clients what changed so they can refetch.
type BoardEvent struct {
	Action string `json:"action"`
	Day    string `json:"day"`
	TeamID string `json:"teamId,omitempty"`
}

// BroadcastDay pushes an event to everyone watching that day.
func (h *Hub) BroadcastDay(day string, evt BoardEvent) {
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	select {
	case h.broadcast <- broadcastMsg{Room: day, Data: data}:
	case <-h.quit:
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeWS upgrades the connection and subscribes it to a day room. Browsers
// cannot set headers on websocket dials, so the token rides a query parameter.
func ServeWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		day := ps.ByName("day")

		if _, err := middleware.ValidateJWT(r.URL.Query().Get("token")); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			Conn: conn,
			Send: make(chan []byte, 256),
			Room: day,
		}

		select {
		case hub.register <- client:
		case <-hub.quit:
			conn.Close()
			return
		}
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump only drains control frames; board clients never send payloads.
func readPump(c *Client, hub *Hub) {
	defer func() {
		select {
		case hub.unregister <- c:
		case <-hub.quit:
		}
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}
