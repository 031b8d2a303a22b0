// Package ws pushes schedule status updates to subscribed clients so
// tracking views refresh without polling.
package ws

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/JayeshPatil163/aero-logistics-nexus/internal/models"
	"github.com/JayeshPatil163/aero-logistics-nexus/pkg/logger"
	"github.com/gorilla/websocket"
)

// MessageType labels a hub message.
type MessageType string

const (
	MessageTypeStatusUpdated   MessageType = "status_updated"
	MessageTypeScheduleDeleted MessageType = "schedule_deleted"
)

// Message is the wire format pushed to subscribers of one schedule.
type Message struct {
	Type       MessageType           `json:"type"`
	ScheduleID string                `json:"scheduleId"`
	Status     models.ScheduleStatus `json:"status,omitempty"`
	Progress   int                   `json:"progress,omitempty"`
	Message    string                `json:"message,omitempty"`
	Timestamp  int64                 `json:"timestamp"`
}

// Client is one subscriber connection.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	scheduleID string
}

// Hub manages subscriber connections per schedule id.
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	mu         sync.RWMutex
	log        logger.Logger
}

// NewHub creates a hub. Call Run in a goroutine to start it.
func NewHub(log logger.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 256),
		log:        log,
	}
}

// Run processes the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.scheduleID] == nil {
				h.clients[client.scheduleID] = make(map[*Client]bool)
			}
			h.clients[client.scheduleID][client] = true
			h.mu.Unlock()
			h.log.Debug("ws client registered", "scheduleId", client.scheduleID)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.scheduleID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.scheduleID)
					}
				}
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			data, err := json.Marshal(message)
			if err != nil {
				h.log.Error("ws marshal failed", "error", err)
				continue
			}

			h.mu.RLock()
			clients := h.clients[message.ScheduleID]
			h.mu.RUnlock()

			for client := range clients {
				select {
				case client.send <- data:
				default:
					h.mu.Lock()
					delete(h.clients[message.ScheduleID], client)
					close(client.send)
					h.mu.Unlock()
				}
			}
		}
	}
}

// BroadcastStatus pushes a status change to everyone watching a schedule.
func (h *Hub) BroadcastStatus(scheduleID string, status models.ScheduleStatus, progress int) {
	h.broadcast <- &Message{
		Type:       MessageTypeStatusUpdated,
		ScheduleID: scheduleID,
		Status:     status,
		Progress:   progress,
		Timestamp:  time.Now().UnixMilli(),
	}
}

// BroadcastDeleted tells watchers the schedule is gone.
func (h *Hub) BroadcastDeleted(scheduleID string) {
	h.broadcast <- &Message{
		Type:       MessageTypeScheduleDeleted,
		ScheduleID: scheduleID,
		Message:    "Schedule has been removed",
		Timestamp:  time.Now().UnixMilli(),
	}
}

// ClientCount returns the number of subscribers for a schedule.
func (h *Hub) ClientCount(scheduleID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[scheduleID])
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Subscribe upgrades the connection and attaches it to the schedule's
// subscriber set until the peer goes away.
func (h *Hub) Subscribe(w http.ResponseWriter, r *http.Request, scheduleID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, 16),
		scheduleID: scheduleID,
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
