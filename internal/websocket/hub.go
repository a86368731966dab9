package websocket

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

// Event is the envelope every push carries. Type is one of driver_update,
// order_update or safety_alert; Data is the normalized view payload.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub maintains active WebSocket connections and fans events out to them.
type Hub struct {
	// Registered clients (userID -> Client)
	clients map[string]*Client

	// Inbound messages targeted at a single user
	direct chan *directMessage

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Called when the client count transitions 0->1 and 1->0. The views
	// registry uses these to start and stop polling with console presence.
	onFirstClient func()
	onLastClient  func()

	log *logrus.Logger

	mu sync.RWMutex
}

type directMessage struct {
	UserID string
	Data   interface{}
}

// NewHub creates a new Hub instance.
func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{
		clients:    make(map[string]*Client),
		direct:     make(chan *directMessage, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// SetPresenceHooks installs the connect/disconnect transition callbacks.
// Must be called before Run.
func (h *Hub) SetPresenceHooks(onFirst, onLast func()) {
	h.onFirstClient = onFirst
	h.onLastClient = onLast
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = client
			count := len(h.clients)
			h.mu.Unlock()
			h.log.WithFields(logrus.Fields{
				"user_id":   client.UserID,
				"role":      client.UserRole,
				"connected": count,
			}).Info("websocket client connected")
			if count == 1 && h.onFirstClient != nil {
				h.onFirstClient()
			}

		case client := <-h.unregister:
			h.mu.Lock()
			var count int
			removed := false
			if _, ok := h.clients[client.UserID]; ok {
				delete(h.clients, client.UserID)
				close(client.send)
				count = len(h.clients)
				removed = true
			}
			h.mu.Unlock()
			if removed {
				h.log.WithFields(logrus.Fields{
					"user_id":   client.UserID,
					"role":      client.UserRole,
					"connected": count,
				}).Info("websocket client disconnected")
				if count == 0 && h.onLastClient != nil {
					h.onLastClient()
				}
			}

		case message := <-h.direct:
			// Full lock: the buffer-full branch removes the client.
			h.mu.Lock()
			if client, ok := h.clients[message.UserID]; ok {
				data, err := json.Marshal(message.Data)
				if err != nil {
					h.log.WithError(err).Error("marshal direct message")
					h.mu.Unlock()
					continue
				}

				select {
				case client.send <- data:
				default:
					// Client buffer full, disconnect
					close(client.send)
					delete(h.clients, client.UserID)
					h.log.WithField("user_id", message.UserID).Warn("client buffer full, disconnecting")
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToUser sends an event to a specific user.
func (h *Hub) BroadcastToUser(userID string, eventType string, data interface{}) {
	h.direct <- &directMessage{
		UserID: userID,
		Data:   Event{Type: eventType, Data: data},
	}
}

// BroadcastToRole sends an event to all users with a specific role.
func (h *Hub) BroadcastToRole(role string, eventType string, data interface{}) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	dataBytes, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		h.log.WithError(err).Error("marshal broadcast message")
		return
	}

	for _, client := range h.clients {
		if client.UserRole == role {
			select {
			case client.send <- dataBytes:
			default:
			}
		}
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// IsUserConnected checks if a user is currently connected.
func (h *Hub) IsUserConnected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
