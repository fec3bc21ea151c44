package notify

import (
	"encoding/json"
	"sync"

	"github.com/mdehtemam/bagquote-backend/internal/app/model"
	"github.com/mdehtemam/bagquote-backend/pkg/logger"
)

// QuoteStatusEvent is the payload pushed when an admin moves a quote through
// the pipeline.
type QuoteStatusEvent struct {
	Type    string            `json:"type"`
	QuoteID uint              `json:"quote_id"`
	Status  model.QuoteStatus `json:"status"`
}

// statusPush is a marshaled event queued for one user's sessions.
type statusPush struct {
	userID uint
	data   []byte
}

// Hub tracks connected WebSocket sessions per user and fans quote events out
// to all of a user's devices. Delivery is best effort; a full send buffer
// drops the session rather than blocking the hub.
type Hub struct {
	clients map[uint][]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan *statusPush

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uint][]*Client),
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		broadcast:  make(chan *statusPush, 1024),
	}
}

// Run processes registrations and event pushes. Call once from main in its
// own goroutine. Sends and channel closes both happen here, serialized, so a
// session channel is never written after it is closed.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			sessions := len(h.clients[client.UserID])
			h.mu.Unlock()

			logger.Info("WebSocket client registered", map[string]interface{}{
				"user_id":        client.UserID,
				"total_sessions": sessions,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			found := false
			if clientList, ok := h.clients[client.UserID]; ok {
				newList := make([]*Client, 0, len(clientList))
				for _, c := range clientList {
					if c != client {
						newList = append(newList, c)
					}
				}
				found = len(newList) != len(clientList)
				if len(newList) == 0 {
					delete(h.clients, client.UserID)
				} else {
					h.clients[client.UserID] = newList
				}
			}
			// A session can be unregistered twice, once by a full send
			// buffer and once by its ReadPump teardown. Only the removal
			// that actually found the session may close the channel.
			if found {
				close(client.send)
			}
			remaining := len(h.clients[client.UserID])
			h.mu.Unlock()

			logger.Info("WebSocket client unregistered", map[string]interface{}{
				"user_id":            client.UserID,
				"remaining_sessions": remaining,
			})

		case push := <-h.broadcast:
			h.mu.RLock()
			clientList := h.clients[push.userID]
			for _, client := range clientList {
				select {
				case client.send <- push.data:
				default:
					logger.Warn("Client send buffer full, disconnecting", map[string]interface{}{
						"user_id": push.userID,
					})
					go h.Unregister(client)
				}
			}
			sessions := len(clientList)
			h.mu.RUnlock()

			logger.Debug("Quote status event dispatched", map[string]interface{}{
				"user_id":  push.userID,
				"sessions": sessions,
			})
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// NotifyQuoteStatus pushes a status change to every open session of the
// quote's owner. Offline users simply miss the push; the dashboard shows the
// current status on next load.
func (h *Hub) NotifyQuoteStatus(userID, quoteID uint, status model.QuoteStatus) {
	if !h.IsUserOnline(userID) {
		return
	}

	event := QuoteStatusEvent{
		Type:    "quote_status_changed",
		QuoteID: quoteID,
		Status:  status,
	}
	data, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal quote status event", err, map[string]interface{}{
			"quote_id": quoteID,
		})
		return
	}

	select {
	case h.broadcast <- &statusPush{userID: userID, data: data}:
	default:
		logger.Warn("Broadcast channel full, quote status event dropped", map[string]interface{}{
			"user_id":  userID,
			"quote_id": quoteID,
		})
	}
}

// IsUserOnline reports whether the user has at least one open session.
func (h *Hub) IsUserOnline(userID uint) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[userID]
	return ok
}
