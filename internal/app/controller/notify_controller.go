package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/mdehtemam/bagquote-backend/internal/middleware"
	"github.com/mdehtemam/bagquote-backend/internal/notify"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin is enforced by the CORS middleware; the handshake itself
	// accepts any origin that carried a valid token.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotifyController struct {
	hub *notify.Hub
}

func NewNotifyController(hub *notify.Hub) *NotifyController {
	return &NotifyController{
		hub: hub,
	}
}

// Connect upgrades an authenticated request to a push stream for quote
// status events. Browsers cannot set headers on WebSocket handshakes, so
// the token arrives as a query parameter.
// GET /api/v1/ws?token=...
func (ctrl *NotifyController) Connect(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		log.Warn("Unauthorized WebSocket connection attempt")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := notify.NewClient(ctrl.hub, conn, userID)
	ctrl.hub.Register(client)

	log.Info("WebSocket connection established", map[string]interface{}{
		"user_id": userID,
	})

	go client.WritePump()
	go client.ReadPump()
}
