package controllers

import (
	"net/http"
	"sync"

	"github.com/Dheeraj-cr7/FarmApp/middlewares"
	"github.com/Dheeraj-cr7/FarmApp/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	conn   *websocket.Conn
	userID uint
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]wsClient)
)

// HandleWebSocket upgrades the connection and registers it for the session
// user. The connection stays registered until the read loop fails.
func HandleWebSocket(c *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wsMu.Lock()
	wsClients[conn] = wsClient{conn: conn, userID: userID}
	wsMu.Unlock()

	go func() {
		defer func() {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcastToUser sends the payload to every connection owned by the user,
// dropping connections that fail to write.
func broadcastToUser(userID uint, payload interface{}) {
	wsMu.Lock()
	defer wsMu.Unlock()

	for conn, client := range wsClients {
		if client.userID != userID {
			continue
		}
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
			delete(wsClients, conn)
		}
	}
}

// BroadcastPrediction pushes a completed prediction to the user's dashboards.
func BroadcastPrediction(userID uint, result models.PredictionResult) {
	broadcastToUser(userID, gin.H{"type": "prediction", "data": result})
}

// BroadcastSnapshot pushes a snapshot change (scenario write) to the user's
// dashboards.
func BroadcastSnapshot(userID uint, snapshot models.CropData) {
	broadcastToUser(userID, gin.H{"type": "snapshot", "data": snapshot})
}
