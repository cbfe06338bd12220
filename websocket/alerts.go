package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"opina/internal/alerts"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	// In production, adjust the CheckOrigin function to allow only trusted origins.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// AlertHub fans dissatisfaction alerts out to connected dashboard clients.
type AlertHub struct {
	clients map[*websocket.Conn]string // conn -> manager email
	mutex   sync.Mutex
}

var hub = &AlertHub{clients: make(map[*websocket.Conn]string)}

// GetAlertHub returns the process-wide hub instance
func GetAlertHub() *AlertHub {
	return hub
}

// AlertFeedHandler upgrades a manager connection and keeps it registered
// until it drops. Auth ran in the middleware before this point.
func AlertFeedHandler(c *gin.Context) {
	email, _ := c.Get("userEmail")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Alert feed upgrade failed: %v", err)
		return
	}

	hub.mutex.Lock()
	hub.clients[conn] = email.(string)
	hub.mutex.Unlock()
	log.Printf("Manager %v connected to alert feed", email)

	defer func() {
		hub.mutex.Lock()
		delete(hub.clients, conn)
		hub.mutex.Unlock()
		conn.Close()
	}()

	// Drain reads so pings and close frames are processed.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// BroadcastAlert sends one alert event to every connected manager
func (h *AlertHub) BroadcastAlert(event alerts.Event) {
	payload, err := json.Marshal(gin.H{"type": "alerta_insatisfacao", "alert": event})
	if err != nil {
		log.Printf("Failed to marshal alert broadcast: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	for conn, email := range h.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Dropping alert feed client %s: %v", email, err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}
