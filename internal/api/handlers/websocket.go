package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lexportal/internal/api/interfaces"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The route sits behind the session guard; the cookie already
		// proves the origin could authenticate.
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WebSocketMessage represents a message sent over WebSocket
type WebSocketMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp int64       `json:"timestamp"`
}

// NotificationsWebSocket streams session notifications to the browser: a
// periodic heartbeat with the remaining session time, and a warning once
// expiry is close so the UI can prompt before the user is logged out.
func NotificationsWebSocket(services interfaces.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		store, ok := sessionStore(c)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			services.GetLogger().Error("WebSocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		services.GetLogger().Info("Notifications WebSocket connected - session: %s", store.ID())

		clientChan := make(chan WebSocketMessage, 100)
		go handleWebSocketClient(conn, clientChan, services)

		expiresAt := services.SessionManager().ExpiresAt(store)

		initial := WebSocketMessage{
			Type: "session_status",
			Data: map[string]interface{}{
				"expires_at":        expiresAt.Unix(),
				"remaining_seconds": int64(time.Until(expiresAt).Seconds()),
			},
			Timestamp: time.Now().Unix(),
		}
		select {
		case clientChan <- initial:
		default:
			return
		}

		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		warned := false

		for {
			select {
			case <-ticker.C:
				remaining := time.Until(expiresAt)
				if remaining <= 0 {
					msg := WebSocketMessage{
						Type:      "session_expired",
						Timestamp: time.Now().Unix(),
					}
					select {
					case clientChan <- msg:
					default:
					}
					return
				}

				if !warned && remaining < 5*time.Minute {
					warned = true
					msg := WebSocketMessage{
						Type: "session_expiring",
						Data: map[string]interface{}{
							"remaining_seconds": int64(remaining.Seconds()),
						},
						Timestamp: time.Now().Unix(),
					}
					select {
					case clientChan <- msg:
					default:
					}
				}

				status := WebSocketMessage{
					Type: "session_status",
					Data: map[string]interface{}{
						"expires_at":        expiresAt.Unix(),
						"remaining_seconds": int64(remaining.Seconds()),
					},
					Timestamp: time.Now().Unix(),
				}
				select {
				case clientChan <- status:
				default:
					// Channel full, client might be slow
					services.GetLogger().Warning("WebSocket client channel full - session: %s", store.ID())
					return
				}

			case <-c.Request.Context().Done():
				services.GetLogger().Info("WebSocket client disconnected - session: %s", store.ID())
				return
			}
		}
	}
}

// handleWebSocketClient handles a WebSocket client connection
func handleWebSocketClient(conn *websocket.Conn, messageChan <-chan WebSocketMessage, services interfaces.Services) {
	// Ping/pong for connection health
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	// Drain incoming messages; the stream is one-way but reads are needed
	// to process pongs and detect disconnects.
	go func() {
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					services.GetLogger().Error("WebSocket error: %v", err)
				}
				break
			}
		}
	}()

	for {
		select {
		case message, ok := <-messageChan:
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteJSON(message); err != nil {
				services.GetLogger().Error("WebSocket write error: %v", err)
				return
			}

		case <-pingTicker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
