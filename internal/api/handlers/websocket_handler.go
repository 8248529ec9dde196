// server/internal/api/handlers/websocket_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"waste-retrieval-api-server/internal/auth"
	"waste-retrieval-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/op/go-logging"
)

// Thời gian chờ tối đa cho một tin nhắn từ client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub       *socket.Hub
	JWTSecret []byte
	Issuer    string
	Log       *logging.Logger
}

// ServeWs mở kết nối live feed cho dashboard. Browsers cannot set headers on
// websocket requests, so the token comes in the query string.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	if h.Hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Live feed is not available"})
		return
	}
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is required"})
		return
	}

	claims, err := auth.ParseToken(h.JWTSecret, h.Issuer, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	clientID := fmt.Sprintf("%s-%s", claims.UserID(), uuid.New().String()[:8])

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Log.Warningf("Failed to upgrade connection: %v", err)
		return
	}

	h.Hub.Register(clientID, conn)
	defer func() {
		h.Hub.Unregister(clientID)
		conn.Close()
	}()

	// Client gửi PING định kỳ; mỗi lần nhận được thì gia hạn deadline.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(appData string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(time.Second))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.Log.Warningf("Unexpected close from %s: %v", clientID, err)
			}
			break
		}
	}
}
