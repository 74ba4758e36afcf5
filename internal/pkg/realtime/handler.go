package realtime

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/conghanh/luanho/internal/pkg/auth"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API is consumed cross-origin by the web client
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades HTTP requests to websocket connections and attaches them
// to the hub.
type Handler struct {
	hub        *Hub
	jwtService *auth.JWTService
}

// NewHandler creates a websocket handler backed by the given hub.
func NewHandler(hub *Hub, jwtService *auth.JWTService) *Handler {
	return &Handler{
		hub:        hub,
		jwtService: jwtService,
	}
}

// Serve handles websocket requests from clients. Connections are anonymous
// by default; passing a valid access token as the "token" query parameter
// associates the connection with a user. Events carry public data, so an
// invalid token closes the connection instead of silently downgrading it.
func (h *Handler) Serve(c *gin.Context) {
	uid := ""
	if token := c.Query("token"); token != "" {
		claims, err := h.jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		uid = claims.UID
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.logger.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 64),
		uid:  uid,
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
