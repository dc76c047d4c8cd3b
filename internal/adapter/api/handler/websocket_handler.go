package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"waypost/internal/infrastructure/firebase"
	ws "waypost/internal/infrastructure/websocket"
	"waypost/pkg/errors"
)

type WebSocketHandler struct {
	wsManager    *ws.Manager
	firebaseAuth *firebase.FirebaseAuthClient
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // You should restrict this in production
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, firebaseAuth *firebase.FirebaseAuthClient) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:    wsManager,
		firebaseAuth: firebaseAuth,
	}
}

// HandleWebSocket upgrades the connection and subscribes the caller to the
// lifecycle event stream. Auth runs inside the handler because browser
// WebSocket clients cannot set an Authorization header.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return errors.Unauthorized("Authentication required", nil)
	}

	userID, err := h.firebaseAuth.VerifyToken(c.Request().Context(), token)
	if err != nil {
		return errors.Unauthorized("Invalid or expired token", err)
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := &ws.Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.wsManager.Register <- client

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
