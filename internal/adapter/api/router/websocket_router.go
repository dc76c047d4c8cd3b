package router

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/adapter/api/handler"
)

// SetupWebSocketRouter sets up the event stream endpoint. Auth happens
// inside the handler via a token query parameter.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/ws", wsHandler.HandleWebSocket)
}
