package router

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/adapter/api/handler"
	"waypost/internal/adapter/api/middleware"
)

func SetupTokenRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	tokenHandler := handler.GetTokenHandler()

	tokenGroup := e.Group("/v1/tokens")
	tokenGroup.Use(authMiddleware.Authenticate)
	tokenGroup.GET("/:id", tokenHandler.GetToken)
}
