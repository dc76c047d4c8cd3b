package router

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/adapter/api/handler"
	"waypost/internal/adapter/api/middleware"
)

func SetupGeoRouter(e *echo.Echo, geoHandler *handler.GeoHandler, authMiddleware *middleware.AuthMiddleware) {
	geoGroup := e.Group("/v1/geo")
	geoGroup.Use(authMiddleware.Authenticate)

	geoGroup.POST("/distance", geoHandler.Distance)
	geoGroup.POST("/reverse-geocode", geoHandler.ReverseGeocode)
}
