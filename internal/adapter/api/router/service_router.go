package router

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/adapter/api/handler"
	"waypost/internal/adapter/api/middleware"
)

func SetupServiceRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	serviceHandler := handler.GetServiceHandler()

	// Public browse routes
	public := e.Group("/v1/services")
	public.GET("", serviceHandler.ListActiveServices)
	public.GET("/:id", serviceHandler.GetService)

	// Protected lifecycle routes. Escrow entries name the payer, so they
	// are not part of the public browse surface.
	protected := e.Group("/v1/services")
	protected.Use(authMiddleware.Authenticate)
	protected.GET("/:id/escrow", serviceHandler.GetServiceEscrow)
	protected.POST("", serviceHandler.CreateService)
	protected.POST("/:id/accept", serviceHandler.AcceptService)
	protected.POST("/:id/complete", serviceHandler.CompleteService)
	protected.POST("/:id/cancel", serviceHandler.CancelService)

	// Static segments win over :id in echo's router
	protected.GET("/mine", serviceHandler.ListMyServices)
	protected.GET("/accepted", serviceHandler.ListAcceptedServices)
}
