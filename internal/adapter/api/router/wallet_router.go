package router

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/adapter/api/handler"
	"waypost/internal/adapter/api/middleware"
)

func SetupWalletRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	walletHandler := handler.GetWalletHandler()

	walletGroup := e.Group("/v1/wallet")
	walletGroup.Use(authMiddleware.Authenticate)

	walletGroup.GET("", walletHandler.GetWallet)
	walletGroup.POST("/topup", walletHandler.Topup)
	walletGroup.GET("/transactions", walletHandler.ListTransactions)
}
