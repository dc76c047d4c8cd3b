package router

import (
	"github.com/labstack/echo/v4"

	"waypost/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, verifyLimiter *middleware.RateLimiter) {
	SetupServiceRouter(e, authMiddleware)
	SetupWalletRouter(e, authMiddleware)
	SetupVerificationRouter(e, authMiddleware, verifyLimiter)
	SetupTokenRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
